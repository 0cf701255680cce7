package config

import (
	"os"
	"strconv"
)

func loadDevelopmentConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	cfg.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	cfg.DatabaseDebug = true
	cfg.DatabaseFilePath = "./tmp/pagemark.sqlite"
	cfg.ServerHost = "127.0.0.1"
}
