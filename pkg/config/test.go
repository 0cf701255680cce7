package config

func loadTestConfig(cfg *Config) {
	cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}
