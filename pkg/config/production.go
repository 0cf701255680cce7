package config

func loadProductionConfig(cfg *Config) {
	// No cross-origin access until origins are configured explicitly.
	cfg.CORSAllowedOrigins = []string{}
	cfg.DatabaseFilePath = "/data/pagemark.sqlite"
	cfg.ServerHost = ""
}
