// Package config provides configuration management for the Brother bridge.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: machine registry database (SQLite or MySQL)
//   - Storage: S3/MinIO credentials for the print artifact archive
//   - Log: Logging level and format
//   - Printing: send timeout and artifact archiving
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
