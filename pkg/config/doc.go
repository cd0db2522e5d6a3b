// Package config loads environment-sourced configuration structs via
// github.com/caarlos0/env field tags, with optional .env file support
// through godotenv.
//
//	type GoogleConfig struct {
//		ClientID string `env:"GOOGLE_CLIENT_ID"`
//	}
//
//	var cfg GoogleConfig
//	config.MustLoad(&cfg)
package config
