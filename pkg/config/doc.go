// Package config loads environment-driven settings into tagged structs.
//
// It wraps caarlos0/env with a one-time .env load via godotenv, so local
// development picks up a dotenv file while production relies on real
// environment variables. Every defaulted knob in this module (logger
// output, validation severity threshold, history location) is declared as
// an env-tagged struct and loaded through this package.
//
// # Usage
//
//	type HistoryConfig struct {
//		Root string `env:"DATACOP_HISTORY_ROOT" envDefault:".datacop/history"`
//	}
//
//	var cfg HistoryConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
package config
