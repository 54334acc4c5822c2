// Package config loads typed configuration structs from environment variables
// using caarlos0/env struct tags, with optional .env files read through godotenv.
//
// Every component package exposes its own Config struct with env tags; the
// binary composes them into one struct and calls Load once at startup:
//
//	if err := config.LoadDotenv(); err != nil {
//		return err
//	}
//	cfg, err := config.Load[appConfig]()
//	if err != nil {
//		return err
//	}
//
// Errors wrap ErrParsingConfig so callers can detect configuration failures
// with errors.Is.
package config
