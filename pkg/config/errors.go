package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingDotenv is returned when a .env file exists but cannot be read
	ErrLoadingDotenv = errors.New("failed to load .env file")

	// ErrNilPointer is returned when a nil pointer is provided to Into
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
