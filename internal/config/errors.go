package config

import "errors"

var (
	ErrConfigFileNotFound         = errors.New("config file not found")
	ErrInvalidPort                = errors.New("invalid server port")
	ErrInvalidSessionExpiration   = errors.New("session expiration must be positive")
	ErrInvalidAnalyzerTimeout     = errors.New("analyzer timeout must be positive")
	ErrInvalidAnalyzerConcurrency = errors.New("analyzer concurrency must be positive")
)
