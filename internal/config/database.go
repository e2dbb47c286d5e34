package config

import (
	"strconv"
	"time"
)

const DefaultDatabaseConfigPath = "config/database.config"

// Database describes the pooled connection used by the HTTP surface. Unlike
// the classifier keys, pool sizing falls back to defaults when absent.
type Database struct {
	User     string
	Password string
	DSN      string

	MinPoolSize int
	MaxPoolSize int
	Increment   int

	// IdleTimeout closes connections idle for longer; zero keeps the pool default.
	IdleTimeout time.Duration
	// WaitTimeout bounds how long a caller waits for a free connection; zero waits for the request context.
	WaitTimeout time.Duration
}

func LoadDatabase(path string) (Database, error) {
	props, err := ReadProperties(path, true)
	if err != nil {
		return Database{}, err
	}

	cfg := Database{
		User:     props["user"],
		Password: props["password"],
		DSN:      props["dsn"],
	}
	for _, key := range []string{"user", "password", "dsn"} {
		if props[key] == "" {
			return Database{}, &Error{Path: path, Key: key, Reason: reasonMissingKey}
		}
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"min_pool_size", 1, &cfg.MinPoolSize},
		{"max_pool_size", 5, &cfg.MaxPoolSize},
		{"increment", 1, &cfg.Increment},
	}
	for _, item := range ints {
		v, err := intOrDefault(props[item.key], item.fallback)
		if err != nil {
			return Database{}, &Error{Path: path, Key: item.key, Reason: reasonInvalidNumber, Value: props[item.key]}
		}
		*item.dst = v
	}

	idleSeconds, err := intOrDefault(props["timeout"], 0)
	if err != nil {
		return Database{}, &Error{Path: path, Key: "timeout", Reason: reasonInvalidNumber, Value: props["timeout"]}
	}
	waitMillis, err := intOrDefault(props["wait_timeout"], 0)
	if err != nil {
		return Database{}, &Error{Path: path, Key: "wait_timeout", Reason: reasonInvalidNumber, Value: props["wait_timeout"]}
	}
	cfg.IdleTimeout = time.Duration(idleSeconds) * time.Second
	cfg.WaitTimeout = time.Duration(waitMillis) * time.Millisecond

	if cfg.MaxPoolSize < cfg.MinPoolSize {
		cfg.MaxPoolSize = cfg.MinPoolSize
	}
	return cfg, nil
}

func intOrDefault(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
