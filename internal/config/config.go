// Package config provides configuration for the server binary via
// command-line flags, environment variables and an optional config file.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds the configuration values for the server.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port" yaml:"port"`

	// Backend selects the persistence backend: memory, file, sqlite or
	// postgres.
	Backend string `json:"backend" yaml:"backend"`

	// DatabaseDSN holds the PostgreSQL connection string, used when
	// Backend is "postgres".
	DatabaseDSN string `json:"database_dsn" yaml:"database_dsn"`

	// StoragePath is the SQLite database file or the data directory,
	// used when Backend is "sqlite" or "file".
	StoragePath string `json:"storage_path" yaml:"storage_path"`

	// LogLevel sets the logging level.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// Config is the path to the config file.
	Config string `json:"-" yaml:"-"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.Backend, "b", "file", "persistence backend: memory|file|sqlite|postgres")
	flag.StringVar(&options.DatabaseDSN, "d", "", "postgres connection string")
	flag.StringVar(&options.StoragePath, "s", "./winslog-data", "sqlite file or data directory")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file and the
// environment variables, in increasing precedence for the environment.
// It returns a pointer to the Options struct containing the parsed
// configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if err := loadFile(options.Config, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if backend := os.Getenv("BACKEND"); backend != "" {
		options.Backend = backend
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if storagePath := os.Getenv("STORAGE_PATH"); storagePath != "" {
		options.StoragePath = storagePath
	}

	return options
}

// loadFile reads a config file into o. YAML is tried first, JSON second,
// so either format works regardless of extension.
func loadFile(path string, o *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if yamlErr := yaml.Unmarshal(data, o); yamlErr != nil {
		if jsonErr := json.Unmarshal(data, o); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): %w", jsonErr)
		}
	}
	return nil
}
