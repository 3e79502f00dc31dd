package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string
	DBDSN         string
	OffersBaseURL string
	SyncInterval  time.Duration
	LogFile       string
}

// fileConfig is the YAML shape; durations come in as strings.
type fileConfig struct {
	Port          string `yaml:"port"`
	DBDSN         string `yaml:"db_dsn"`
	OffersBaseURL string `yaml:"offers_base_url"`
	SyncInterval  string `yaml:"sync_interval"`
	LogFile       string `yaml:"log_file"`
}

// Load builds the configuration from defaults, an optional YAML file
// and environment variables, in that order (env wins).
func Load() Config {
	cfg := Config{
		Port:          "8080",
		DBDSN:         "catalogd.db", // sqlite file in project root
		OffersBaseURL: "http://localhost:8081",
		SyncInterval:  10 * time.Second,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "./catalogd.yaml"
	}
	if raw, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			log.Fatalf("[config] %s: %v", path, err)
		}
		if fc.Port != "" {
			cfg.Port = fc.Port
		}
		if fc.DBDSN != "" {
			cfg.DBDSN = fc.DBDSN
		}
		if fc.OffersBaseURL != "" {
			cfg.OffersBaseURL = fc.OffersBaseURL
		}
		if fc.SyncInterval != "" {
			cfg.SyncInterval = parseInterval(path, fc.SyncInterval)
		}
		if fc.LogFile != "" {
			cfg.LogFile = fc.LogFile
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("OFFERS_API_BASE_URL"); v != "" {
		cfg.OffersBaseURL = v
	}
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		cfg.SyncInterval = parseInterval("SYNC_INTERVAL", v)
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	log.Printf("[config] PORT=%s DB_DSN=%s OFFERS_API_BASE_URL=%s SYNC_INTERVAL=%s",
		cfg.Port, cfg.DBDSN, cfg.OffersBaseURL, cfg.SyncInterval)
	return cfg
}

func parseInterval(source, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("[config] %s: bad interval %q: %v", source, v, err)
	}
	return d
}
