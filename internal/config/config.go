package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr        string `yaml:"addr"`
	BaseURL     string `yaml:"base_url"`
	DataDir     string `yaml:"data_dir"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		BaseURL:     "http://localhost:8080",
		DataDir:     "data",
		MaxUploadMB: 16,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load starts from Default, applies the YAML file at path when it exists and
// then LIFEBOARD_* environment variables. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.Addr = getEnv("LIFEBOARD_ADDR", cfg.Addr)
	cfg.BaseURL = getEnv("LIFEBOARD_BASE_URL", cfg.BaseURL)
	cfg.DataDir = getEnv("LIFEBOARD_DATA_DIR", cfg.DataDir)
	if v := os.Getenv("LIFEBOARD_MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("LIFEBOARD_MAX_UPLOAD_MB: %w", err)
		}
		cfg.MaxUploadMB = mb
	}

	if cfg.MaxUploadMB <= 0 {
		return cfg, fmt.Errorf("max_upload_mb must be positive, got %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
