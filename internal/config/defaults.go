package config

import (
	"path/filepath"

	"github.com/babarot/diet/internal/env"
)

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	configDir := filepath.Dir(env.DIET_CONFIG_PATH)

	return &Config{
		Backend: Backend{
			Type: "gdrive",
			GDrive: GDrive{
				Credentials: filepath.Join(configDir, "client_secrets.json"),
				Token:       filepath.Join(configDir, "token.json"),
			},
		},
		Retention: Retention{
			Sort:         "modifiedTime",
			Extensions:   []string{},
			ExcludeGlobs: []string{},
		},
		Journal: Journal{
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
		Logging: Logging{
			Level:  "warn",
			Format: "text",
		},
	}
}
