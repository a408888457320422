package env

import (
	"os"
	"path/filepath"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	DIET_CONFIG_PATH string

	DIET_LOG_PATH string
)

func init() {
	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	DIET_CONFIG_PATH = os.Getenv("DIET_CONFIG_PATH")
	if DIET_CONFIG_PATH == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				panic(err)
			}
			configDir = filepath.Join(homeDir, defaultXDGConfigDirname)
		}
		DIET_CONFIG_PATH = filepath.Join(configDir, "diet", "config.yaml")
	}

	DIET_LOG_PATH = os.Getenv("DIET_LOG_PATH")
	if DIET_LOG_PATH == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				panic(err)
			}
			dataDir = filepath.Join(homeDir, defaultXDGDataDirname)
		}
		DIET_LOG_PATH = filepath.Join(dataDir, "diet", "debug.log")
	}
}
