package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	_, err := units.FromHumanSize(fl.Field().String())
	return err == nil
}

// validateRegexp checks that the field compiles as a regular expression
func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String())
	return err == nil
}

// validateDuration accepts human durations such as "30m", "7 days" or "2w"
func validateDuration(fl validator.FieldLevel) bool {
	d, err := duration.Parse(fl.Field().String())
	return err == nil && d >= 0
}

// expandPath expands environment variables and "~" in paths
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}

	path = os.ExpandEnv(path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs, nil
}
