package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/diet/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/k1LoW/duration"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

var validate *validator.Validate

type Config struct {
	Backend   Backend   `yaml:"backend"`
	Retention Retention `yaml:"retention"`
	Journal   Journal   `yaml:"journal"`
	Logging   Logging   `yaml:"logging"`
	Metrics   Metrics   `yaml:"metrics"`
}

type Backend struct {
	Type   string `yaml:"type" validate:"required,oneof=gdrive s3 local"`
	GDrive GDrive `yaml:"gdrive"`
	S3     S3     `yaml:"s3"`
	Local  Local  `yaml:"local"`
}

type GDrive struct {
	Credentials string `yaml:"credentials"`
	Token       string `yaml:"token"`
}

type S3 struct {
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

type Local struct {
	Root string `yaml:"root"`
}

type Retention struct {
	Sort         string   `yaml:"sort" validate:"required,oneof=modifiedTime createdTime name size"`
	Reverse      bool     `yaml:"reverse"`
	Extensions   []string `yaml:"extensions"`
	Exclude      string   `yaml:"exclude" validate:"omitempty,validRegexp"`
	ExcludeGlobs []string `yaml:"exclude_globs" validate:"dive,validGlob"`
	MinAge       string   `yaml:"min_age" validate:"omitempty,validDuration"`
}

type Journal struct {
	Path     string   `yaml:"path"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"omitempty,validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

type Logging struct {
	Level  string `yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"required,oneof=text json logfmt"`
}

type Metrics struct {
	Textfile string `yaml:"textfile"`
}

// MinAgeDuration returns the parsed retention.min_age, zero when unset
func (r Retention) MinAgeDuration() (time.Duration, error) {
	if strings.TrimSpace(r.MinAge) == "" {
		return 0, nil
	}
	return duration.Parse(r.MinAge)
}

type configError struct {
	configPath string
	parser     parser
	err        error
}

type parser struct{}

func (p parser) getDefaultConfigContents() string {
	content, _ := yaml.Marshal(NewDefaultConfig())
	return string(content)
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't read the "%s" config file.
		Please try again after creating it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		env.DIET_CONFIG_PATH,
		e.parser.getDefaultConfigContents(),
		indent.String(e.err.Error(), 2),
	)
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := *NewDefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{
			configPath: path,
			parser:     p,
			err:        err,
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := p.expandPaths(&cfg); err != nil {
		return cfg, err
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, err := range verrs {
				return cfg, fmt.Errorf("validation error: Field %s, %q is invalid", err.Namespace(), err.Value())
			}
		}
		return cfg, err
	}
	return cfg, nil
}

func (p parser) expandPaths(cfg *Config) error {
	for _, path := range []*string{
		&cfg.Backend.GDrive.Credentials,
		&cfg.Backend.GDrive.Token,
		&cfg.Backend.Local.Root,
		&cfg.Journal.Path,
		&cfg.Metrics.Textfile,
	} {
		if *path == "" {
			continue
		}
		expanded, err := expandPath(*path)
		if err != nil {
			return err
		}
		*path = expanded
	}
	return nil
}

func initParser() parser {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("validSize", validateSize)
	_ = validate.RegisterValidation("validRegexp", validateRegexp)
	_ = validate.RegisterValidation("validGlob", validateGlob)
	_ = validate.RegisterValidation("validDuration", validateDuration)

	return parser{}
}

// Parse reads the config file at path. An empty path selects the default
// location; when nothing exists there the built-in defaults are returned.
func Parse(path string) (Config, error) {
	parser := initParser()

	configPath := path
	if configPath == "" {
		configPath = env.DIET_CONFIG_PATH
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no config file, using defaults", "config-file", configPath)
			return *NewDefaultConfig(), nil
		}
	}
	slog.Debug("config file found", "config-file", configPath)

	cfg, err := parser.readConfigFile(configPath)
	if err != nil {
		return cfg, parsingError{err: err}
	}

	return cfg, nil
}
