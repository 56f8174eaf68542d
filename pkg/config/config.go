package config

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	CloudinaryURL    string `koanf:"cloudinary_url"`
	DatabaseDebug    bool   `koanf:"database_debug"`
	DatabaseFilePath string `koanf:"database_file_path"`
	JWTSecret        string `koanf:"jwt_secret"`
	ServerHost       string `koanf:"server_host"`
	ServerPort       int    `koanf:"server_port"`
	UploadsDir       string `koanf:"uploads_dir"`

	// Tuning knobs that aren't exposed through the config file.
	DatabaseBusyTimeout       time.Duration `koanf:"-"`
	DatabaseConnectRetryCount int           `koanf:"-"`
	DatabaseConnectRetryDelay time.Duration `koanf:"-"`
	DatabaseMaxRetries        int           `koanf:"-"`
	Hostname                  string        `koanf:"-"`
}

// Fields that must be set through the config file or environment for the
// server to boot.
var requiredFields = []string{
	"DatabaseFilePath",
	"JWTSecret",
}

func defaults() *Config {
	return &Config{
		ServerHost: "0.0.0.0",
		ServerPort: 5513,
		UploadsDir: "./tmp/uploads",

		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
	}
}

// New loads config from an optional YAML file (pointed to by CONFIG_FILE) and
// the environment. Environment variables take precedence over file values;
// keys map by snake case, e.g. DATABASE_FILE_PATH -> database_file_path.
func New() (*Config, error) {
	cfg := defaults()

	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	cfg.Hostname = hostname

	k := koanf.New(".")

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "./config.yaml"
	}
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !errors.Is(errors.Cause(err), fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	missing := []string{}
	for _, field := range requiredFields {
		switch field {
		case "DatabaseFilePath":
			if cfg.DatabaseFilePath == "" {
				missing = append(missing, field)
			}
		case "JWTSecret":
			if cfg.JWTSecret == "" {
				missing = append(missing, field)
			}
		}
	}
	if len(missing) > 0 {
		parts := make([]string, 0, len(missing))
		for _, field := range missing {
			parts = append(parts, fmt.Sprintf("%s (%s)", strings.ToUpper(toSnakeCase(field)), toSnakeCase(field)))
		}
		return nil, errors.Errorf("missing required config: %s", strings.Join(parts, ", "))
	}

	return cfg, nil
}

// NewForTest returns a config suitable for tests: in-memory database, local
// bind address, and a throwaway secret.
func NewForTest() *Config {
	cfg := defaults()
	cfg.DatabaseFilePath = ":memory:"
	cfg.Hostname = "test"
	cfg.JWTSecret = "test-jwt-secret"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
	cfg.UploadsDir = os.TempDir()
	return cfg
}

func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
