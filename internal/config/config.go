package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverMySQL     = "mysql"
)

// ---- Root ----

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ---- Leaf structs ----

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	CORSOrigin      string        `mapstructure:"cors_origin"`
	BodyLimit       string        `mapstructure:"body_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`
	URL     string        `mapstructure:"url"`
	Key     string        `mapstructure:"key"`
	Table   string        `mapstructure:"table"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	FailThreshold int           `mapstructure:"fail_threshold"`
	OpenFor       time.Duration `mapstructure:"open_for"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Unprefixed variable names the site's deployment already uses.
var legacyEnv = map[string][]string{
	"http.port":        {"PORT"},
	"http.cors_origin": {"CORS_ORIGIN"},
	"admin.email":      {"ADMIN_EMAIL"},
	"admin.password":   {"ADMIN_PASSWORD"},
	"store.url":        {"SUPABASE_URL", "VITE_SUPABASE_URL"},
	"store.key":        {"SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY"},
	"database.dsn":     {"DATABASE_URL"},
	"log.level":        {"LOG_LEVEL"},
}

// Load reads embedded defaults, merges user YAML (if provided), and applies env
// overrides (HPE_* first, then the legacy names above). It does not validate.
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("merge %s: %w", path, err)
			}
		}
	}

	// env override (HPE_HTTP_PORT, HPE_STORE_URL, ...)
	v.SetEnvPrefix("HPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range legacyEnv {
		args := append([]string{key, "HPE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)
		if err := v.BindEnv(args...); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the process cannot start without.
func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", c.HTTP.Port)
	}
	switch c.Store.Driver {
	case DriverPostgREST:
		if c.Store.URL == "" || c.Store.Key == "" {
			return errors.New("missing store connection: store.url and store.key are required for the postgrest driver")
		}
	case DriverPostgres, DriverMySQL:
		if c.Database.DSN == "" {
			return fmt.Errorf("missing store connection: database.dsn is required for the %s driver", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		return errors.New("admin.email and admin.password must not be empty")
	}
	return nil
}
