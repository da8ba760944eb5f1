package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvProduction = "production"

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Portfolio PortfolioConfig
	HTTP      HTTPConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(a.Environment), EnvProduction)
}

type DatabaseConfig struct {
	URL        string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration

	// Generated is set when Secret was not configured and a per-process
	// secret was created instead. Never true in production.
	Generated bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type PortfolioConfig struct {
	PublicOwnerUserID   int64
	CatalogWritesPublic bool
	AutoMigrate         bool
	MigrationsDir       string
}

type HTTPConfig struct {
	RateLimitEnabled bool
	CORSAllowOrigins string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidValue       = errors.New("invalid configuration value")
)

// Load reads configuration from an optional YAML file (CONFIG_FILE), a .env
// file in the working directory and the process environment. Environment
// values win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if path := strings.TrimSpace(v.GetString("config_file")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("jwt_expires_in", "0s")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_ttl", "600s")
	v.SetDefault("public_owner_user_id", 1)
	v.SetDefault("catalog_writes_public", false)
	v.SetDefault("auto_migrate", true)
	v.SetDefault("migrations_dir", "migrations")
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("cors_allow_origins", "*")
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, strings.ToUpper(key))
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	dur := func(key string) time.Duration {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, strings.ToUpper(key))
			return 0
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("app_name"),
		Environment: req("app_env"),
		HTTPPort:    req("http_port"),
	}

	cfg.Database = DatabaseConfig{
		URL:                   opt("database_url"),
		DBHost:                opt("db_host"),
		DBPort:                opt("db_port"),
		DBName:                opt("db_name"),
		DBUser:                opt("db_user"),
		DBPassword:            v.GetString("db_password"),
		DBSSLMode:             opt("db_ssl_mode"),
		ConnectTimeout:        dur("db_connect_timeout"),
		PoolMaxConns:          v.GetInt32("db_pool_max_conns"),
		PoolMinConns:          v.GetInt32("db_pool_min_conns"),
		PoolMaxConnLifetime:   dur("db_pool_max_conn_lifetime"),
		PoolMaxConnIdleTime:   dur("db_pool_max_conn_idle_time"),
		PoolHealthCheckPeriod: dur("db_pool_health_check_period"),
	}

	cfg.JWT = JWTConfig{
		Secret:    opt("jwt_secret"),
		ExpiresIn: dur("jwt_expires_in"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("redis_host"),
		Port:     opt("redis_port"),
		Password: opt("redis_password"),
		TTL:      dur("redis_ttl"),
	}

	cfg.Portfolio = PortfolioConfig{
		PublicOwnerUserID:   v.GetInt64("public_owner_user_id"),
		CatalogWritesPublic: v.GetBool("catalog_writes_public"),
		AutoMigrate:         v.GetBool("auto_migrate"),
		MigrationsDir:       opt("migrations_dir"),
	}
	if cfg.Portfolio.PublicOwnerUserID <= 0 {
		invalid = append(invalid, "PUBLIC_OWNER_USER_ID")
	}

	cfg.HTTP = HTTPConfig{
		RateLimitEnabled: v.GetBool("rate_limit_enabled"),
		CORSAllowOrigins: opt("cors_allow_origins"),
	}

	if cfg.JWT.Secret == "" {
		if cfg.App.IsProduction() {
			missing = append(missing, "JWT_SECRET")
		} else {
			secret, err := randomSecret()
			if err != nil {
				return Config{}, fmt.Errorf("generate jwt secret: %w", err)
			}
			cfg.JWT.Secret = secret
			cfg.JWT.Generated = true
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidValue, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
