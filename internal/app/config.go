package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/orderbridge-backend/internal/data/db"
	"github.com/yungbote/orderbridge-backend/internal/platform/envutil"
)

type Config struct {
	LogMode     string   `yaml:"log_mode"`
	HTTPAddr    string   `yaml:"http_addr"`
	CORSOrigins []string `yaml:"cors_origins"`

	Postgres PostgresConfig `yaml:"postgres"`

	JWTSecretKey string        `yaml:"jwt_secret_key"`
	JWTLeeway    time.Duration `yaml:"jwt_leeway"`

	RedisAddr         string        `yaml:"redis_addr"`
	RedisPassword     string        `yaml:"redis_password"`
	RedisDB           int           `yaml:"redis_db"`
	DashboardCacheTTL time.Duration `yaml:"dashboard_cache_ttl"`

	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsAddr    string `yaml:"metrics_addr"`

	OtelEnabled     bool    `yaml:"otel_enabled"`
	OtelEndpoint    string  `yaml:"otel_endpoint"`
	OtelInsecure    bool    `yaml:"otel_insecure"`
	OtelSampleRatio float64 `yaml:"otel_sample_ratio"`
	ServiceName     string  `yaml:"service_name"`
	Environment     string  `yaml:"environment"`

	ListHydrateConcurrency int `yaml:"list_hydrate_concurrency"`
}

type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

func (p PostgresConfig) toDB() db.PostgresConfig {
	return db.PostgresConfig{
		DSN:             p.DSN,
		Host:            p.Host,
		Port:            p.Port,
		User:            p.User,
		Password:        p.Password,
		Name:            p.Name,
		SSLMode:         p.SSLMode,
		MaxOpenConns:    p.MaxOpenConns,
		MaxIdleConns:    p.MaxIdleConns,
		ConnMaxLifetime: p.ConnMaxLifetime,
	}
}

func defaultConfig() Config {
	return Config{
		LogMode:  "development",
		HTTPAddr: ":8080",
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "orders",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		JWTLeeway:              30 * time.Second,
		DashboardCacheTTL:      60 * time.Second,
		MetricsAddr:            ":9090",
		OtelSampleRatio:        0.1,
		ServiceName:            "orderbridge",
		Environment:            "development",
		ListHydrateConcurrency: 8,
	}
}

// LoadConfig reads the optional ORDERS_CONFIG_FILE and then applies
// environment overrides. The environment always wins.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("ORDERS_CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)
	c.HTTPAddr = envutil.String("HTTP_ADDR", c.HTTPAddr)
	if raw := envutil.String("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		c.CORSOrigins = splitList(raw)
	}

	c.Postgres.DSN = envutil.String("POSTGRES_DSN", c.Postgres.DSN)
	c.Postgres.Host = envutil.String("POSTGRES_HOST", c.Postgres.Host)
	c.Postgres.Port = envutil.String("POSTGRES_PORT", c.Postgres.Port)
	c.Postgres.User = envutil.String("POSTGRES_USER", c.Postgres.User)
	c.Postgres.Password = envutil.String("POSTGRES_PASSWORD", c.Postgres.Password)
	c.Postgres.Name = envutil.String("POSTGRES_NAME", c.Postgres.Name)
	c.Postgres.SSLMode = envutil.String("POSTGRES_SSLMODE", c.Postgres.SSLMode)
	c.Postgres.MaxOpenConns = envutil.Int("POSTGRES_MAX_OPEN_CONNS", c.Postgres.MaxOpenConns)
	c.Postgres.MaxIdleConns = envutil.Int("POSTGRES_MAX_IDLE_CONNS", c.Postgres.MaxIdleConns)

	c.JWTSecretKey = envutil.String("JWT_SECRET_KEY", c.JWTSecretKey)
	c.JWTLeeway = envutil.Duration("JWT_LEEWAY_SECONDS", c.JWTLeeway)

	c.RedisAddr = envutil.String("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = envutil.String("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = envutil.Int("REDIS_DB", c.RedisDB)
	c.DashboardCacheTTL = envutil.Duration("DASHBOARD_CACHE_TTL_SECONDS", c.DashboardCacheTTL)

	c.MetricsEnabled = envutil.Bool("METRICS_ENABLED", c.MetricsEnabled)
	c.MetricsAddr = envutil.String("METRICS_ADDR", c.MetricsAddr)

	c.OtelEnabled = envutil.Bool("OTEL_ENABLED", c.OtelEnabled)
	c.OtelEndpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.OtelEndpoint)
	c.OtelInsecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.OtelInsecure)
	c.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.ServiceName)
	c.Environment = envutil.String("APP_ENV", c.Environment)

	c.ListHydrateConcurrency = envutil.Int("LIST_HYDRATE_CONCURRENCY", c.ListHydrateConcurrency)
}

func (c Config) validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.ListHydrateConcurrency < 1 {
		return fmt.Errorf("LIST_HYDRATE_CONCURRENCY must be positive, got %d", c.ListHydrateConcurrency)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
