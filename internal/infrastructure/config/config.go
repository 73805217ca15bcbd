package config

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Integration IntegrationConfig
	Scheduler   SchedulerConfig
	Storage     StorageConfig
	Security    SecurityConfig
	Swagger     SwaggerConfig
	Telemetry   TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                string
	AccessTokenExpiration time.Duration
	Issuer                string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// IntegrationConfig holds gateway and reconciliation settings
type IntegrationConfig struct {
	GatewayTimeout         time.Duration
	DefaultEStoreEndpoint  string
	DefaultCourierEndpoint string
	MatchedProductPolicy   string // keep, refresh
	SyncLockTTL            time.Duration
}

// SchedulerConfig holds the periodic store sync configuration
type SchedulerConfig struct {
	Enabled           bool
	Interval          time.Duration
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
}

// StorageConfig holds the gateway snapshot archive settings
type StorageConfig struct {
	SnapshotsEnabled bool
	Bucket           string
	Region           string
	Endpoint         string // custom endpoint for MinIO or LocalStack
	AccessKeyID      string
	SecretAccessKey  string
	UsePathStyle     bool
	Prefix           string
}

// SecurityConfig holds secrets used at rest
type SecurityConfig struct {
	// TokenEncryptionKey is a base64 encoded 32 byte key for integration tokens
	TokenEncryptionKey string
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled    bool
	AllowedIPs []string // IPs or CIDRs; empty allows everyone
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	MetricsInterval   time.Duration
	LogsEnabled       bool
	// Database tracing options
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
	// Continuous profiling
	ProfilingEnabled   bool
	PyroscopeEndpoint  string
	SpanProfiles       bool
	ProfileMutexBlocks bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with UNIKHATA_ prefix (e.g., UNIKHATA_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

// fromViper builds, defaults and validates a Config
func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("UNIKHATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
			Issuer:                v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Integration: IntegrationConfig{
			GatewayTimeout:         v.GetDuration("integration.gateway_timeout"),
			DefaultEStoreEndpoint:  v.GetString("integration.default_estore_endpoint"),
			DefaultCourierEndpoint: v.GetString("integration.default_courier_endpoint"),
			MatchedProductPolicy:   v.GetString("integration.matched_product_policy"),
			SyncLockTTL:            v.GetDuration("integration.sync_lock_ttl"),
		},
		Scheduler: SchedulerConfig{
			Enabled:           v.GetBool("scheduler.enabled"),
			Interval:          v.GetDuration("scheduler.interval"),
			MaxConcurrentJobs: v.GetInt("scheduler.max_concurrent_jobs"),
			JobTimeout:        v.GetDuration("scheduler.job_timeout"),
			RetryAttempts:     v.GetInt("scheduler.retry_attempts"),
			RetryDelay:        v.GetDuration("scheduler.retry_delay"),
		},
		Storage: StorageConfig{
			SnapshotsEnabled: v.GetBool("storage.snapshots_enabled"),
			Bucket:           v.GetString("storage.bucket"),
			Region:           v.GetString("storage.region"),
			Endpoint:         v.GetString("storage.endpoint"),
			AccessKeyID:      v.GetString("storage.access_key_id"),
			SecretAccessKey:  v.GetString("storage.secret_access_key"),
			UsePathStyle:     v.GetBool("storage.use_path_style"),
			Prefix:           v.GetString("storage.prefix"),
		},
		Security: SecurityConfig{
			TokenEncryptionKey: v.GetString("security.token_encryption_key"),
		},
		Swagger: SwaggerConfig{
			Enabled:    v.GetBool("swagger.enabled"),
			AllowedIPs: v.GetStringSlice("swagger.allowed_ips"),
		},
		Telemetry: TelemetryConfig{
			Enabled:            v.GetBool("telemetry.enabled"),
			CollectorEndpoint:  v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:      v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:        v.GetString("telemetry.service_name"),
			Insecure:           v.GetBool("telemetry.insecure"),
			MetricsInterval:    v.GetDuration("telemetry.metrics_interval"),
			LogsEnabled:        v.GetBool("telemetry.logs_enabled"),
			DBTraceEnabled:     v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:       v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh:  v.GetDuration("telemetry.db_slow_query_threshold"),
			ProfilingEnabled:   v.GetBool("telemetry.profiling_enabled"),
			PyroscopeEndpoint:  v.GetString("telemetry.pyroscope_endpoint"),
			SpanProfiles:       v.GetBool("telemetry.span_profiles"),
			ProfileMutexBlocks: v.GetBool("telemetry.profile_mutex_blocks"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "unikhata"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "unikhata"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "unikhata"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// pulls call gateways sequentially, so allow several gateway timeouts
		cfg.HTTP.WriteTimeout = 2 * time.Minute
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Integration.GatewayTimeout == 0 {
		cfg.Integration.GatewayTimeout = 15 * time.Second
	}
	if cfg.Integration.DefaultEStoreEndpoint == "" {
		cfg.Integration.DefaultEStoreEndpoint = "http://localhost:4000"
	}
	if cfg.Integration.DefaultCourierEndpoint == "" {
		cfg.Integration.DefaultCourierEndpoint = "http://localhost:4002"
	}
	if cfg.Integration.MatchedProductPolicy == "" {
		cfg.Integration.MatchedProductPolicy = "keep"
	}
	if cfg.Integration.SyncLockTTL == 0 {
		cfg.Integration.SyncLockTTL = 5 * time.Minute
	}
	if cfg.Scheduler.Interval == 0 {
		cfg.Scheduler.Interval = 15 * time.Minute
	}
	if cfg.Scheduler.MaxConcurrentJobs == 0 {
		cfg.Scheduler.MaxConcurrentJobs = 3
	}
	if cfg.Scheduler.JobTimeout == 0 {
		cfg.Scheduler.JobTimeout = 5 * time.Minute
	}
	if cfg.Scheduler.RetryAttempts == 0 {
		cfg.Scheduler.RetryAttempts = 3
	}
	if cfg.Scheduler.RetryDelay == 0 {
		cfg.Scheduler.RetryDelay = 30 * time.Second
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.Prefix == "" {
		cfg.Storage.Prefix = "snapshots"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "unikhata"
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Telemetry.PyroscopeEndpoint == "" {
		cfg.Telemetry.PyroscopeEndpoint = "http://localhost:4040"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Integration.GatewayTimeout < time.Second || c.Integration.GatewayTimeout > 120*time.Second {
		return fmt.Errorf("integration.gateway_timeout must be between 1s and 120s, got %s", c.Integration.GatewayTimeout)
	}
	switch c.Integration.MatchedProductPolicy {
	case "keep", "refresh":
	default:
		return fmt.Errorf("integration.matched_product_policy must be keep or refresh, got %q", c.Integration.MatchedProductPolicy)
	}
	for name, endpoint := range map[string]string{
		"integration.default_estore_endpoint":  c.Integration.DefaultEStoreEndpoint,
		"integration.default_courier_endpoint": c.Integration.DefaultCourierEndpoint,
	} {
		u, err := url.Parse(endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, endpoint)
		}
	}

	if c.Scheduler.Enabled && c.Scheduler.MaxConcurrentJobs <= 0 {
		return fmt.Errorf("scheduler.max_concurrent_jobs must be positive")
	}
	if c.Storage.SnapshotsEnabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage.snapshots_enabled is true")
	}

	if key := c.Security.TokenEncryptionKey; key != "" {
		raw, err := base64.StdEncoding.DecodeString(key)
		if err != nil || len(raw) != 32 {
			return fmt.Errorf("security.token_encryption_key must be 32 bytes, base64 encoded")
		}
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.Security.TokenEncryptionKey == "" {
			return fmt.Errorf("security.token_encryption_key is required in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Swagger.Enabled {
			return fmt.Errorf("swagger must be disabled in production")
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production to prevent sensitive data exposure in traces")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
