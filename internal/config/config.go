package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	BKT       BKTConfig       `mapstructure:"bkt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string        `mapstructure:"secret"`
	ExpireTime    time.Duration `mapstructure:"expire_hours"`
	AdminUser     string        `mapstructure:"admin_user"`
	AdminPassHash string        `mapstructure:"admin_pass_hash"`
}

// BKTConfig carries the fallback BKT parameters used when a theme has no
// trained entry, plus the knobs of the prediction step.
type BKTConfig struct {
	ParamsFile        string  `mapstructure:"params_file"`
	Transition        float64 `mapstructure:"transition"`
	Guess             float64 `mapstructure:"guess"`
	Slip              float64 `mapstructure:"slip"`
	Prior             float64 `mapstructure:"prior"`
	TargetSuccess     float64 `mapstructure:"target_success"`
	MinAggregatePrior float64 `mapstructure:"min_aggregate_prior"`
	MaxAggregatePrior float64 `mapstructure:"max_aggregate_prior"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioObject   string `mapstructure:"minio_object"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("BKT_PREDICTOR")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Database
	viper.BindEnv("database.enabled", "DATABASE_ENABLED")
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.enabled", "REDIS_ENABLED")
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT / admin credential
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.admin_user", "ADMIN_USER")
	viper.BindEnv("jwt.admin_pass_hash", "ADMIN_PASS_HASH")

	// BKT parameters. The env names are the contract of the original
	// deployment: BKT_PARAMS_JSON points at the trained pyBKT export,
	// BKT_T/G/S/PRIOR are the fallbacks for untrained themes.
	viper.BindEnv("bkt.params_file", "BKT_PARAMS_JSON")
	viper.BindEnv("bkt.transition", "BKT_T")
	viper.BindEnv("bkt.guess", "BKT_G")
	viper.BindEnv("bkt.slip", "BKT_S")
	viper.BindEnv("bkt.prior", "BKT_PRIOR")

	// Storage (remote params snapshots)
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	viper.BindEnv("storage.minio_object", "MINIO_OBJECT")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("server.port", "8001")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("bkt.transition", 0.15)
	viper.SetDefault("bkt.guess", 0.20)
	viper.SetDefault("bkt.slip", 0.10)
	viper.SetDefault("bkt.prior", 0.10)
	viper.SetDefault("bkt.target_success", 0.70)
	viper.SetDefault("bkt.min_aggregate_prior", 0.05)
	viper.SetDefault("bkt.max_aggregate_prior", 0.95)
	viper.SetDefault("rate_limit.max_requests", 100000)
	viper.SetDefault("rate_limit.window_minutes", 1)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}
