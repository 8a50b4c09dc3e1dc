package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// Access Gate modes
const (
	AuthModeRemote = "remote"
	AuthModeJWT    = "jwt"
)

// Draw lock modes
const (
	LockModeNone  = "none"
	LockModeLocal = "local"
	LockModeRedis = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Music    MusicConfig
	Redis    RedisConfig
	Draw     DrawConfig
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// StorageConfig selects the repository implementation
type StorageConfig struct {
	Driver string
}

// AuthConfig holds Access Gate configuration
type AuthConfig struct {
	Mode        string
	ServiceURL  string        `mapstructure:"service_url"`
	Timeout     time.Duration
	JWTSecret   string        `mapstructure:"jwt_secret"`
	JWTIssuer   string        `mapstructure:"jwt_issuer"`
	JWTAudience string        `mapstructure:"jwt_audience"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// MusicConfig holds the music request service location
type MusicConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Timeout    time.Duration
}

// RedisConfig holds Redis connection settings. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DrawConfig holds draw execution settings
type DrawConfig struct {
	LockMode string        `mapstructure:"lock_mode"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

// Load loads configuration from a .env file, config files and environment variables.
// Environment variables win over config files.
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults sets default values for configuration.
// Every key needs a default so that AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "srecke")
	v.SetDefault("mongodb.connect_timeout", 10*time.Second)
	v.SetDefault("storage.driver", StorageMongoDB)
	v.SetDefault("auth.mode", AuthModeRemote)
	v.SetDefault("auth.service_url", "http://user_service:8000/auth/verify-token")
	v.SetDefault("auth.timeout", 5*time.Second)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_issuer", "")
	v.SetDefault("auth.jwt_audience", "")
	v.SetDefault("auth.cache_ttl", time.Duration(0))
	v.SetDefault("music.service_url", "http://music_service:8000")
	v.SetDefault("music.timeout", 10*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("draw.lock_mode", LockModeLocal)
	v.SetDefault("draw.lock_ttl", 30*time.Second)
	v.SetDefault("log_level", "info")
}

func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Auth.Mode = strings.ToLower(strings.TrimSpace(c.Auth.Mode))
	c.Draw.LockMode = strings.ToLower(strings.TrimSpace(c.Draw.LockMode))
	c.Redis.Addr = strings.TrimSpace(c.Redis.Addr)

	origins := c.Server.AllowedOrigins[:0]
	for _, o := range c.Server.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.Server.AllowedOrigins = origins
}

// Validate rejects unknown modes and settings that a selected mode cannot run without
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageMongoDB:
		if c.MongoDB.URI == "" || c.MongoDB.Database == "" {
			errs = append(errs, errors.New("mongodb storage requires MONGODB_URI and MONGODB_DATABASE"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	switch c.Auth.Mode {
	case AuthModeRemote:
		if c.Auth.ServiceURL == "" {
			errs = append(errs, errors.New("remote auth requires AUTH_SERVICE_URL"))
		}
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("jwt auth requires AUTH_JWT_SECRET"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown auth mode %q", c.Auth.Mode))
	}

	if c.Auth.CacheTTL < 0 {
		errs = append(errs, errors.New("AUTH_CACHE_TTL must not be negative"))
	}
	if c.Auth.CacheTTL > 0 && c.Redis.Addr == "" {
		errs = append(errs, errors.New("AUTH_CACHE_TTL requires REDIS_ADDR"))
	}

	switch c.Draw.LockMode {
	case LockModeNone, LockModeLocal:
	case LockModeRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis draw lock requires REDIS_ADDR"))
		}
		if c.Draw.LockTTL <= 0 {
			errs = append(errs, errors.New("DRAW_LOCK_TTL must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown draw lock mode %q", c.Draw.LockMode))
	}

	return errors.Join(errs...)
}
