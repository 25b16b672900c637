package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type FileRotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  FileRotate
}

type Redis struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlSec"`
}

// DB selects the user store. Driver is one of mongo, postgres, mysql, memory.
type DB struct {
	Driver            string
	URI               string // mongo connection string
	Database          string
	Collection        string
	ConnectTimeoutSec int

	DSN                string // gorm drivers
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Limits struct {
	RPS            float64
	Burst          int
	PerIP          bool // one bucket per client IP instead of a global one
	MaxInFlight    int64
	MaxBodyBytes   int64
	RequestTimeout int // seconds
}

type Validation struct {
	Strict bool
}

type Client struct {
	BaseURL    string `mapstructure:"baseURL"`
	TimeoutSec int    `mapstructure:"timeoutSec"`
}

type Config struct {
	App        App
	Log        Log
	DB         DB
	Redis      Redis `mapstructure:"redis"`
	Limits     Limits
	Validation Validation
	Client     Client `mapstructure:"client"`
}

func (c *Config) IsProduction() bool { return c.App.Env == "production" }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "users-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/users-api.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("db.driver", "mongo")
	v.SetDefault("db.uri", "mongodb://mongo:27017/mern-tutorial")
	v.SetDefault("db.database", "mern-tutorial")
	v.SetDefault("db.collection", "users")
	v.SetDefault("db.connectTimeoutSec", 10)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.enable", false)
	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttlSec", 30)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.perIP", false)
	v.SetDefault("limits.maxInFlight", 300)
	v.SetDefault("limits.maxBodyBytes", 1<<20)
	v.SetDefault("limits.requestTimeout", 10)

	v.SetDefault("validation.strict", false)

	v.SetDefault("client.baseURL", "http://localhost:5000/api")
	v.SetDefault("client.timeoutSec", 10)
}

// Parse reads the YAML file at path (optional) and overlays APP_* environment
// variables plus the plain names used by the container setup.
func Parse(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// first name wins
	_ = v.BindEnv("db.uri", "APP_DB_URI", "MONGO_URL")
	_ = v.BindEnv("app.http.port", "APP_APP_HTTP_PORT", "PORT")
	_ = v.BindEnv("app.env", "APP_APP_ENV", "NODE_ENV")
	_ = v.BindEnv("client.baseURL", "APP_CLIENT_BASEURL", "API_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Load(path string) *Config {
	c, err := Parse(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}
