package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger       string             `yaml:"jaeger" env:"JAEGER"`
	Log          LogConfig          `yaml:"log"`
	HTTP         HTTPConfig         `yaml:"http"`
	FootballData FootballDataConfig `yaml:"football_data"`
	Display      DisplayConfig      `yaml:"display"`
	Quota        QuotaConfig        `yaml:"quota"`
	Redis        RedisConfig        `yaml:"redis"`
	DB           DBConfig           `yaml:"db"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"12s" validate:"gt=0"`
}

type FootballDataConfig struct {
	BaseURL string        `yaml:"base_url" env:"FOOTBALL_DATA_BASE_URL" env-default:"https://api.football-data.org/v4" validate:"required,url"`
	APIKey  string        `yaml:"api_key" env:"FOOTBALL_DATA_API_KEY" env-required:"true" validate:"required"`
	Timeout time.Duration `yaml:"timeout" env:"FOOTBALL_DATA_TIMEOUT" env-default:"10s" validate:"gt=0"`
}

type DisplayConfig struct {
	Timezone     string `yaml:"timezone" env:"DISPLAY_TIMEZONE" env-default:"Europe/Paris" validate:"required,timezone"`
	DebugEnabled bool   `yaml:"debug_enabled" env:"DISPLAY_DEBUG_ENABLED" env-default:"false"`
}

type QuotaConfig struct {
	Enabled           bool          `yaml:"enabled" env:"QUOTA_ENABLED" env-default:"false"`
	RequestsPerMinute int64         `yaml:"requests_per_minute" env:"QUOTA_REQUESTS_PER_MINUTE" env-default:"10" validate:"gt=0"`
	KeyPrefix         string        `yaml:"key_prefix" env:"QUOTA_KEY_PREFIX" env-default:"footballdata:requests"`
	Window            time.Duration `yaml:"window" env:"QUOTA_WINDOW" env-default:"1m" validate:"gt=0"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type DBConfig struct {
	DSN      string `yaml:"dsn" env:"DB_DSN"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"require"`
}

// Enabled reports whether a fetch journal database was configured.
func (c DBConfig) Enabled() bool {
	return strings.TrimSpace(c.DSN) != "" || strings.TrimSpace(c.Host) != ""
}

func (c DBConfig) DatabaseURL() string {
	if c.DSN != "" {
		return c.DSN
	}

	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}

	q := u.Query()
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()

	return u.String()
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

// MustLoadByPath panics when the file is missing, unreadable or invalid. A missing
// football-data API key is reported here, before anything touches the network.
func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exists: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	return &cfg
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.FootballData.APIKey) == "" {
		return fmt.Errorf("football-data API key is missing: set FOOTBALL_DATA_API_KEY or football_data.api_key")
	}
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
