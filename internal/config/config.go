package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer  `yaml:"http_server"`
	Database    `yaml:"database"`
	Backend     `yaml:"backend"`
	Cache       `yaml:"cache"`
	FrontendDir string `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:"./frontend-dist"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8000"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Database struct {
	User      string `yaml:"db_user" env:"DB_USER"`
	Password  string `yaml:"db_password" env:"DB_PASSWORD"`
	Host      string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	Port      int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	Name      string `yaml:"db_name" env:"DB_NAME"`
	ParseTime bool   `yaml:"parse_time" env-default:"true"`
}

// Backend points the form endpoints at another report API instead of the
// local database. Empty URL means local storage.
type Backend struct {
	URL     string        `yaml:"url" env:"BACKEND_URL"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type Cache struct {
	TTL time.Duration `yaml:"ttl" env-default:"5m"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
		d.ParseTime,
	)
}

// Validate requires database credentials only when reports are kept locally.
func (c Config) Validate() error {
	if c.Backend.URL != "" {
		return nil
	}
	if c.Database.User == "" || c.Database.Name == "" {
		return fmt.Errorf("db_user and db_name are required when backend.url is empty")
	}
	return nil
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %s", err)
	}

	return &cfg
}
