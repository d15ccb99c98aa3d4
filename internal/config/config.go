package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	APIKey     string `yaml:"api_key" env:"API_KEY" env-required:"true"`
	HTTPServer `yaml:"http_server"`
	Database   Database `yaml:"database"`
	Upstream   Upstream `yaml:"upstream"`
	Sync       Sync     `yaml:"sync"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-required:"true"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type Upstream struct {
	URL               string        `yaml:"url" env:"UPSTREAM_URL" env-required:"true"`
	APIKey            string        `yaml:"api_key" env:"UPSTREAM_API_KEY" env-required:"true"`
	Timeout           time.Duration `yaml:"timeout" env-default:"10s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env-default:"5"`
	Workers           int           `yaml:"workers" env-default:"10"`
}

type Sync struct {
	IncrementalInterval time.Duration `yaml:"incremental_interval" env-default:"5m"`
	RefreshInterval     time.Duration `yaml:"refresh_interval" env-default:"30m"`
	RatesInterval       time.Duration `yaml:"rates_interval" env-default:"24h"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
