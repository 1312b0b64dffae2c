package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `yaml:"env" env-default:"local"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	RedisAddr   string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	HTTPServer  `yaml:"http_server"`
	Booking     Booking `yaml:"booking"`
	AI          AI      `yaml:"ai"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

type Booking struct {
	SlotDurationMinutes int           `yaml:"slot_duration_minutes" env-default:"15"`
	HorizonDays         int           `yaml:"horizon_days" env-default:"21"`
	LockTTL             time.Duration `yaml:"lock_ttl" env-default:"10s"`
}

type AI struct {
	AnalysisURL string        `yaml:"analysis_url" env:"AI_ANALYSIS_URL"`
	AdviceURL   string        `yaml:"advice_url" env:"AI_ADVICE_URL"`
	Timeout     time.Duration `yaml:"timeout" env-default:"20s"`
}

func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return &cfg
}
