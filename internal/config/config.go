package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTLSec   int    `yaml:"ttl_sec"`
}

type HubSpotConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	APIBaseURL   string `yaml:"api_base_url"`  // https://api.hubapi.com (или hubapiqa для песочницы)
	AuthBaseURL  string `yaml:"auth_base_url"` // страница авторизации (app.hubspot.com)
	SuccessURL   string `yaml:"success_url"`   // куда редиректим после установки
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type AdminConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
	JWTSecret    string `yaml:"jwt_secret"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Redis   RedisConfig   `yaml:"redis"`
	HubSpot HubSpotConfig `yaml:"hubspot"`
	Admin   AdminConfig   `yaml:"admin"`
	Email   struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		OpsEmail     string `yaml:"ops_email"`
	} `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.HubSpot.APIBaseURL == "" {
		cfg.HubSpot.APIBaseURL = "https://api.hubapi.com"
	}
	if cfg.HubSpot.AuthBaseURL == "" {
		cfg.HubSpot.AuthBaseURL = "https://app.hubspot.com"
	}
	if cfg.Redis.TTLSec <= 0 {
		cfg.Redis.TTLSec = 300
	}
	return &cfg
}
