package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`

	Engine struct {
		CompanyJobsWindowDays   int `yaml:"company_jobs_window_days"`
		StatusWindowDays        int `yaml:"status_window_days"`
		RetentionDays           int `yaml:"retention_days"`
		RunIntervalMinutes      int `yaml:"run_interval_minutes"`
		DispatchIntervalSeconds int `yaml:"dispatch_interval_seconds"`
	} `yaml:"engine"`

	AI struct {
		GeminiModel string `yaml:"gemini_model"`
	} `yaml:"ai"`
}

var AppConfig *Config

// LoadConfig prefers environment variables (test and container deployments)
// and falls back to the yaml file.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyEngineDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLMinutes = 60

	applyEngineDefaults(&cfg)
	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func applyEngineDefaults(cfg *Config) {
	if cfg.Engine.CompanyJobsWindowDays == 0 {
		cfg.Engine.CompanyJobsWindowDays = 30
	}
	if cfg.Engine.StatusWindowDays == 0 {
		cfg.Engine.StatusWindowDays = 7
	}
	if cfg.Engine.RetentionDays == 0 {
		cfg.Engine.RetentionDays = 30
	}
	if cfg.Engine.RunIntervalMinutes == 0 {
		cfg.Engine.RunIntervalMinutes = 60
	}
	if cfg.Engine.DispatchIntervalSeconds == 0 {
		cfg.Engine.DispatchIntervalSeconds = 30
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
}
