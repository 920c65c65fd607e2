package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// Platbox gateway credentials. OpenKey doubles as the merchant id.
	OpenKey     string
	SecretKey   string
	ProjectName string
	RedirectURL string
	Production  bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      os.Getenv("DB_PORT"),
		AppPort:     os.Getenv("APP_PORT"),
		AppEnv:      os.Getenv("APP_ENV"),
		OpenKey:     os.Getenv("PLATBOX_OPEN_KEY"),
		SecretKey:   os.Getenv("PLATBOX_SECRET_KEY"),
		ProjectName: os.Getenv("PLATBOX_PROJECT"),
		RedirectURL: os.Getenv("PLATBOX_REDIRECT_URL"),
		Production:  os.Getenv("PLATBOX_PRODUCTION") == "yes",
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.SecretKey == "" {
		log.Fatal("PLATBOX_SECRET_KEY must be set, callbacks cannot be verified without it")
	}

	return cfg
}
