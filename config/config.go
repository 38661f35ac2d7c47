package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	AuthDBType  string
	Port        string
	JWTSecret   string
	PDFSavePath string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		GetLogger().Info("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		AuthDBType:  os.Getenv("AUTH_DB_TYPE"),
		Port:        os.Getenv("PORT"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		PDFSavePath: os.Getenv("PDF_SAVE_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AuthDBType == "" {
		cfg.AuthDBType = "postgres"
	}
	if cfg.PDFSavePath == "" {
		cfg.PDFSavePath = "./pdfs"
	}
	return cfg
}
