package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	CatalogBaseURL string
	DBDSN          string
	LogFile        string
	CatalogRPS     float64
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := os.Getenv("CATALOG_BASE_URL")
	if base == "" {
		base = "https://fakestoreapi.com"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "storefront.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./storefront.log"
	}
	rps := 5.0
	if v := os.Getenv("CATALOG_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rps = f
		}
	}

	cfg := Config{Port: port, CatalogBaseURL: base, DBDSN: dsn, LogFile: logFile, CatalogRPS: rps}
	log.Printf("[config] PORT=%s CATALOG_BASE_URL=%s DB_DSN=%s LOG_FILE=%s CATALOG_RPS=%.1f",
		cfg.Port, cfg.CatalogBaseURL, cfg.DBDSN, cfg.LogFile, cfg.CatalogRPS)
	return cfg
}
