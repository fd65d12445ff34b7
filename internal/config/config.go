package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	APIBaseURL string
	APITimeout time.Duration
	SessionDB  string
	LogFile    string
}

func Load() Config {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		base = "http://localhost:8080/api"
	}
	timeout := 15 * time.Second
	if s := os.Getenv("API_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	sdb := os.Getenv("SESSION_DB")
	if sdb == "" {
		sdb = "petwell-sessions.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./petwell.log" // default log sink in project root
	}

	cfg := Config{Port: port, APIBaseURL: base, APITimeout: timeout, SessionDB: sdb, LogFile: logFile}
	log.Printf("[config] PORT=%s API_BASE_URL=%s API_TIMEOUT=%s SESSION_DB=%s LOG_FILE=%s",
		cfg.Port, cfg.APIBaseURL, cfg.APITimeout, cfg.SessionDB, cfg.LogFile)
	return cfg
}
