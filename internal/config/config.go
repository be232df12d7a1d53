// Package config reads server and game settings from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds every tunable of the binary.
type Config struct {
	Port         string // PORT
	LogLevel     string // LOG_LEVEL
	DBPath       string // DB_PATH
	DailySalt    string // DAILY_SALT
	JWTSecret    string // JWT_SECRET
	JWTDays      int    // JWT_EXPIRES_DAYS
	CookieName   string // COOKIE_NAME
	ClientOrigin string // CLIENT_ORIGIN
	Production   bool   // NODE_ENV=production

	WordsFile         string // WORDS_FILE (empty: embedded basic list)
	WordsHardcoreFile string // WORDS_HARDCORE_FILE (empty: embedded hardcore list)
	NumWords          int    // NUM_WORDS
	IncorrectBudget   int    // INCORRECT_BUDGET
}

// Load reads .env (if any) and the environment, filling defaults.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	return Config{
		Port:              getEnv("PORT", "5175"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBPath:            getEnv("DB_PATH", "./data/wordsearch.db"),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
		JWTSecret:         getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTDays:           envInt("JWT_EXPIRES_DAYS", 14),
		CookieName:        getEnv("COOKIE_NAME", "wordsearch_token"),
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:        os.Getenv("NODE_ENV") == "production",
		WordsFile:         os.Getenv("WORDS_FILE"),
		WordsHardcoreFile: os.Getenv("WORDS_HARDCORE_FILE"),
		NumWords:          envInt("NUM_WORDS", 5),
		IncorrectBudget:   envInt("INCORRECT_BUDGET", 20),
	}
}

// ApplyLogLevel sets the global zerolog level; unknown levels are ignored.
func (c Config) ApplyLogLevel() {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as a positive int, falling back to def.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
