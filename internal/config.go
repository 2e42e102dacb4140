package internal

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel    string
	PresetsFile string
	Filter      string
	Quality     int
	MetricsFile string
	Region      string
}

// LoadConfig reads defaults from the environment, after loading an optional .env file.
func LoadConfig() *Config {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()

	return &Config{
		LogLevel:    envString("REFRAMER_LOGLVL", "info"),
		PresetsFile: os.Getenv("REFRAMER_PRESETS"),
		Filter:      envString("REFRAMER_FILTER", DefaultFilter),
		Quality:     envInt("REFRAMER_QUALITY", 0),
		MetricsFile: os.Getenv("REFRAMER_METRICS_FILE"),
		Region:      envString("AWS_REGION", "us-east-1"),
	}
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envInt returns defaultVal if the variable is unset, empty, or not a positive integer.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}
