package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr           string
	SettingsFile   string
	AllowedOrigins []string
	UIURL          string
	OpenBrowser    bool
	LogLevel       string
}

func Load() *Config {
	// Загрузка .env файла
	err := godotenv.Load()
	if err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	return &Config{
		Addr:           getEnv("RCPANEL_ADDR", ":8000"),
		SettingsFile:   getEnv("RCPANEL_SETTINGS_FILE", "settings.json"),
		AllowedOrigins: getEnvAsSlice("RCPANEL_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		UIURL:          getEnv("RCPANEL_UI_URL", ""),
		OpenBrowser:    getEnvAsBool("RCPANEL_OPEN_BROWSER", false),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// NewLogger - логгер с уровнем из конфигурации
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
