package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level

	TelegramAPIID   int
	TelegramAPIHash string
	SessionFile     string

	WeatherAPIKey  string
	CityName       string
	CountryCode    string
	WeatherTimeout time.Duration

	UpdateInterval time.Duration

	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string
	MQTTTopic    string
}

// AnnouncerEnabled reports whether the optional MQTT announcer is configured.
func (c Config) AnnouncerEnabled() bool {
	return c.MQTTBroker != ""
}

// LoadFromEnv reads configuration from the environment. A .env file in the
// working directory is merged in first, if present.
func LoadFromEnv() (Config, error) {
	// Best effort: a missing .env file is fine.
	_ = godotenv.Load()

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	apiIDStr := strings.TrimSpace(os.Getenv("TELEGRAM_API_ID"))
	if apiIDStr == "" {
		return Config{}, fmt.Errorf("TELEGRAM_API_ID is required")
	}
	apiID, err := strconv.Atoi(apiIDStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TELEGRAM_API_ID %q: %w", apiIDStr, err)
	}

	apiHash := strings.TrimSpace(os.Getenv("TELEGRAM_API_HASH"))
	if apiHash == "" {
		return Config{}, fmt.Errorf("TELEGRAM_API_HASH is required")
	}

	weatherKey := strings.TrimSpace(os.Getenv("OPENWEATHERMAP_API_KEY"))
	if weatherKey == "" {
		return Config{}, fmt.Errorf("OPENWEATHERMAP_API_KEY is required")
	}

	sessionFile := strings.TrimSpace(os.Getenv("SESSION_FILE"))
	if sessionFile == "" {
		sessionFile = "weather_status.session.json"
	}

	cityName := strings.TrimSpace(os.Getenv("CITY_NAME"))
	if cityName == "" {
		cityName = "Saint Petersburg"
	}

	countryCode := strings.TrimSpace(os.Getenv("COUNTRY_CODE"))
	if countryCode == "" {
		countryCode = "RU"
	}

	updateIntervalStr := strings.TrimSpace(os.Getenv("UPDATE_INTERVAL"))
	if updateIntervalStr == "" {
		updateIntervalStr = "10m"
	}
	updateInterval, err := time.ParseDuration(updateIntervalStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid UPDATE_INTERVAL %q: %w", updateIntervalStr, err)
	}
	if updateInterval <= 0 {
		return Config{}, fmt.Errorf("UPDATE_INTERVAL must be positive, got %v", updateInterval)
	}

	weatherTimeoutStr := strings.TrimSpace(os.Getenv("WEATHER_TIMEOUT"))
	if weatherTimeoutStr == "" {
		weatherTimeoutStr = "10s"
	}
	weatherTimeout, err := time.ParseDuration(weatherTimeoutStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_TIMEOUT %q: %w", weatherTimeoutStr, err)
	}
	if weatherTimeout <= 0 {
		return Config{}, fmt.Errorf("WEATHER_TIMEOUT must be positive, got %v", weatherTimeout)
	}

	mqttBroker := strings.TrimSpace(os.Getenv("MQTT_BROKER"))

	mqttPortStr := strings.TrimSpace(os.Getenv("MQTT_PORT"))
	if mqttPortStr == "" {
		mqttPortStr = "1883"
	}
	mqttPort, err := strconv.Atoi(mqttPortStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q: %w", mqttPortStr, err)
	}

	mqttClientID := strings.TrimSpace(os.Getenv("MQTT_CLIENT_ID"))
	if mqttClientID == "" {
		mqttClientID = "weatherstatus"
	}

	mqttTopic := strings.TrimSpace(os.Getenv("MQTT_TOPIC"))
	if mqttTopic == "" {
		mqttTopic = "weatherstatus/current"
	}

	return Config{
		AppEnv:          appEnv,
		LogLevel:        level,
		TelegramAPIID:   apiID,
		TelegramAPIHash: apiHash,
		SessionFile:     sessionFile,
		WeatherAPIKey:   weatherKey,
		CityName:        cityName,
		CountryCode:     countryCode,
		WeatherTimeout:  weatherTimeout,
		UpdateInterval:  updateInterval,
		MQTTBroker:      mqttBroker,
		MQTTPort:        mqttPort,
		MQTTClientID:    mqttClientID,
		MQTTTopic:       mqttTopic,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
