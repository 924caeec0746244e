package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Overpass OverpassConfig
	Search   SearchConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port         string
	Environment  string
	LogFilePath  string
	GatewayToken string
}

type DatabaseConfig struct {
	PostgresURL string
}

type OverpassConfig struct {
	EndpointURL string
	Timeout     time.Duration
}

type SearchConfig struct {
	NearbyRadiusMeters   int
	CityWideRadiusMeters int
	CityCenterLatitude   float64
	CityCenterLongitude  float64
}

type SessionConfig struct {
	TTL           time.Duration
	PurgeInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("GO_ENV", "development"),
			LogFilePath:  getEnv("LOG_FILE_PATH", "feelgo.log"),
			GatewayToken: getEnv("GATEWAY_TOKEN", ""),
		},
		Database: DatabaseConfig{
			PostgresURL: getEnv("POSTGRES_URL", ""),
		},
		Overpass: OverpassConfig{
			EndpointURL: getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			Timeout:     getEnvAsDuration("OVERPASS_TIMEOUT", 10*time.Second),
		},
		Search: SearchConfig{
			NearbyRadiusMeters:   getEnvAsInt("NEARBY_RADIUS_METERS", 1000),
			CityWideRadiusMeters: getEnvAsInt("CITYWIDE_RADIUS_METERS", 5000),
			// Moscow city center, the default anchor for city-wide searches.
			CityCenterLatitude:  getEnvAsFloat("CITY_CENTER_LAT", 55.7558),
			CityCenterLongitude: getEnvAsFloat("CITY_CENTER_LON", 37.6173),
		},
		Session: SessionConfig{
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			PurgeInterval: getEnvAsDuration("SESSION_PURGE_INTERVAL", time.Hour),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
