package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	SalesURL          string
	ProductsURL       string
	HTTPClientTimeout time.Duration

	DatabaseURL string

	JWTAccessSecret []byte
	AuthHTTPURL     string
	CSRFEnabled     bool

	KafkaBrokers []string
	EventsTopic  string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	BundlePrices BundlePrices
}

// BundlePrices are the fixed menu prices, kept as strings so they parse into
// exact decimals.
type BundlePrices struct {
	Executive string
	Student   string
	Daily     string
}

// Load reads the environment, optionally seeded from the given .env files.
func Load(envFiles ...string) Config {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
		}
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "pos"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		SalesURL:          os.Getenv("SALES_URL"),
		ProductsURL:       os.Getenv("PRODUCTS_URL"),
		HTTPClientTimeout: time.Duration(EnvIntDefault("HTTP_CLIENT_TIMEOUT_SEC", 5)) * time.Second,

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),
		AuthHTTPURL:     os.Getenv("AUTH_URL"),
		CSRFEnabled:     EnvDefault("CSRF_ENABLED", "true") == "true",

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:  EnvDefault("EVENTS_TOPIC", "pos_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "menu"),

		BundlePrices: BundlePrices{
			Executive: EnvDefault("BUNDLE_PRICE_EXECUTIVE", "500"),
			Student:   EnvDefault("BUNDLE_PRICE_STUDENT", "1000"),
			Daily:     EnvDefault("BUNDLE_PRICE_DAILY", "1200"),
		},
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
