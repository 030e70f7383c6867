// Package config builds the service configuration from environment
// variables, with development defaults, so main stays lean.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries everything main needs to wire the service.
type Config struct {
	Addr            string
	PostgresURL     string
	RedisURL        string
	KafkaBrokers    []string
	KafkaGroup      string
	UJSSearchURL    string
	UJSCacheTTL     time.Duration
	JWTSigningKey   string
	JWTIssuer       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration

	// Requests per minute per client IP.
	AuthRateLimit   int
	SearchRateLimit int
}

func setDefaults() {
	viper.SetDefault("addr", ":8080")
	viper.SetDefault("postgres_url", "")
	viper.SetDefault("redis_url", "")
	viper.SetDefault("kafka_brokers", "localhost:9092")
	viper.SetDefault("kafka_group", "cleanslate-fetch")
	viper.SetDefault("ujs_search_url", "http://localhost:8800")
	viper.SetDefault("ujs_cache_ttl", "15m")
	viper.SetDefault("jwt_signing_key", "dev-secret-key-change-in-production")
	viper.SetDefault("jwt_issuer", "cleanslate")
	viper.SetDefault("token_ttl", "24h")
	viper.SetDefault("shutdown_timeout", "10s")
	viper.SetDefault("auth_rate_limit", 30)
	viper.SetDefault("search_rate_limit", 60)
}

// Load reads configuration from the environment over the defaults.
func Load() Config {
	setDefaults()
	viper.SetEnvPrefix("cleanslate")
	viper.AutomaticEnv()

	return Config{
		Addr:            viper.GetString("addr"),
		PostgresURL:     viper.GetString("postgres_url"),
		RedisURL:        viper.GetString("redis_url"),
		KafkaBrokers:    viper.GetStringSlice("kafka_brokers"),
		KafkaGroup:      viper.GetString("kafka_group"),
		UJSSearchURL:    viper.GetString("ujs_search_url"),
		UJSCacheTTL:     viper.GetDuration("ujs_cache_ttl"),
		JWTSigningKey:   viper.GetString("jwt_signing_key"),
		JWTIssuer:       viper.GetString("jwt_issuer"),
		TokenTTL:        viper.GetDuration("token_ttl"),
		ShutdownTimeout: viper.GetDuration("shutdown_timeout"),
		AuthRateLimit:   viper.GetInt("auth_rate_limit"),
		SearchRateLimit: viper.GetInt("search_rate_limit"),
	}
}
