// Package config loads the process-wide configuration once at startup.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string
	AWS         AWSConfig
	Listing     ListingConfig
	CORS        CORSConfig
}

// AWSConfig holds the shared AWS client settings.
type AWSConfig struct {
	Region string
}

// ListingConfig holds the listing table, index and queue settings.
type ListingConfig struct {
	TableName          string
	UserListingsIndex  string
	PredictionQueueURL string
}

// CORSConfig holds the allowed frontend origin attached to every response.
type CORSConfig struct {
	AllowedOrigin string
}

// Load loads configuration from environment variables, with a .env file as a
// convenience for local development.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("REGION", "eu-south-1")
	viper.SetDefault("DOMAIN_URL", "https://dnyas0faoobat.cloudfront.net")

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		AWS: AWSConfig{
			Region: viper.GetString("REGION"),
		},
		Listing: ListingConfig{
			TableName:          viper.GetString("LISTING_TABLE_NAME"),
			UserListingsIndex:  viper.GetString("LISTING_INDEX_TABLE_NAME"),
			PredictionQueueURL: viper.GetString("PREDICTION_QUEUE_URL"),
		},
		CORS: CORSConfig{
			AllowedOrigin: viper.GetString("DOMAIN_URL"),
		},
	}

	if config.Listing.TableName == "" {
		return nil, fmt.Errorf("LISTING_TABLE_NAME is required")
	}
	if config.Listing.UserListingsIndex == "" {
		return nil, fmt.Errorf("LISTING_INDEX_TABLE_NAME is required")
	}
	if config.Listing.PredictionQueueURL == "" {
		return nil, fmt.Errorf("PREDICTION_QUEUE_URL is required")
	}

	return config, nil
}
