package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Mail     MailConfig
	Payment  PaymentConfig
	Auth     AuthConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// MailConfig holds the transactional-mail relay configuration
type MailConfig struct {
	BaseURL  string
	APIKey   string
	Sender   string
	MockMail bool
}

// PaymentConfig holds the payment-gateway configuration
type PaymentConfig struct {
	BaseURL       string
	WebhookSecret string
	APIKey        string
	MockGateway   bool
}

// AuthConfig holds login throttling configuration
type AuthConfig struct {
	MaxLoginFailures int
	LockoutMinutes   int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if the config file is not found, environment variables
		// still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "bolao")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Mail.MockMail", true)
	viper.SetDefault("Mail.Sender", "nao-responda@bolao.local")
	viper.SetDefault("Payment.MockGateway", true)
	viper.SetDefault("Auth.MaxLoginFailures", 5)
	viper.SetDefault("Auth.LockoutMinutes", 15)
}
