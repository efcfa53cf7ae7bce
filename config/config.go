package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage. STORE_DRIVER is "mongo" or "memory".
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisPubSubDB int    `mapstructure:"REDIS_PUBSUB_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Realtime publishers, comma separated: ws, redis, pubnub.
	Publishers         string `mapstructure:"PUBLISHERS"`
	PubNubPublishKey   string `mapstructure:"PUBNUB_PUBLISH_KEY"`
	PubNubSubscribeKey string `mapstructure:"PUBNUB_SUBSCRIBE_KEY"`
	PubNubUserID       string `mapstructure:"PUBNUB_USER_ID"`

	// Queue behaviour.
	SweepSchedule         string `mapstructure:"SWEEP_SCHEDULE"`
	NotifyDispatch        string `mapstructure:"NOTIFY_DISPATCH"`
	DefaultServiceMinutes int    `mapstructure:"DEFAULT_SERVICE_MINUTES"`

	// Outbound mail.
	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPass     string `mapstructure:"MAIL_PASS"`
	MailFromName string `mapstructure:"MAIL_FROM_NAME"`

	// Push notifications; disabled when empty.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	MetricsEnabled bool `mapstructure:"METRICS_ENABLED"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "barberqueue")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_PUBSUB_DB", 0)
	viper.SetDefault("REDIS_TASK_DB", 1)
	viper.SetDefault("PUBLISHERS", "ws")
	viper.SetDefault("PUBNUB_PUBLISH_KEY", "")
	viper.SetDefault("PUBNUB_SUBSCRIBE_KEY", "")
	viper.SetDefault("PUBNUB_USER_ID", "barberqueue-server")
	viper.SetDefault("SWEEP_SCHEDULE", "@every 1m")
	viper.SetDefault("NOTIFY_DISPATCH", "inline")
	viper.SetDefault("DEFAULT_SERVICE_MINUTES", 15)
	viper.SetDefault("MAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("MAIL_USER", "")
	viper.SetDefault("MAIL_PASS", "")
	viper.SetDefault("MAIL_FROM_NAME", "BarberQueue")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	viper.SetDefault("METRICS_ENABLED", true)
}

// LoadConfig reads config.yaml (if any), the environment and the defaults into AppConfig.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// PublisherNames returns the configured realtime backends, lower-cased and trimmed.
func (c Config) PublisherNames() []string {
	var names []string
	for _, raw := range strings.Split(c.Publishers, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// MailConfigured reports whether SMTP credentials are present.
func (c Config) MailConfigured() bool {
	return c.MailUser != "" && c.MailPass != ""
}
