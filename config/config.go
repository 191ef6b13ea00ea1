package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT" validate:"required,numeric"`
	Env               string `mapstructure:"ENV" validate:"oneof=development staging production test"`
	LogLevel          string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFile           string `mapstructure:"LOG_FILE"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN" validate:"gt=0"`

	// Document store.
	StorageBackend string `mapstructure:"STORAGE_BACKEND" validate:"oneof=mongo firestore memory"`
	DatabaseURL    string `mapstructure:"DATABASE_URL" validate:"required_if=StorageBackend mongo"`
	DatabaseName   string `mapstructure:"DATABASE_NAME" validate:"required_if=StorageBackend mongo"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR" validate:"required"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB" validate:"gte=0,lte=15"`
	RedisChatDB   int    `mapstructure:"REDIS_CHAT_DB" validate:"gte=0,lte=15"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB" validate:"gte=0,lte=15"`

	// Firebase: auth, Firestore and push.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID" validate:"required_if=StorageBackend firestore"`
	AuthMode                string `mapstructure:"AUTH_MODE" validate:"oneof=firebase jwt"`
	JWTSecret               string `mapstructure:"JWT_SECRET" validate:"required_if=AuthMode jwt"`
	PushEnabled             bool   `mapstructure:"PUSH_ENABLED"`
	RemindersEnabled        bool   `mapstructure:"REMINDERS_ENABLED"`

	// How long before an activity starts the reminder push fires.
	ReminderLead time.Duration `mapstructure:"REMINDER_LEAD"`

	// Generation.
	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string        `mapstructure:"GEMINI_MODEL" validate:"required"`
	GenerationTimeout time.Duration `mapstructure:"GENERATION_TIMEOUT"`

	// Reverse geocoding.
	GeocodeBaseURL string  `mapstructure:"GEOCODE_BASE_URL" validate:"required,url"`
	GeocodeRPS     float64 `mapstructure:"GEOCODE_RPS" validate:"gt=0"`

	// Conversation.
	MaxParticipants  int           `mapstructure:"MAX_PARTICIPANTS" validate:"gt=0"`
	HistoryWindow    int           `mapstructure:"HISTORY_WINDOW" validate:"gt=0"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	CredentialSecret string        `mapstructure:"CREDENTIAL_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	cfg, err := decode(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORAGE_BACKEND", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "trailmate")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_CHAT_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("AUTH_MODE", "firebase")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("PUSH_ENABLED", false)
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("REMINDER_LEAD", "2h")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GENERATION_TIMEOUT", "0s")
	v.SetDefault("GEOCODE_BASE_URL", "https://api.bigdatacloud.net/data/reverse-geocode-client")
	v.SetDefault("GEOCODE_RPS", 5)
	v.SetDefault("MAX_PARTICIPANTS", 20)
	v.SetDefault("HISTORY_WINDOW", 8)
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("CREDENTIAL_SECRET", "")
}

// decode unmarshals v into a Config and validates it.
func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.Env = strings.ToLower(cfg.Env)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
