package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	TokenTTL          time.Duration `mapstructure:"TOKEN_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Matching and caching policy.
	EligibilityCatchAll bool          `mapstructure:"ELIGIBILITY_CATCH_ALL"`
	DirectoryCacheTTL   time.Duration `mapstructure:"DIRECTORY_CACHE_TTL"`
	SelectionTTL        time.Duration `mapstructure:"SELECTION_TTL"`
	AutoAssignRetries   int           `mapstructure:"AUTO_ASSIGN_RETRIES"`
	AutoAssignSweep     string        `mapstructure:"AUTO_ASSIGN_SWEEP"`
	WorkerConcurrency   int           `mapstructure:"WORKER_CONCURRENCY"`

	// Remote server functions (slot availability).
	FunctionsBaseURL string        `mapstructure:"FUNCTIONS_BASE_URL"`
	FunctionsAPIKey  string        `mapstructure:"FUNCTIONS_API_KEY"`
	FunctionsTimeout time.Duration `mapstructure:"FUNCTIONS_TIMEOUT"`

	// Gemini.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Firebase service account used for FCM pushes. Empty disables pushes.
	FirebaseCredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "poojaseva")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", 72*time.Hour)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("ELIGIBILITY_CATCH_ALL", true)
	viper.SetDefault("DIRECTORY_CACHE_TTL", 5*time.Minute)
	viper.SetDefault("SELECTION_TTL", 30*time.Minute)
	viper.SetDefault("AUTO_ASSIGN_RETRIES", 8)
	viper.SetDefault("AUTO_ASSIGN_SWEEP", "@every 15m")
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("FUNCTIONS_BASE_URL", "")
	viper.SetDefault("FUNCTIONS_API_KEY", "")
	viper.SetDefault("FUNCTIONS_TIMEOUT", 15*time.Second)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_PATH", "")

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
