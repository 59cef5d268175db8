package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigin        string `mapstructure:"CORS_ORIGIN"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Auth.
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling.
	ClinicTimezone       string        `mapstructure:"CLINIC_TIMEZONE"`
	CancelledBlocksSlot  bool          `mapstructure:"BOOKING_CANCELLED_BLOCKS_SLOT"`
	ReminderLead         time.Duration `mapstructure:"REMINDER_LEAD"`
	AvailabilityCacheTTL time.Duration `mapstructure:"AVAILABILITY_CACHE_TTL"`
}

var AppConfig Config

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "clinixsphere")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	v.SetDefault("CLINIC_TIMEZONE", "UTC")
	v.SetDefault("BOOKING_CANCELLED_BLOCKS_SLOT", false)
	v.SetDefault("REMINDER_LEAD", "1h")
	v.SetDefault("AVAILABILITY_CACHE_TTL", "10m")
}

// Load reads configuration from an optional .env file, config.yaml and the
// environment, in increasing order of precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, skipping")
	}

	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig and exits on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ClinicLocation resolves CLINIC_TIMEZONE, falling back to UTC when it is
// empty or unknown.
func ClinicLocation() *time.Location {
	if AppConfig.ClinicTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.ClinicTimezone)
	if err != nil {
		log.Printf("unknown CLINIC_TIMEZONE %q, using UTC", AppConfig.ClinicTimezone)
		return time.UTC
	}
	return loc
}
