package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"commandcenter/models"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB        *gorm.DB
	AppConfig Config
	envLoaded bool
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address" validate:"required_if=Enabled true"`
	Password string `json:"-"`
	DB       int    `json:"db" validate:"min=0"`
}

type Config struct {
	Environment string `json:"environment" validate:"oneof=development staging production test"`
	ServerPort  string `json:"server_port" validate:"required,numeric"`

	// Tenant scope and shared API secret. Missing values do not stop startup;
	// the affected requests answer 500 instead.
	CorporateAccountID string `json:"corporate_account_id"`
	APISecret          string `json:"-"`

	DBHost         string `json:"db_host" validate:"required"`
	DBPort         string `json:"db_port" validate:"required,numeric"`
	DBUser         string `json:"db_user" validate:"required"`
	DBPassword     string `json:"-" validate:"required"`
	DBName         string `json:"db_name" validate:"required"`
	DBSSLMode      string `json:"db_ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	DBMaxIdleConns int    `json:"db_max_idle_conns" validate:"min=0"`
	DBMaxOpenConns int    `json:"db_max_open_conns" validate:"min=0"`
	DBAutoMigrate  bool   `json:"db_auto_migrate"`

	LogLevel  string `json:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	SentryDSN string `json:"-"`

	CORSAllowedOrigins []string    `json:"cors_allowed_origins"`
	RateLimitMax       int         `json:"rate_limit_max" validate:"min=0"`
	Redis              RedisConfig `json:"redis"`
}

var validate = validator.New()

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
	envLoaded = true
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		ServerPort:         getEnv("SERVER_PORT", "5000"),
		CorporateAccountID: strings.TrimSpace(getEnv("CORPORATE_ACCOUNT_ID", "")),
		APISecret:          getEnv("DASHBOARD_API_SECRET", ""),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", ""),
		DBName:             getEnv("DB_NAME", "command_center"),
		DBSSLMode:          getEnv("DB_SSL_MODE", "disable"),
		DBMaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		DBAutoMigrate:      getEnvAsBool("DB_AUTO_MIGRATE", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitMax:       getEnvAsInt("RATE_LIMIT_MAX", 120),
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}

	if err := validate.Struct(AppConfig); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if AppConfig.CorporateAccountID == "" {
		log.Warn("CORPORATE_ACCOUNT_ID is not set; data endpoints will return 500")
	}
	if AppConfig.APISecret == "" {
		log.Warn("DASHBOARD_API_SECRET is not set; authenticated endpoints will return 500")
	}

	logConfig()
	return nil
}

func ConnectDB() error {
	log.Info("Attempting to connect to database...")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBUser,
		AppConfig.DBPassword,
		AppConfig.DBName,
		AppConfig.DBSSLMode,
	)
	log.Info("Using connection string: ", maskPassword(dsn))

	gormLogLevel := logger.Warn
	if AppConfig.Environment == "development" {
		gormLogLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(AppConfig.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	log.Info("Successfully connected to the database")

	// The schema belongs to the ingestion pipeline; only migrate when asked to.
	if AppConfig.DBAutoMigrate {
		log.Info("Starting database migration...")
		if err := models.AutoMigrate(DB); err != nil {
			return fmt.Errorf("database migration failed: %w", err)
		}
		log.Info("Database migration completed")
	}
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if !envLoaded && fallback == "" {
		log.Warnf("Environment variable %s not found and no fallback provided", key)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}

func maskPassword(dsn string) string {
	const passwordMarker = "password="
	startIdx := strings.Index(dsn, passwordMarker)
	if startIdx == -1 {
		return dsn
	}

	startIdx += len(passwordMarker)
	endIdx := strings.IndexAny(dsn[startIdx:], " ")
	if endIdx == -1 {
		return dsn[:startIdx] + "*****"
	}
	return dsn[:startIdx] + "*****" + dsn[startIdx+endIdx:]
}

func logConfig() {
	log.WithFields(log.Fields{
		"environment":    AppConfig.Environment,
		"server_port":    AppConfig.ServerPort,
		"database":       fmt.Sprintf("%s@%s:%s/%s", AppConfig.DBUser, AppConfig.DBHost, AppConfig.DBPort, AppConfig.DBName),
		"tenant_set":     AppConfig.CorporateAccountID != "",
		"api_secret_set": AppConfig.APISecret != "",
		"sentry":         AppConfig.SentryDSN != "",
		"redis":          AppConfig.Redis.Enabled,
	}).Info("Loaded configuration")
}
