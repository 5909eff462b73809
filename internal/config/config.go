package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Parser   ParserConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	Path     string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type StorageConfig struct {
	Backend     string
	UploadPath  string
	MediaURL    string
	MaxFileSize int64
	S3          S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type ParserConfig struct {
	Strategy       string
	MaxPromptChars int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", DriverPostgres),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_parser"),
			Path:     getEnv("DB_PATH", "./resume_parser.db"),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat32("GEMINI_TEMPERATURE", 0.1),
		},
		Storage: StorageConfig{
			Backend:     getEnv("STORAGE_BACKEND", StorageLocal),
			UploadPath:  getEnv("UPLOAD_PATH", "./media"),
			MediaURL:    getEnv("MEDIA_URL", "/media"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			S3: S3Config{
				Bucket:    getEnv("S3_BUCKET", ""),
				Region:    getEnv("S3_REGION", "auto"),
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
		},
		Parser: ParserConfig{
			Strategy:       getEnv("PARSER_STRATEGY", "single_call"),
			MaxPromptChars: getEnvAsInt("PARSER_MAX_PROMPT_CHARS", 3000),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.Path
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}
