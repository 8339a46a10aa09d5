package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendS3       = "s3"
	BackendSupabase = "supabase"
	BackendMinIO    = "minio"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Storage  StorageConfig
	Supabase SupabaseConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Lambda   LambdaConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ImagePrefix  string
}

type StorageConfig struct {
	Backend  string
	Bucket   string
	Region   string
	Endpoint string
}

type SupabaseConfig struct {
	URL string
	KEY string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

type AuthConfig struct {
	APIKeys  []string
	RedisSet string
}

type UploadConfig struct {
	PresignTTL    time.Duration
	DefaultFolder string
	ListLimit     int
}

type LambdaConfig struct {
	Handler string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("WRITE_TIMEOUT", 30*time.Second),
			ImagePrefix:  getEnv("IMAGE_ROUTE_PREFIX", "/images"),
		},
		Storage: StorageConfig{
			Backend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendS3)),
			Bucket:   getEnv("BUCKET_NAME", ""),
			Region:   getEnv("AWS_REGION", "us-east-1"),
			Endpoint: getEnv("S3_ENDPOINT", ""),
		},
		Supabase: SupabaseConfig{
			URL: getEnv("SUPABASE_URL", ""),
			KEY: getEnv("SUPABASE_KEY", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", true),
			Region:    getEnv("MINIO_REGION", "us-east-1"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   getEnv("RABBITMQ_URL", ""),
			Queue: getEnv("RABBITMQ_QUEUE", "object_events"),
		},
		Auth: AuthConfig{
			APIKeys:  splitCSV(getEnv("VALID_API_KEYS", "")),
			RedisSet: getEnv("API_KEYS_REDIS_SET", "api_keys"),
		},
		Upload: UploadConfig{
			PresignTTL:    getDuration("PRESIGN_TTL", time.Hour),
			DefaultFolder: getEnv("UPLOAD_DEFAULT_FOLDER", "uploads"),
			ListLimit:     getEnvAsInt("LIST_DEFAULT_LIMIT", 50),
		},
		Lambda: LambdaConfig{
			Handler: getEnv("LAMBDA_HANDLER", "image-resize"),
		},
	}

	return cfg, nil
}

// IsDevelopment reports whether verbose development logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
