package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Upload     UploadConfig
	Extraction ExtractionConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type UploadConfig struct {
	Dir string
	// MaxSize is the largest accepted file, in bytes.
	MaxSize int64
}

type ExtractionConfig struct {
	// Policy is "append" (re-processing adds another extraction) or
	// "replace" (re-processing discards prior extractions first).
	Policy string
}

type LoggerConfig struct {
	Level string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxSizeMB, _ := strconv.Atoi(getEnv("MAX_UPLOAD_SIZE_MB", "10"))

	policy := getEnv("EXTRACTION_POLICY", "append")
	if policy != "append" && policy != "replace" {
		return nil, fmt.Errorf("invalid EXTRACTION_POLICY %q: want append or replace", policy)
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "uploads"),
			MaxSize: int64(maxSizeMB) * 1024 * 1024,
		},
		Extraction: ExtractionConfig{
			Policy: policy,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
