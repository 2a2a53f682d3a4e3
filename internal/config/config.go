package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	LogLevel slog.Level
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

// AuthConfig - настройки проверки JWT
type AuthConfig struct {
	JWTSecret string
}

// StorageConfig - настройки хранения загруженных документов
type StorageConfig struct {
	UploadDir string
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

var defaults = map[string]string{
	"SERVER_PORT": "8080",
	"DB_DRIVER":   "postgres",
	"DB_PATH":     "projectmanager.db",
	"DB_HOST":     "localhost",
	"DB_PORT":     "5432",
	"DB_USER":     "postgres",
	"DB_PASSWORD": "postgres",
	"DB_NAME":     "projectmanager",
	"DB_SSLMODE":  "disable",
	"JWT_SECRET":  "",
	"UPLOAD_DIR":  "uploads",
	"LOG_LEVEL":   "info",
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return load(viper.New())
}

func load(v *viper.Viper) *Config {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			SQLitePath: v.GetString("DB_PATH"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			DBName:     v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
		},
		Storage: StorageConfig{
			UploadDir: v.GetString("UPLOAD_DIR"),
		},
		LogLevel: parseLevel(v.GetString("LOG_LEVEL")),
	}
}

// parseLevel возвращает уровень логирования, по умолчанию info
func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
