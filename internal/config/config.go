package config

import (
	"os"
)

type Config struct {
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPath         string
	HTTPAddr       string
	GinMode        string
	AdminEmail     string
	NotifyTopic    string
	DirectoryGroup string
}

func Load() *Config {
	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "taskuser"),
		DBPassword:     getEnv("DB_PASSWORD", "taskpassword"),
		DBName:         getEnv("DB_NAME", "task_management"),
		DBPath:         getEnv("DB_PATH", "taskflow.db"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@example.com"),
		NotifyTopic:    getEnv("NOTIFY_TOPIC", "notify-on-create-task"),
		DirectoryGroup: getEnv("DIRECTORY_GROUP", "Team-Members"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
