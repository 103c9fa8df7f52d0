package config

import (
	"time"
)

type DatabaseConfig struct {
	URI               string        `yaml:"uri"`
	Database          string        `yaml:"database"`
	ReviewsCollection string        `yaml:"reviews_collection"`
	MaxPoolSize       int           `yaml:"max_pool_size"`
	MinPoolSize       int           `yaml:"min_pool_size"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`
	SocketTimeout     time.Duration `yaml:"socket_timeout"`
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:               getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		Database:          getEnv("MONGODB_DB_NAME", "ecommerce"),
		ReviewsCollection: getEnv("MONGODB_REVIEWS_COLLECTION", "reviews"),
		MaxPoolSize:       getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
		MinPoolSize:       getEnvAsInt("MONGODB_MIN_POOL_SIZE", 0),
		ConnectTimeout:    getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SocketTimeout:     getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
	}
}
