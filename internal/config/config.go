package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ContentSource struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Pool struct {
	// TTL reclaims abandoned room caches without an explicit deletion pass.
	TTL time.Duration
}

type Config struct {
	HTTP          HTTPServer
	Redis         RedisCache
	Postgres      Postgres
	ContentSource ContentSource
	Pool          Pool
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:          *newHTTP(),
		Redis:         *newRedis(),
		Postgres:      *newPostgres(),
		ContentSource: *newContentSource(),
		Pool:          *newPool(),
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "filmatch"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newContentSource() *ContentSource {
	return &ContentSource{
		BaseURL: getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		APIKey:  getenv("TMDB_API_KEY", ""),
		Timeout: getenvDuration("TMDB_TIMEOUT", 10*time.Second),
	}
}

func newPool() *Pool {
	return &Pool{
		TTL: getenvDuration("POOL_TTL", 7*24*time.Hour),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("%s bad duration for %s : %v. Using default %s", logtag, key, err, defaultValue)
		return defaultValue
	}
	return d
}
