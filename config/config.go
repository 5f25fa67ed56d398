package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultStorageQuota int64 = 1_000_000_000

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
		TokenTTL  time.Duration
	}
	Log struct {
		Env   string
		Level string
	}
	DB struct {
		User        string
		Password    string
		Name        string
		Host        string
		Port        string
		SSLMode     string
		MaxConns    int
		AutoMigrate bool
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Users struct {
		DefaultStorageQuota int64
		BcryptCost          int
		AdminPassword       string
	}

	Config struct {
		App   APP
		Log   Log
		DB    DB
		MQ    MQ
		Users Users
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvInt64(key string, def int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func Load() Config {
	app := APP{
		Name:      getEnv("SERVICE_NAME", "document-manager-api"),
		Host:      getEnv("SERVICE_HOST", ""),
		Port:      getEnv("SERVICE_PORT", "8080"),
		Env:       getEnv("SERVICE_ENV", ""),
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
		TokenTTL:  getEnvDuration("SERVICE_TOKEN_TTL", time.Hour),
	}
	lg := Log{
		Env:   getEnv("LOG_ENV", "prod"),
		Level: getEnv("LOG_LEVEL", "info"),
	}
	db := DB{
		User:        getEnv("POSTGRES_USER", ""),
		Password:    getEnv("POSTGRES_PASSWORD", ""),
		Name:        getEnv("POSTGRES_DB", ""),
		Host:        getEnv("POSTGRES_HOST", ""),
		Port:        getEnv("POSTGRES_PORT", "5432"),
		SSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
		MaxConns:    getEnvInt("POSTGRES_MAX_CONNS", 10),
		AutoMigrate: getEnvBool("POSTGRES_AUTO_MIGRATE", true),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "documents"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "documents.events"),
	}
	users := Users{
		DefaultStorageQuota: getEnvInt64("USERS_DEFAULT_STORAGE_QUOTA", defaultStorageQuota),
		BcryptCost:          getEnvInt("USERS_BCRYPT_COST", 10),
		AdminPassword:       getEnv("USERS_ADMIN_PASSWORD", ""),
	}

	return Config{
		App:   app,
		Log:   lg,
		DB:    db,
		MQ:    mq,
		Users: users,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}

	q := url.Values{}
	if c.DB.SSLMode != "" {
		q.Set("sslmode", c.DB.SSLMode)
	}
	if c.DB.MaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(c.DB.MaxConns))
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     c.DB.Host + ":" + c.DB.Port,
		Path:     "/" + c.DB.Name,
		RawQuery: q.Encode(),
	}

	return dsn.String(), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
