package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	HTTPAddr         string
	StoreBackend     string
	KafkaBroker      string
	OrderEventsTopic string
	JWTSecret        string
	ClientSecret     string
	TokenTTL         time.Duration
	TaxRate          string
	ShopTimezone     string
	TransitionPolicy string
	RefreshInterval  time.Duration
	PublicBaseURL    string
	LogFile          string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] ignoring .env: %v", err)
	}

	return Config{
		HTTPAddr:         GetEnv("HTTP_ADDR", ":8081"),
		StoreBackend:     strings.ToLower(GetEnv("STORE_BACKEND", "redis")),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		OrderEventsTopic: GetEnv("ORDER_EVENTS_TOPIC", "order-events"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		ClientSecret:     os.Getenv("CLIENT_SECRET"),
		TokenTTL:         GetDuration("TOKEN_TTL", 12*time.Hour),
		TaxRate:          GetEnv("TAX_RATE", "0"),
		ShopTimezone:     GetEnv("SHOP_TIMEZONE", "Local"),
		TransitionPolicy: GetEnv("ORDER_TRANSITION_POLICY", "strict"),
		RefreshInterval:  GetDuration("STAFF_REFRESH_INTERVAL", 15*time.Second),
		PublicBaseURL:    GetEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		LogFile:          GetEnv("LOG_FILE", "./logs/canteen.log"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetDuration accepts Go duration strings ("15s") or a bare number of seconds.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("[config] invalid duration %s=%q, using %s", key, value, defaultValue)
	return defaultValue
}

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewKafkaWriter hashes message keys so all events of one key land on one partition.
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}
}
