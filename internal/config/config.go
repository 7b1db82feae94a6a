package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string
	HTTP   HTTPConfig
	DB     DBConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Auth   AuthConfig
	Sync   SyncConfig
	Upload UploadConfig
	Recon  ReconConfig
	Outbox OutboxConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr       string
	MaxRetries int
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	MaxRetries    int
}

type AuthConfig struct {
	JWTSecret     string
	WebhookSecret string
}

type SyncConfig struct {
	// Driver is "kafka" or "stub".
	Driver  string
	Topic   string
	Timeout time.Duration
}

type UploadConfig struct {
	// Driver is "local" or "cloudinary".
	Driver              string
	Dir                 string
	MaxBytes            int64
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

type ReconConfig struct {
	DefaultWorkingDays int
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the environment (and an optional .env file) into Config.
// Keys use the flat names of the deployment, e.g. DB_HOST or SYNC_TIMEOUT.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.env", "development")
	v.SetDefault("port", "3000")
	v.SetDefault("http.read_timeout", "5s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.max_retries", 5)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.max_retries", 5)
	v.SetDefault("kafka.consumer_group", "leavey-sync-retry")
	v.SetDefault("kafka.max_retries", 5)
	v.SetDefault("sync.driver", "stub")
	v.SetDefault("sync.topic", "vendor.leave.approved.v1")
	v.SetDefault("sync.timeout", "5s")
	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_bytes", 10<<20)
	v.SetDefault("cloudinary.folder", "leavey/documents")
	v.SetDefault("recon.default_working_days", 22)
	v.SetDefault("outbox.poll_interval", "3s")
	v.SetDefault("outbox.batch_size", 50)

	cfg := Config{
		AppEnv: v.GetString("app.env"),
		HTTP: HTTPConfig{
			Port:         v.GetString("port"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		DB: DBConfig{
			Host:       v.GetString("db.host"),
			User:       v.GetString("db.user"),
			Password:   v.GetString("db.password"),
			Name:       v.GetString("db.name"),
			Port:       v.GetString("db.port"),
			SSLMode:    v.GetString("db.sslmode"),
			MaxRetries: v.GetInt("db.max_retries"),
		},
		Redis: RedisConfig{
			Addr:       v.GetString("redis.addr"),
			MaxRetries: v.GetInt("redis.max_retries"),
		},
		Kafka: KafkaConfig{
			Broker:        v.GetString("kafka.broker"),
			ConsumerGroup: v.GetString("kafka.consumer_group"),
			MaxRetries:    v.GetInt("kafka.max_retries"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("jwt.secret"),
			WebhookSecret: v.GetString("webhook.secret"),
		},
		Sync: SyncConfig{
			Driver:  strings.ToLower(v.GetString("sync.driver")),
			Topic:   v.GetString("sync.topic"),
			Timeout: v.GetDuration("sync.timeout"),
		},
		Upload: UploadConfig{
			Driver:              strings.ToLower(v.GetString("upload.driver")),
			Dir:                 v.GetString("upload.dir"),
			MaxBytes:            v.GetInt64("upload.max_bytes"),
			CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
			CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
			CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
			CloudinaryFolder:    v.GetString("cloudinary.folder"),
		},
		Recon: ReconConfig{
			DefaultWorkingDays: v.GetInt("recon.default_working_days"),
		},
		Outbox: OutboxConfig{
			PollInterval: v.GetDuration("outbox.poll_interval"),
			BatchSize:    v.GetInt("outbox.batch_size"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Sync.Driver {
	case "stub", "kafka":
	default:
		return fmt.Errorf("unsupported SYNC_DRIVER %q", c.Sync.Driver)
	}
	if c.Sync.Driver == "kafka" && c.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required when SYNC_DRIVER=kafka")
	}
	switch c.Upload.Driver {
	case "local", "cloudinary":
	default:
		return fmt.Errorf("unsupported UPLOAD_DRIVER %q", c.Upload.Driver)
	}
	if c.Recon.DefaultWorkingDays < 0 {
		return fmt.Errorf("RECON_DEFAULT_WORKING_DAYS must not be negative")
	}
	return nil
}
