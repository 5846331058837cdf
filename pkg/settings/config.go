package settings

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// consts
const (
	Name = "FinAI"
)

// Config ...
type Config struct {
	Name    string `ignored:"true"`
	Version string `ignored:"true"`
	Develop bool   `envconfig:"DEVELOP"`

	HTTPListen string `envconfig:"HTTP_LISTEN" default:":2025"`
	RateLimit  string `envconfig:"RATE_LIMIT" default:"20-M"` // 每个 IP 的提问频率
	RedisURI   string `envconfig:"REDIS_URI"`                 // 可选，限流计数存放

	Model          string        `envconfig:"MODEL" default:"gpt-3.5-turbo"`
	BaseURL        string        `envconfig:"FINAI_BASE_URL" default:"http://localhost:2024"`
	RequestTimeout int           `envconfig:"REQUEST_TIMEOUT" default:"180"` // seconds
	ChannelType    string        `envconfig:"CHANNEL_TYPE" default:"wx"`
	RetryDelay     time.Duration `envconfig:"RETRY_DELAY" default:"2s"`
	RepliesFile    string        `envconfig:"REPLIES_FILE"`

	MinioURL        string `envconfig:"MINIO_URL"`
	MinioAccessKey  string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey  string `envconfig:"MINIO_SECRET_KEY"`
	MinioBucketName string `envconfig:"MINIO_BUCKET_NAME"`
	MinioSecure     bool   `envconfig:"MINIO_SECURE"`
	MinioRegion     string `envconfig:"MINIO_REGION" default:"us-east-1"`
}

var (
	// Current 当前配置
	Current = new(Config)
)

func init() {
	if err := LoadDotenv(); err != nil {
		log.Printf("load .env fail: %s", err)
	}
	cfg, err := Load()
	if err != nil {
		log.Printf("envconfig process fail: %s", err)
	}
	Current = cfg
}

// LoadDotenv 本地开发可用 .env，已存在的环境变量优先，文件不存在时忽略
func LoadDotenv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Load reads the environment, keys are looked up with and without the prefix
func Load() (*Config, error) {
	cfg := new(Config)
	err := envconfig.Process(Name, cfg)
	cfg.Name = Name
	cfg.Version = version
	return cfg, err
}

// Usage 打印配置帮助
func Usage() error {
	log.Printf("ver: %s", Current.Version)
	return envconfig.Usage(Current.Name, Current)
}

// InDevelop ...
func InDevelop() bool {
	return Current.Develop
}

// RequestTimeoutDuration ...
func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// MinioEnabled ...
func (c *Config) MinioEnabled() bool {
	return len(c.MinioURL) > 0 && len(c.MinioBucketName) > 0
}
