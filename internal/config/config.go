package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-level option of the catalog service.
type Config struct {
	Port     string `envconfig:"PORT" default:"5502"`
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            int           `envconfig:"DB_PORT" default:"5432"`
	DBUsername        string        `envconfig:"DB_USERNAME" required:"true"`
	DBPassword        string        `envconfig:"DB_PASSWORD"`
	DBName            string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	DBAutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	JWKSURI        string   `envconfig:"JWKS_URI" required:"true"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	AssetStore          string `envconfig:"ASSET_STORE" default:"cloudinary"`
	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `envconfig:"CLOUDINARY_FOLDER" default:"products"`

	AWSRegion           string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSEndpoint         string `envconfig:"AWS_ENDPOINT"`
	AWSAccessKeyID      string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey  string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	AWSS3Bucket         string `envconfig:"AWS_S3_BUCKET" default:"catalog"`
	AWSS3Prefix         string `envconfig:"AWS_S3_PREFIX" default:"products/"`
	AWSCloudFrontDomain string `envconfig:"AWS_CLOUDFRONT_DOMAIN"`

	UploadDir      string        `envconfig:"UPLOAD_DIR" default:"./uploads"`
	UploadMaxBytes int64         `envconfig:"UPLOAD_MAX_BYTES" default:"8000000"`
	PublicDir      string        `envconfig:"PUBLIC_DIR" default:"./public"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
}

// Load reads .env.<APP_ENV> and .env when present, then processes the
// environment into a Config. Variables already set in the process win.
func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	for _, file := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWKSURI == "" {
		return errors.New("JWKS_URI is required")
	}
	switch c.DBDriver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.AssetStore {
	case "cloudinary", "s3":
	default:
		return fmt.Errorf("unsupported ASSET_STORE %q", c.AssetStore)
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "mysql" {
		m := mysql.NewConfig()
		m.User = c.DBUsername
		m.Passwd = c.DBPassword
		m.Net = "tcp"
		m.Addr = net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
		m.DBName = c.DBName
		m.ParseTime = true
		return m.FormatDSN()
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.DBHost, c.DBUsername, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
