package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the minimum accepted length of JWT_SECRET in bytes
const MinJWTSecretLength = 32

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Security  SecurityConfig
	Assistant AssistantConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
	// TrustedProxies may set X-Forwarded-For. Empty means the peer address is the client.
	TrustedProxies []*net.IPNet
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessTokenDuration time.Duration
	Secret              []byte
	Issuer              string
}

type SecurityConfig struct {
	BCryptCost         int
	PasswordMinLength  int
	RateLimitPerSecond int
	RateLimitBurst     int
	AuditLogRetention  time.Duration
}

// AssistantConfig configures the OpenAI-compatible chat completions endpoint
type AssistantConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// LoadFromEnv reads configuration from the environment, loading a .env file first when present
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "5000"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 45*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "finance_user"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "finance_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Security: SecurityConfig{
			BCryptCost:         getIntEnv("BCRYPT_COST", 10),
			PasswordMinLength:  getIntEnv("PASSWORD_MIN_LENGTH", 8),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 10),
			AuditLogRetention:  getDurationEnv("AUDIT_LOG_RETENTION", 90*24*time.Hour),
		},
		JWT: JWTConfig{
			AccessTokenDuration: getDurationEnv("JWT_ACCESS_TOKEN_DURATION", 2*time.Hour),
			Issuer:              getEnv("JWT_ISSUER", "finance-api"),
		},
		Assistant: AssistantConfig{
			BaseURL:     strings.TrimRight(getEnv("ASSISTANT_BASE_URL", "https://api.openai.com/v1"), "/"),
			APIKey:      os.Getenv("ASSISTANT_API_KEY"),
			Model:       getEnv("ASSISTANT_MODEL", "gpt-3.5-turbo"),
			Temperature: getFloatEnv("ASSISTANT_TEMPERATURE", 0.7),
			Timeout:     getDurationEnv("ASSISTANT_TIMEOUT", 30*time.Second),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	proxies, err := parseTrustedProxies(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, err
	}
	config.Server.TrustedProxies = proxies

	secret, err := config.loadJWTSecret()
	if err != nil {
		return nil, err
	}
	config.JWT.Secret = secret

	if config.Assistant.APIKey == "" {
		log.Println("WARNING: ASSISTANT_API_KEY not set, chatbot requests will be rejected")
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the database connection string in URL form, as expected by golang-migrate
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Address returns host:port for the HTTP listener
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadJWTSecret loads the HMAC secret used to sign tokens
// Priority order:
// 1. If JWT_SECRET is set, use it (works in all environments)
// 2. If production and JWT_SECRET is missing, fail with error
// 3. If development/testing and JWT_SECRET is missing, generate a random secret
func (c *Config) loadJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")

	if secret != "" {
		if len(secret) < MinJWTSecretLength {
			if c.IsProduction() {
				return nil, fmt.Errorf("JWT_SECRET must be at least %d bytes in production environments", MinJWTSecretLength)
			}
			log.Printf("WARNING: JWT_SECRET is shorter than %d bytes", MinJWTSecretLength)
		}
		return []byte(secret), nil
	}

	if c.IsProduction() {
		return nil, errors.New("JWT_SECRET environment variable must be set in production environments")
	}

	log.Println("Development environment: generating a random JWT secret (set JWT_SECRET to keep tokens valid across restarts)")
	return GenerateSecret(MinJWTSecretLength)
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			log.Println("WARNING: CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*' (all origins). Consider setting specific origins for security.")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return origins
}

// parseTrustedProxies reads a comma separated list of CIDRs or bare IPs
func parseTrustedProxies(value string) ([]*net.IPNet, error) {
	var proxies []*net.IPNet
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q", entry)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip = ip.To4()
				bits = 8 * net.IPv4len
			}
			proxies = append(proxies, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", entry, err)
		}
		proxies = append(proxies, network)
	}
	return proxies, nil
}

// GenerateSecret returns n cryptographically random bytes
func GenerateSecret(n int) ([]byte, error) {
	secret := make([]byte, n)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return secret, nil
}
