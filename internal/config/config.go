package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DBDriver    string // mysql | postgres | sqlite
	MySQLHost   string
	MySQLPort   string
	MySQLDB     string
	MySQLUser   string
	MySQLPass   string
	DatabaseURL string // postgres DSN, or sqlite file
	DBLogLevel  string
	AutoMigrate bool

	// empty disables idempotency keys and the event stream
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int
	IdempTTLSecs  int

	JWTSecret string
	JWTTTL    time.Duration

	RPCURL              string
	TokenContract       string
	AdminWallet         string
	ChainTimeout        time.Duration
	VerifyConfirmations bool

	ReconcileInterval    time.Duration
	ReconcileLookupError string // fail | keep
	DefaultScanInterval  time.Duration
	BalanceTTL           time.Duration

	LogLevel  string
	LogFormat string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

// getduration accepts Go durations ("30s", "1h") or plain seconds.
func getduration(k string, d time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

// Load reads the environment, after an optional .env in the working dir.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort: getenv("APP_PORT", "8080"),

		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "mysql")),
		MySQLHost:   getenv("MYSQL_HOST", "mysql"),
		MySQLPort:   getenv("MYSQL_PORT", "3306"),
		MySQLDB:     getenv("MYSQL_DB", "iykesol"),
		MySQLUser:   getenv("MYSQL_USER", "iykesol"),
		MySQLPass:   getenv("MYSQL_PASS", "iykesol"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBLogLevel:  getenv("DB_LOG_LEVEL", "warn"),
		AutoMigrate: getbool("AUTO_MIGRATE", true),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		RedisPoolSize: getint("REDIS_POOL_SIZE", 0),
		IdempTTLSecs:  getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getduration("JWT_TTL", 7*24*time.Hour),

		RPCURL:              os.Getenv("RPC_URL"),
		TokenContract:       os.Getenv("TOKEN_CONTRACT_ADDRESS"),
		AdminWallet:         strings.ToLower(os.Getenv("ADMIN_WALLET_ADDRESS")),
		ChainTimeout:        getduration("CHAIN_TIMEOUT", 10*time.Second),
		VerifyConfirmations: getbool("VERIFY_CONFIRMATIONS", false),

		ReconcileInterval:    getduration("RECONCILE_INTERVAL", 30*time.Second),
		ReconcileLookupError: strings.ToLower(getenv("RECONCILE_LOOKUP_ERROR", "fail")),
		DefaultScanInterval:  getduration("DEFAULT_SCAN_INTERVAL", time.Hour),
		BalanceTTL:           getduration("BALANCE_TTL", 30*time.Second),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "text"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("missing DATABASE_URL for postgres")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.RPCURL == "" {
		return errors.New("missing RPC_URL")
	}
	if !common.IsHexAddress(c.TokenContract) {
		return fmt.Errorf("invalid TOKEN_CONTRACT_ADDRESS %q", c.TokenContract)
	}
	if c.AdminWallet != "" && !common.IsHexAddress(c.AdminWallet) {
		return fmt.Errorf("invalid ADMIN_WALLET_ADDRESS %q", c.AdminWallet)
	}
	if c.ReconcileInterval <= 0 {
		return errors.New("RECONCILE_INTERVAL must be positive")
	}
	if c.ReconcileLookupError != "fail" && c.ReconcileLookupError != "keep" {
		return fmt.Errorf("RECONCILE_LOOKUP_ERROR must be fail or keep, got %q", c.ReconcileLookupError)
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN is the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "mysql":
		return c.MySQLDSN()
	case "sqlite":
		if c.DatabaseURL == "" {
			return "iykesol.db"
		}
	}
	return c.DatabaseURL
}
