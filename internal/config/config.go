package config

import (
	"flag"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL    = "https://vault.immudb.io/ics/api/v1"
	defaultLedger     = "default"
	defaultCollection = "default"
	defaultPageSize   = 100
	defaultTimeout    = 30 * time.Second
)

// Config holds the vault connection settings. The API key is supplied
// via environment or flag, never hardcoded.
type Config struct {
	mu sync.RWMutex

	baseURL    string
	apiKey     string
	ledger     string
	collection string
	pageSize   int
	timeout    time.Duration
	dbPath     string
	logLevel   string
}

var (
	instance *Config
	once     sync.Once
)

// GetConfig returns the singleton configuration instance.
func GetConfig() *Config {
	once.Do(func() {
		instance = &Config{
			baseURL:    defaultBaseURL,
			ledger:     defaultLedger,
			collection: defaultCollection,
			pageSize:   defaultPageSize,
			timeout:    defaultTimeout,
			logLevel:   "info",
		}
	})
	return instance
}

// Parse loads settings from a .env file when present, then the
// environment, then command-line flags. Flags win over environment.
func (c *Config) Parse() error {
	// .env is optional; plain environment variables work as well.
	envFiles := []string{".env", "../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	c.mu.Lock()
	c.baseURL = getEnv("VAULT_BASE_URL", c.baseURL)
	c.apiKey = getEnv("VAULT_API_KEY", c.apiKey)
	c.ledger = getEnv("VAULT_LEDGER", c.ledger)
	c.collection = getEnv("VAULT_COLLECTION", c.collection)
	c.pageSize = getEnvInt("VAULT_PAGE_SIZE", c.pageSize)
	c.timeout = getEnvDuration("VAULT_TIMEOUT", c.timeout)
	c.dbPath = getEnv("VAULT_DB_PATH", c.dbPath)
	c.logLevel = getEnv("LOG_LEVEL", c.logLevel)
	c.mu.Unlock()

	baseURL := flag.String("base-url", "", "vault API base URL")
	apiKey := flag.String("api-key", "", "vault API key")
	ledger := flag.String("ledger", "", "ledger name")
	collection := flag.String("collection", "", "collection name")
	pageSize := flag.Int("page-size", 0, "documents per search page")
	dbPath := flag.String("db", "", "path to the sqlite operation log")
	flag.Parse()

	if *baseURL != "" {
		c.SetBaseURL(*baseURL)
	}
	if *apiKey != "" {
		c.SetAPIKey(*apiKey)
	}
	if *ledger != "" {
		c.SetLedger(*ledger)
	}
	if *collection != "" {
		c.SetCollection(*collection)
	}
	if *pageSize > 0 {
		c.SetPageSize(*pageSize)
	}
	if *dbPath != "" {
		c.SetDbPath(*dbPath)
	}

	return nil
}

func (c *Config) GetBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func (c *Config) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = url
}

func (c *Config) GetAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

func (c *Config) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

func (c *Config) GetLedger() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledger
}

func (c *Config) SetLedger(ledger string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ledger = ledger
}

func (c *Config) GetCollection() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collection
}

func (c *Config) SetCollection(collection string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collection = collection
}

func (c *Config) GetPageSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pageSize
}

func (c *Config) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageSize = size
}

func (c *Config) GetTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

func (c *Config) SetTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

func (c *Config) GetDbPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dbPath
}

func (c *Config) SetDbPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dbPath = path
}

func (c *Config) GetLogLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logLevel
}

func (c *Config) SetLogLevel(level string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logLevel = level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
