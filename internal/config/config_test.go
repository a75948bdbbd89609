package config

import (
	"testing"
	"time"
)

func TestGetConfig(t *testing.T) {
	config1 := GetConfig()
	if config1 == nil {
		t.Fatal("GetConfig returned nil")
	}

	config2 := GetConfig()
	if config1 != config2 {
		t.Error("GetConfig is not returning singleton instance")
	}
}

func TestConfigDefaults(t *testing.T) {
	config := GetConfig()

	if config.GetLedger() == "" {
		t.Error("Expected default ledger to be set")
	}
	if config.GetCollection() == "" {
		t.Error("Expected default collection to be set")
	}
	if config.GetPageSize() != 100 {
		t.Errorf("Expected default page size 100, got %d", config.GetPageSize())
	}
	if config.GetBaseURL() == "" {
		t.Error("Expected default base URL to be set")
	}
}

func TestConfigSettersAndGetters(t *testing.T) {
	config := GetConfig()

	config.SetBaseURL("http://localhost:8999/api/v1")
	if config.GetBaseURL() != "http://localhost:8999/api/v1" {
		t.Errorf("Expected base URL 'http://localhost:8999/api/v1', got '%s'", config.GetBaseURL())
	}

	config.SetAPIKey("test-key")
	if config.GetAPIKey() != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", config.GetAPIKey())
	}

	config.SetLedger("testledger")
	if config.GetLedger() != "testledger" {
		t.Errorf("Expected ledger 'testledger', got '%s'", config.GetLedger())
	}

	config.SetCollection("testcollection")
	if config.GetCollection() != "testcollection" {
		t.Errorf("Expected collection 'testcollection', got '%s'", config.GetCollection())
	}

	config.SetPageSize(25)
	if config.GetPageSize() != 25 {
		t.Errorf("Expected page size 25, got %d", config.GetPageSize())
	}

	timeout := 10 * time.Second
	config.SetTimeout(timeout)
	if config.GetTimeout() != timeout {
		t.Errorf("Expected timeout %v, got %v", timeout, config.GetTimeout())
	}

	config.SetDbPath("ops.db")
	if config.GetDbPath() != "ops.db" {
		t.Errorf("Expected db path 'ops.db', got '%s'", config.GetDbPath())
	}

	config.SetLogLevel("debug")
	if config.GetLogLevel() != "debug" {
		t.Errorf("Expected log level 'debug', got '%s'", config.GetLogLevel())
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("VAULT_TEST_STR", "value")
	if getEnv("VAULT_TEST_STR", "fallback") != "value" {
		t.Error("getEnv should prefer the environment value")
	}
	if getEnv("VAULT_TEST_MISSING", "fallback") != "fallback" {
		t.Error("getEnv should fall back when unset")
	}

	t.Setenv("VAULT_TEST_INT", "42")
	if getEnvInt("VAULT_TEST_INT", 7) != 42 {
		t.Error("getEnvInt should parse the environment value")
	}
	t.Setenv("VAULT_TEST_INT", "not-a-number")
	if getEnvInt("VAULT_TEST_INT", 7) != 7 {
		t.Error("getEnvInt should fall back on parse errors")
	}

	t.Setenv("VAULT_TEST_DUR", "5s")
	if getEnvDuration("VAULT_TEST_DUR", time.Second) != 5*time.Second {
		t.Error("getEnvDuration should parse the environment value")
	}
}
