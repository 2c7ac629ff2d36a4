package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			Model: "BAAI/bge-multilingual-gemma2",
		},
		Chat: ChatConfig{
			Model: "meta-llama/Meta-Llama-3.1-70B-Instruct",
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}

	cfg.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingModels(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing embedding model")
	}

	cfg = validConfig()
	cfg.Chat.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing chat model")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("expected Dimensions=1024, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Chat.Temperature != 0.7 {
		t.Errorf("expected Temperature=0.7, got %v", cfg.Chat.Temperature)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Search.TopK)
	}
	if cfg.Search.EmbedTimeoutSec != 10 || cfg.Search.SearchTimeoutSec != 5 {
		t.Errorf("expected timeouts 10/5, got %d/%d",
			cfg.Search.EmbedTimeoutSec, cfg.Search.SearchTimeoutSec)
	}
	if cfg.Search.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.Search.HNSWM)
	}
	if cfg.Search.HNSWEFConstruct != 200 {
		t.Errorf("expected HNSWEFConstruct=200, got %d", cfg.Search.HNSWEFConstruct)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Search: SearchConfig{TopK: 10, HNSWM: 32, HNSWEFConstruct: 400},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.TopK != 10 {
		t.Errorf("expected TopK=10, got %d", cfg.Search.TopK)
	}
	if cfg.Search.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.Search.HNSWM)
	}
}

func TestApplyDefaults_ChatInheritsProvider(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{
			APIKey:  "emb-key",
			BaseURL: "https://api.example.com/v1/",
		},
	}
	cfg.ApplyDefaults()

	if cfg.Chat.APIKey != "emb-key" {
		t.Errorf("expected inherited APIKey, got %q", cfg.Chat.APIKey)
	}
	if cfg.Chat.BaseURL != "https://api.example.com/v1/" {
		t.Errorf("expected inherited BaseURL, got %q", cfg.Chat.BaseURL)
	}
}

func TestApplyDefaults_ChatKeepsOwnProvider(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{APIKey: "emb-key", BaseURL: "https://emb.example.com/"},
		Chat:      ChatConfig{APIKey: "chat-key", BaseURL: "https://chat.example.com/"},
	}
	cfg.ApplyDefaults()

	if cfg.Chat.APIKey != "chat-key" || cfg.Chat.BaseURL != "https://chat.example.com/" {
		t.Errorf("chat provider overridden: %+v", cfg.Chat)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CONCIERGE_TEST_KEY", "secret123")

	got := string(expandEnvVars([]byte("api_key: ${CONCIERGE_TEST_KEY}")))
	if got != "api_key: secret123" {
		t.Errorf("got %q", got)
	}
}

func TestExpandEnvVars_Default(t *testing.T) {
	t.Setenv("CONCIERGE_TEST_UNSET", "")

	got := string(expandEnvVars([]byte("port: ${CONCIERGE_TEST_UNSET:-8080}")))
	if got != "port: 8080" {
		t.Errorf("got %q", got)
	}
}

func TestExpandEnvVars_UnsetWithoutDefault(t *testing.T) {
	t.Setenv("CONCIERGE_TEST_UNSET", "")

	got := string(expandEnvVars([]byte("password: ${CONCIERGE_TEST_UNSET}")))
	if got != "password: " {
		t.Errorf("got %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("default env = %q, want local", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("env = %q, want prod", got)
	}
}
