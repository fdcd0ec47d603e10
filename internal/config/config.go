package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string `json:"server_addr"`

	LLMProvider    string `json:"llm_provider"`
	ChatModel      string `json:"chat_model"`
	OpenAIAPIKey   string `json:"openai_api_key"`
	OpenAIBaseURL  string `json:"openai_base_url"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	BackendURL    string `json:"backend_url"`
	MarketDataURL string `json:"market_data_url"`

	VectorURL        string `json:"vector_url"`
	VectorCollection string `json:"vector_collection"`
	VectorTopK       int    `json:"vector_top_k"`

	ReferenceTicker string `json:"reference_ticker"`

	DataCacheDir string `json:"data_cache_dir"`
	CacheEnabled bool   `json:"cache_enabled"`

	ReportsDir   string `json:"reports_dir"`
	ChunkSize    int    `json:"chunk_size"`
	ChunkOverlap int    `json:"chunk_overlap"`

	DashboardCron    string `json:"dashboard_cron"`
	DashboardCacheS  int    `json:"dashboard_cache_seconds"`
	DashboardEnabled bool   `json:"dashboard_enabled"`

	LogLevel    string `json:"log_level"`
	LogEncoding string `json:"log_encoding"`
	Debug       bool   `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ServerAddr: ":8001",

		LLMProvider:   "openai",
		ChatModel:     "gpt-4o-mini",
		OpenAIBaseURL: "https://api.openai.com/v1",

		BackendURL:    "http://localhost:8080",
		MarketDataURL: "http://localhost:8090",

		VectorURL:        "http://localhost:8000",
		VectorCollection: "analyst_reports",
		VectorTopK:       3,

		ReferenceTicker: "005930",

		DataCacheDir: filepath.Join(currentDir, "data", "cache"),
		CacheEnabled: true,

		ReportsDir:   filepath.Join(currentDir, "data", "reports"),
		ChunkSize:    500,
		ChunkOverlap: 50,

		DashboardCron:    "@every 60s",
		DashboardCacheS:  60,
		DashboardEnabled: true,

		LogLevel:    "info",
		LogEncoding: "console",
		Debug:       false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("SERVER_ADDR"); val != "" {
		c.ServerAddr = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("CHAT_MODEL"); val != "" {
		c.ChatModel = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		c.OpenAIBaseURL = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}

	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("MARKET_DATA_URL"); val != "" {
		c.MarketDataURL = val
	}

	if val := os.Getenv("VECTOR_URL"); val != "" {
		c.VectorURL = val
	}
	if val := os.Getenv("VECTOR_COLLECTION"); val != "" {
		c.VectorCollection = val
	}
	if val := os.Getenv("VECTOR_TOP_K"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.VectorTopK = v
		}
	}

	if val := os.Getenv("REFERENCE_TICKER"); val != "" {
		c.ReferenceTicker = val
	}

	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}

	if val := os.Getenv("REPORTS_DIR"); val != "" {
		c.ReportsDir = val
	}
	if val := os.Getenv("CHUNK_SIZE"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.ChunkSize = v
		}
	}
	if val := os.Getenv("CHUNK_OVERLAP"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v >= 0 {
			c.ChunkOverlap = v
		}
	}

	if val := os.Getenv("DASHBOARD_CRON"); val != "" {
		c.DashboardCron = val
	}
	if val := os.Getenv("DASHBOARD_CACHE_SECONDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.DashboardCacheS = v
		}
	}
	if val := os.Getenv("DASHBOARD_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.DashboardEnabled = enabled
		}
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("LOG_ENCODING"); val != "" {
		c.LogEncoding = val
	}
	if val := os.Getenv("INVESTAI_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataCacheDir, c.ReportsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
