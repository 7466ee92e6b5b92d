package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config is the immutable, validated configuration for every ESG pipeline
// binary. It is built once at startup (NewDefaultConfig -> optional TOML file
// -> environment overrides) and passed explicitly to every component; no
// package outside common reads os.Getenv directly.
type Config struct {
	ObjectStore ObjectStoreConfig `toml:"object_store" validate:"required"`
	Broker      BrokerConfig      `toml:"broker" validate:"required"`
	DB          DBConfig          `toml:"db" validate:"required"`
	Embed       EmbedConfig       `toml:"embed" validate:"required"`
	Gen         GenConfig         `toml:"gen" validate:"required"`
	Extraction  ExtractionConfig  `toml:"extraction"`
	Scoring     ScoringConfig     `toml:"scoring"`
	Cache       CacheConfig       `toml:"cache"`
	Auth        AuthConfig        `toml:"auth"`
	Logging     LoggingConfig     `toml:"logging"`
	Server      ServerConfig      `toml:"server"`
	Telemetry   TelemetryConfig   `toml:"telemetry"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Filings     FilingsConfig     `toml:"filings"`
	Dashboard   DashboardConfig   `toml:"dashboard"`
	DocStore    DocStoreConfig    `toml:"docstore" validate:"required"`
}

type ObjectStoreConfig struct {
	Endpoint  string `toml:"endpoint" validate:"required"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket" validate:"required"`
	Secure    bool   `toml:"secure"`
}

type BrokerConfig struct {
	Host      string        `toml:"host" validate:"required"`
	Port      int           `toml:"port" validate:"required,gt=0"`
	User      string        `toml:"user"`
	Password  string        `toml:"password"`
	Heartbeat time.Duration `toml:"heartbeat"`
}

// URL builds the amqp connection string broker.Connect dials.
func (b BrokerConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", b.User, b.Password, b.Host, b.Port)
}

type DBConfig struct {
	Host     string `toml:"host" validate:"required"`
	Port     int    `toml:"port" validate:"required,gt=0"`
	Name     string `toml:"name" validate:"required"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type EmbedConfig struct {
	ModelName  string `toml:"model_name" validate:"required"`
	Dimensions int    `toml:"dimensions" validate:"required,gt=0"`
	APIKey     string `toml:"api_key"`
	BatchSize  int    `toml:"batch_size" validate:"gt=0"`
}

type GenConfig struct {
	ModelName   string  `toml:"model_name" validate:"required"`
	Temperature float32 `toml:"temperature" validate:"gte=0,lte=2"`
	APIKey      string  `toml:"api_key"`
}

type ExtractionConfig struct {
	TopK          int `toml:"top_k" validate:"gt=0"`
	ChunkSize     int `toml:"chunk_size" validate:"gt=0"`
	ChunkOverlap  int `toml:"chunk_overlap" validate:"gte=0"`
	EmbedBatch    int `toml:"embed_batch" validate:"gt=0"`
	RetryAttempts int `toml:"retry_attempts" validate:"gt=0"`
}

type ScoringConfig struct {
	MinConfidence float64 `toml:"min_confidence" validate:"gte=0,lte=1"`
}

type CacheConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Enabled  bool   `toml:"enabled"`
}

// Addr builds the host:port Redis address cache.New expects.
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DocStoreConfig configures the Mongo-backed telemetry snapshot sink.
type DocStoreConfig struct {
	URI      string `toml:"uri" validate:"required"`
	Database string `toml:"database" validate:"required"`
}

type AuthConfig struct {
	JWTSecret      string        `toml:"jwt_secret" validate:"required"`
	TokenTTL       time.Duration `toml:"token_ttl" validate:"gt=0"`
	RateLimitRPS   float64       `toml:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int           `toml:"rate_limit_burst" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Format string   `toml:"format" validate:"oneof=text json"`
	Output []string `toml:"output"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port" validate:"gt=0"`
}

type TelemetryConfig struct {
	ScheduleInterval time.Duration `toml:"schedule_interval" validate:"gt=0"`
	ScrapeWait       time.Duration `toml:"scrape_wait" validate:"gt=0"`
}

// CatalogConfig is the feed-source configuration for component A and its
// supplemented disclosure/dashboard-link refreshers.
type CatalogConfig struct {
	FeedURL             string        `toml:"feed_url"`
	ShareholderFeedURL  string        `toml:"shareholder_feed_url"`
	AnnouncementFeedURL string        `toml:"announcement_feed_url"`
	DashboardFeedURL    string        `toml:"dashboard_feed_url"`
	SyncInterval        time.Duration `toml:"sync_interval" validate:"gt=0"`
}

// FilingsConfig configures component B's headless-browser report lookup.
type FilingsConfig struct {
	IndexURLTemplate string        `toml:"index_url_template"`
	LinkSelector     string        `toml:"link_selector"`
	Wait             time.Duration `toml:"wait" validate:"gt=0"`
	PollInterval     time.Duration `toml:"poll_interval" validate:"gt=0"`
}

// DashboardConfig configures component F's headless-browser dashboard scrape.
type DashboardConfig struct {
	ParentBlockSelector string        `toml:"parent_block_selector"`
	LabelSelector       string        `toml:"label_selector"`
	Wait                time.Duration `toml:"wait" validate:"gt=0"`
}

// NewDefaultConfig returns sane defaults for local/dev use; every value here
// is safe to override from a TOML file or environment variable.
func NewDefaultConfig() *Config {
	return &Config{
		ObjectStore: ObjectStoreConfig{
			Endpoint: "http://localhost:9000",
			Region:   "us-east-1",
			Bucket:   "esg-reports",
			Secure:   false,
		},
		Broker: BrokerConfig{
			Host:      "localhost",
			Port:      5672,
			User:      "guest",
			Password:  "guest",
			Heartbeat: 60 * time.Second,
		},
		DB: DBConfig{
			Host: "localhost",
			Port: 5432,
			Name: "esg",
			User: "esg",
		},
		Embed: EmbedConfig{
			ModelName:  "gemini-embedding-001",
			Dimensions: 768,
			BatchSize:  32,
		},
		Gen: GenConfig{
			ModelName:   "claude-haiku-4-5",
			Temperature: 0.1,
		},
		Extraction: ExtractionConfig{
			TopK:          10,
			ChunkSize:     1000,
			ChunkOverlap:  200,
			EmbedBatch:    32,
			RetryAttempts: 3,
		},
		Scoring: ScoringConfig{
			MinConfidence: 0.3,
		},
		Cache: CacheConfig{
			Host:    "localhost",
			Port:    6379,
			Enabled: true,
		},
		Auth: AuthConfig{
			TokenTTL:       24 * time.Hour,
			RateLimitRPS:   10,
			RateLimitBurst: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Telemetry: TelemetryConfig{
			ScheduleInterval: 5 * time.Minute,
			ScrapeWait:       30 * time.Second,
		},
		Catalog: CatalogConfig{
			SyncInterval: 24 * time.Hour,
		},
		Filings: FilingsConfig{
			LinkSelector: "a.report-link",
			Wait:         2 * time.Second,
			PollInterval: 6 * time.Hour,
		},
		Dashboard: DashboardConfig{
			ParentBlockSelector: "div.station-block",
			LabelSelector:       "span.label",
			Wait:                2 * time.Second,
		},
		DocStore: DocStoreConfig{
			URI:      "mongodb://localhost:27017",
			Database: "esg_telemetry",
		},
	}
}

// LoadFromFile loads defaults, overlays an optional TOML file, then applies
// environment variable overrides, and validates the result.
func LoadFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(c *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	boolean := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	float := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}

	str("OBJECT_STORE_ENDPOINT", &c.ObjectStore.Endpoint)
	str("OBJECT_STORE_ACCESS_KEY", &c.ObjectStore.AccessKey)
	str("OBJECT_STORE_SECRET_KEY", &c.ObjectStore.SecretKey)
	str("OBJECT_STORE_BUCKET", &c.ObjectStore.Bucket)
	str("OBJECT_STORE_REGION", &c.ObjectStore.Region)
	boolean("SECURE", &c.ObjectStore.Secure)

	str("BROKER_HOST", &c.Broker.Host)
	num("BROKER_PORT", &c.Broker.Port)
	str("BROKER_USER", &c.Broker.User)
	str("BROKER_PASSWORD", &c.Broker.Password)
	duration("BROKER_HEARTBEAT", &c.Broker.Heartbeat)

	str("DB_HOST", &c.DB.Host)
	num("DB_PORT", &c.DB.Port)
	str("DB_NAME", &c.DB.Name)
	str("DB_USER", &c.DB.User)
	str("DB_PASSWORD", &c.DB.Password)

	str("EMBED_MODEL_NAME", &c.Embed.ModelName)
	num("EMBED_DIMENSIONS", &c.Embed.Dimensions)
	str("EMBED_API_KEY", &c.Embed.APIKey)
	num("EMBED_BATCH_SIZE", &c.Extraction.EmbedBatch)

	str("GEN_MODEL_NAME", &c.Gen.ModelName)
	str("GEN_API_KEY", &c.Gen.APIKey)
	if v := os.Getenv("GEN_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			c.Gen.Temperature = float32(f)
		}
	}

	num("EXTRACT_TOP_K", &c.Extraction.TopK)
	num("CHUNK_SIZE", &c.Extraction.ChunkSize)
	num("CHUNK_OVERLAP", &c.Extraction.ChunkOverlap)

	float("SCORING_MIN_CONFIDENCE", &c.Scoring.MinConfidence)

	str("CACHE_HOST", &c.Cache.Host)
	num("CACHE_PORT", &c.Cache.Port)
	str("CACHE_PASSWORD", &c.Cache.Password)
	num("CACHE_DB", &c.Cache.DB)
	boolean("CACHE_ENABLED", &c.Cache.Enabled)

	str("AUTH_JWT_SECRET", &c.Auth.JWTSecret)
	duration("AUTH_TOKEN_TTL", &c.Auth.TokenTTL)
	float("AUTH_RATE_LIMIT_RPS", &c.Auth.RateLimitRPS)
	num("AUTH_RATE_LIMIT_BURST", &c.Auth.RateLimitBurst)

	str("CATALOG_FEED_URL", &c.Catalog.FeedURL)
	str("CATALOG_SHAREHOLDER_FEED_URL", &c.Catalog.ShareholderFeedURL)
	str("CATALOG_ANNOUNCEMENT_FEED_URL", &c.Catalog.AnnouncementFeedURL)
	str("CATALOG_DASHBOARD_FEED_URL", &c.Catalog.DashboardFeedURL)
	duration("CATALOG_SYNC_INTERVAL", &c.Catalog.SyncInterval)

	str("FILINGS_INDEX_URL_TEMPLATE", &c.Filings.IndexURLTemplate)
	str("FILINGS_LINK_SELECTOR", &c.Filings.LinkSelector)
	duration("FILINGS_WAIT", &c.Filings.Wait)
	duration("FILINGS_POLL_INTERVAL", &c.Filings.PollInterval)

	str("DASHBOARD_PARENT_BLOCK_SELECTOR", &c.Dashboard.ParentBlockSelector)
	str("DASHBOARD_LABEL_SELECTOR", &c.Dashboard.LabelSelector)
	duration("DASHBOARD_WAIT", &c.Dashboard.Wait)

	str("SERVER_HOST", &c.Server.Host)
	num("SERVER_PORT", &c.Server.Port)

	str("DOCSTORE_URI", &c.DocStore.URI)
	str("DOCSTORE_DATABASE", &c.DocStore.Database)
}

// DeepClone returns a copy safe to hand to a goroutine without risking
// shared-slice mutation of the original.
func (c *Config) DeepClone() *Config {
	clone := *c
	clone.Logging.Output = append([]string(nil), c.Logging.Output...)
	return &clone
}
