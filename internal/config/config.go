package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the numeric pipeline knobs. Every knob falls back to its
// default when the variable is unset or unparseable.
const (
	DefaultRetentionTTLHours    = 24
	DefaultLookbackHours        = 6
	DefaultDiscoveryWindowHours = 24
	DefaultRewriteBudget        = 8
	DefaultSectorViewCap        = 6
	DefaultWireViewCap          = 10
	DefaultFeedTimeout          = 15 * time.Second
	DefaultArticleTimeout       = 10 * time.Second
	DefaultRewriteTimeout       = 60 * time.Second
	DefaultRefreshInterval      = time.Hour
	DefaultDisplayTimezone      = "Asia/Jakarta"
	DefaultSnapshotPath         = "data.json"
)

// Config is built once in main and passed into every component
// constructor; nothing reads the environment after startup.
type Config struct {
	// Pipeline knobs.
	RetentionTTL    time.Duration
	Lookback        time.Duration
	DiscoveryWindow time.Duration
	RewriteBudget   int
	SectorViewCap   int
	WireViewCap     int
	RefreshInterval time.Duration

	// Outbound call timeouts.
	FeedTimeout    time.Duration
	ArticleTimeout time.Duration
	RewriteTimeout time.Duration

	// Rewrite providers, tried in order. Empty keys disable a provider.
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Indicator side-channel.
	FinnhubAPIKey string

	// Snapshot store selection: "file" (default), "redis" or "s3".
	StoreBackend string
	SnapshotPath string
	RedisURL     string
	S3Bucket     string
	S3Key        string

	// Heuristic lists override; empty uses the embedded defaults.
	LexiconPath string

	// Morning-brief email delivery (disabled unless SMTP host is set).
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	MailTo   string

	// Timezone used for generation stamps and brief day keys.
	DisplayLocation *time.Location

	// Read API.
	FrontendURL string
}

// Load builds the configuration from the environment, applying defaults
// for anything absent. It never fails on missing knobs; components that
// need a key (providers, stores) degrade or are skipped instead.
func Load() *Config {
	cfg := &Config{
		RetentionTTL:    hours("RETENTION_TTL_HOURS", DefaultRetentionTTLHours),
		Lookback:        hours("LOOKBACK_HOURS", DefaultLookbackHours),
		DiscoveryWindow: hours("DISCOVERY_WINDOW_HOURS", DefaultDiscoveryWindowHours),
		RewriteBudget:   integer("REWRITE_BUDGET", DefaultRewriteBudget),
		SectorViewCap:   integer("SECTOR_VIEW_CAP", DefaultSectorViewCap),
		WireViewCap:     integer("WIRE_VIEW_CAP", DefaultWireViewCap),
		RefreshInterval: hours("REFRESH_INTERVAL_HOURS", 1),

		FeedTimeout:    DefaultFeedTimeout,
		ArticleTimeout: DefaultArticleTimeout,
		RewriteTimeout: DefaultRewriteTimeout,

		GeminiAPIKey:    firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		FinnhubAPIKey: os.Getenv("FINNHUB_API_KEY"),

		StoreBackend: envOr("SNAPSHOT_STORE", "file"),
		SnapshotPath: envOr("SNAPSHOT_PATH", DefaultSnapshotPath),
		RedisURL:     os.Getenv("REDIS_URL"),
		S3Bucket:     os.Getenv("SNAPSHOT_S3_BUCKET"),
		S3Key:        envOr("SNAPSHOT_S3_KEY", DefaultSnapshotPath),

		LexiconPath: os.Getenv("LEXICON_PATH"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: integer("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: os.Getenv("BRIEF_MAIL_FROM"),
		MailTo:   os.Getenv("BRIEF_MAIL_TO"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	loc, err := time.LoadLocation(envOr("DISPLAY_TIMEZONE", DefaultDisplayTimezone))
	if err != nil {
		loc = time.UTC
	}
	cfg.DisplayLocation = loc

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func hours(key string, fallback int) time.Duration {
	return time.Duration(integer(key, fallback)) * time.Hour
}
