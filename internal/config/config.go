package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Source    SourceConfig    `yaml:"source"`
	Database  DatabaseConfig  `yaml:"database"`
	Search    SearchConfig    `yaml:"search"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Source kinds.
const (
	SourceDir      = "dir"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// SourceConfig selects where the catalog datasets are read from.
type SourceConfig struct {
	Kind    string        `yaml:"kind"     env:"SOURCE_KIND"     env-default:"dir"`
	Dir     string        `yaml:"dir"      env:"SOURCE_DIR"      env-default:"./data"`
	BaseURL string        `yaml:"base_url" env:"SOURCE_BASE_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"SOURCE_TIMEOUT"  env-default:"30s"`
	// RetryInitial is the first backoff interval of an HTTP download and
	// RetryMaxElapsed bounds the retries of one file.
	RetryInitial    time.Duration `yaml:"retry_initial"     env:"SOURCE_RETRY_INITIAL"     env-default:"500ms"`
	RetryMaxElapsed time.Duration `yaml:"retry_max_elapsed" env:"SOURCE_RETRY_MAX_ELAPSED" env-default:"30s"`
	LoadTimeout     time.Duration `yaml:"load_timeout"      env:"SOURCE_LOAD_TIMEOUT"      env-default:"2m"`
	// ReloadInterval of zero disables periodic reloads; SIGHUP always reloads.
	ReloadInterval time.Duration `yaml:"reload_interval" env:"SOURCE_RELOAD_INTERVAL" env-default:"0s"`

	DictionaryFile string `yaml:"dictionary_file" env:"SOURCE_DICTIONARY_FILE" env-default:"dictionary.csv"`
	MorphologyFile string `yaml:"morphology_file" env:"SOURCE_MORPHOLOGY_FILE" env-default:"reconstructable_verbs.json"`
	SentencesFile  string `yaml:"sentences_file"  env:"SOURCE_SENTENCES_FILE"  env-default:"sentences.csv"`
	LinksFile      string `yaml:"links_file"      env:"SOURCE_LINKS_FILE"      env-default:"join_table.csv"`
	ClassesFile    string `yaml:"classes_file"    env:"SOURCE_CLASSES_FILE"    env-default:"classses_expanded.json"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used by the
// postgres source kind and the publish command.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SearchConfig holds search settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit" env:"SEARCH_DEFAULT_LIMIT" env-default:"50"`
	// MinQueryLen counts runes of the normalized query; shorter queries
	// return nothing.
	MinQueryLen int `yaml:"min_query_len" env:"SEARCH_MIN_QUERY_LEN" env-default:"2"`
	// CacheSize of zero disables the result cache.
	CacheSize int `yaml:"cache_size" env:"SEARCH_CACHE_SIZE" env-default:"1024"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"600"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
