package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// placeholderKeys are the sample values shipped in .env.example; they count as unset.
var placeholderKeys = map[string]bool{
	"votre_cle_gemini_ici":   true,
	"votre_cle_deepseek_ici": true,
	"changeme":               true,
}

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	LLM      LLMConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Pipeline PipelineConfig
	Upload   UploadConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProviderConfig holds settings for a single generative-model backend.
type ProviderConfig struct {
	Provider     string  `mapstructure:"provider"`
	APIKey       string  `mapstructure:"api_key"`
	DefaultModel string  `mapstructure:"default_model"`
	VisionModel  string  `mapstructure:"vision_model"`
	Endpoint     string  `mapstructure:"endpoint"`
	Temperature  float64 `mapstructure:"temperature"`
	TimeoutSecs  int     `mapstructure:"timeout_secs"`
}

// HasKey reports whether a usable API key is configured.
func (p *ProviderConfig) HasKey() bool {
	return UsableKey(p.APIKey)
}

// LLMConfig holds the primary and alternate backends.
type LLMConfig struct {
	Primary   ProviderConfig `mapstructure:"primary"`
	Alternate ProviderConfig `mapstructure:"alternate"`
}

// AlternateConfig returns the alternate backend config, or nil if no provider is set.
func (l *LLMConfig) AlternateConfig() *ProviderConfig {
	if l.Alternate.Provider != "" {
		return &l.Alternate
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings. URL takes precedence over the
// discrete fields; with neither set the store is disabled.
type DBConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// Enabled reports whether enough settings are present to reach a database.
func (d *DBConfig) Enabled() bool {
	return d.URL != "" || d.Host != ""
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for archiving uploaded source documents.
// An empty bucket disables archiving.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Enabled reports whether archiving is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PipelineConfig holds orchestration settings.
type PipelineConfig struct {
	CompletedReset time.Duration `mapstructure:"completed_reset"`
	DefaultTheme   string        `mapstructure:"default_theme"`
}

// UploadConfig holds limits for uploaded documents.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload size limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// UsableKey reports whether an API key is non-empty and not a sample placeholder.
func UsableKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !placeholderKeys[strings.ToLower(key)]
}

// Load reads configuration from an optional .env file and environment variables
// with the SEOGEN_ prefix. The unprefixed names used by earlier deployments
// (GEMINI_API_KEY, DEEPSEEK_API_KEY, DATABASE_URL, PORT) are honoured as well.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SEOGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "10m")
	v.SetDefault("server.environment", "development")

	// DB defaults (no host: store disabled until configured)
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "seogen")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "seogen")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// LLM defaults
	v.SetDefault("llm.primary.provider", "gemini")
	v.SetDefault("llm.primary.api_key", "")
	v.SetDefault("llm.primary.default_model", "gemini-3-pro-preview")
	v.SetDefault("llm.primary.vision_model", "gemini-3-flash-preview")
	v.SetDefault("llm.primary.endpoint", "")
	v.SetDefault("llm.primary.temperature", 0)
	v.SetDefault("llm.primary.timeout_secs", 120)
	v.SetDefault("llm.alternate.provider", "deepseek")
	v.SetDefault("llm.alternate.api_key", "")
	v.SetDefault("llm.alternate.default_model", "deepseek-chat")
	v.SetDefault("llm.alternate.vision_model", "")
	v.SetDefault("llm.alternate.endpoint", "")
	v.SetDefault("llm.alternate.temperature", 0.7)
	v.SetDefault("llm.alternate.timeout_secs", 120)

	// S3 defaults (no bucket: archiving disabled)
	v.SetDefault("s3.region", "eu-west-3")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "uploads")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Pipeline defaults
	v.SetDefault("pipeline.completed_reset", "4s")
	v.SetDefault("pipeline.default_theme", "Emploi & Carrière")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Bind environment variables explicitly for nested keys. Keys listing two
	// variables accept either name, the prefixed one winning.
	envBindings := map[string][]string{
		"server.port":                 {"SEOGEN_SERVER_PORT"},
		"server.read_timeout":         {"SEOGEN_SERVER_READ_TIMEOUT"},
		"server.write_timeout":        {"SEOGEN_SERVER_WRITE_TIMEOUT"},
		"server.environment":          {"SEOGEN_SERVER_ENVIRONMENT"},
		"db.url":                      {"SEOGEN_DB_URL", "DATABASE_URL"},
		"db.host":                     {"SEOGEN_DB_HOST"},
		"db.port":                     {"SEOGEN_DB_PORT"},
		"db.user":                     {"SEOGEN_DB_USER"},
		"db.password":                 {"SEOGEN_DB_PASSWORD"},
		"db.name":                     {"SEOGEN_DB_NAME"},
		"db.sslmode":                  {"SEOGEN_DB_SSLMODE"},
		"db.max_open":                 {"SEOGEN_DB_MAX_OPEN"},
		"db.max_idle":                 {"SEOGEN_DB_MAX_IDLE"},
		"llm.primary.provider":        {"SEOGEN_LLM_PRIMARY_PROVIDER"},
		"llm.primary.api_key":         {"SEOGEN_LLM_PRIMARY_API_KEY", "GEMINI_API_KEY"},
		"llm.primary.default_model":   {"SEOGEN_LLM_PRIMARY_DEFAULT_MODEL"},
		"llm.primary.vision_model":    {"SEOGEN_LLM_PRIMARY_VISION_MODEL"},
		"llm.primary.endpoint":        {"SEOGEN_LLM_PRIMARY_ENDPOINT"},
		"llm.primary.temperature":     {"SEOGEN_LLM_PRIMARY_TEMPERATURE"},
		"llm.primary.timeout_secs":    {"SEOGEN_LLM_PRIMARY_TIMEOUT_SECS"},
		"llm.alternate.provider":      {"SEOGEN_LLM_ALTERNATE_PROVIDER"},
		"llm.alternate.api_key":       {"SEOGEN_LLM_ALTERNATE_API_KEY", "DEEPSEEK_API_KEY"},
		"llm.alternate.default_model": {"SEOGEN_LLM_ALTERNATE_DEFAULT_MODEL"},
		"llm.alternate.vision_model":  {"SEOGEN_LLM_ALTERNATE_VISION_MODEL"},
		"llm.alternate.endpoint":      {"SEOGEN_LLM_ALTERNATE_ENDPOINT"},
		"llm.alternate.temperature":   {"SEOGEN_LLM_ALTERNATE_TEMPERATURE"},
		"llm.alternate.timeout_secs":  {"SEOGEN_LLM_ALTERNATE_TIMEOUT_SECS"},
		"s3.region":                   {"SEOGEN_S3_REGION"},
		"s3.bucket":                   {"SEOGEN_S3_BUCKET"},
		"s3.endpoint":                 {"SEOGEN_S3_ENDPOINT"},
		"s3.access_key":               {"SEOGEN_S3_ACCESS_KEY"},
		"s3.secret_key":               {"SEOGEN_S3_SECRET_KEY"},
		"s3.prefix":                   {"SEOGEN_S3_PREFIX"},
		"log.level":                   {"SEOGEN_LOG_LEVEL"},
		"log.format":                  {"SEOGEN_LOG_FORMAT"},
		"cors.allowed_origins":        {"SEOGEN_CORS_ALLOWED_ORIGINS"},
		"pipeline.completed_reset":    {"SEOGEN_PIPELINE_COMPLETED_RESET"},
		"pipeline.default_theme":      {"SEOGEN_PIPELINE_DEFAULT_THEME"},
		"upload.max_file_size_mb":     {"SEOGEN_UPLOAD_MAX_FILE_SIZE_MB"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SEOGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SEOGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		URL:      v.GetString("db.url"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.LLM = LLMConfig{
		Primary:   providerConfig(v, "llm.primary"),
		Alternate: providerConfig(v, "llm.alternate"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		Prefix:    v.GetString("s3.prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Pipeline = PipelineConfig{
		CompletedReset: v.GetDuration("pipeline.completed_reset"),
		DefaultTheme:   v.GetString("pipeline.default_theme"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	if cfg.Pipeline.CompletedReset < 0 {
		return nil, fmt.Errorf("pipeline.completed_reset must not be negative, got %s", cfg.Pipeline.CompletedReset)
	}
	if cfg.Upload.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("upload.max_file_size_mb must be positive, got %d", cfg.Upload.MaxFileSizeMB)
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) ProviderConfig {
	return ProviderConfig{
		Provider:     v.GetString(prefix + ".provider"),
		APIKey:       strings.TrimSpace(v.GetString(prefix + ".api_key")),
		DefaultModel: v.GetString(prefix + ".default_model"),
		VisionModel:  v.GetString(prefix + ".vision_model"),
		Endpoint:     v.GetString(prefix + ".endpoint"),
		Temperature:  v.GetFloat64(prefix + ".temperature"),
		TimeoutSecs:  v.GetInt(prefix + ".timeout_secs"),
	}
}
