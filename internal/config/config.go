package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration, read from the environment
// (and a .env file outside production).
type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	HTTPAddr string `mapstructure:"http_addr"`

	DatabaseURL string `mapstructure:"database_url"`
	DishStore   string `mapstructure:"dish_store"`
	SQLitePath  string `mapstructure:"sqlite_path"`

	JWTSecret string `mapstructure:"jwt_secret"`

	// Optional first ADMIN account, created on start when missing.
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`

	RedisAddr    string        `mapstructure:"redis_addr"`
	MenuCacheTTL time.Duration `mapstructure:"menu_cache_ttl"`

	KafkaBroker    string `mapstructure:"kafka_broker"`
	AnalyticsTopic string `mapstructure:"analytics_topic"`

	R2Endpoint      string `mapstructure:"r2_endpoint"`
	R2AccessKey     string `mapstructure:"r2_access_key"`
	R2SecretKey     string `mapstructure:"r2_secret_key"`
	R2BucketName    string `mapstructure:"r2_bucket_name"`
	R2PublicBaseURL string `mapstructure:"r2_public_base_url"`

	GitHubToken  string `mapstructure:"github_token"`
	GitHubOwner  string `mapstructure:"github_owner"`
	GitHubRepo   string `mapstructure:"github_repo"`
	GitHubBranch string `mapstructure:"github_branch"`

	CORSOrigins    []string      `mapstructure:"cors_origins"`
	TaxPercent     float64       `mapstructure:"tax_percent"`
	ExportInterval time.Duration `mapstructure:"export_interval"`
}

var keys = []string{
	"app_env", "http_addr",
	"database_url", "dish_store", "sqlite_path",
	"jwt_secret", "admin_email", "admin_password",
	"redis_addr", "menu_cache_ttl",
	"kafka_broker", "analytics_topic",
	"r2_endpoint", "r2_access_key", "r2_secret_key", "r2_bucket_name", "r2_public_base_url",
	"github_token", "github_owner", "github_repo", "github_branch",
	"cors_origins", "tax_percent", "export_interval",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("http_addr", ":8000")
	v.SetDefault("dish_store", "postgres")
	v.SetDefault("sqlite_path", "menu.db")
	v.SetDefault("menu_cache_ttl", "5m")
	v.SetDefault("analytics_topic", "analytics.events")
	v.SetDefault("github_branch", "main")
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("tax_percent", 0)
	v.SetDefault("export_interval", "1h")
}

// Load reads configuration from the process environment. Outside production
// a .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if !strings.EqualFold(v.GetString("app_env"), "production") {
		if err := godotenv.Load(); err == nil {
			log.Println("[CONFIG] loaded .env")
		}
	}

	// AutomaticEnv only resolves keys viper already knows about.
	for _, k := range keys {
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, err
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing required key at once.
func (c *Config) Validate() error {
	var missing []string

	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	switch c.DishStore {
	case "postgres":
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown DISH_STORE %q (want postgres or sqlite)", c.DishStore)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// StorageEnabled reports whether object storage credentials are present.
func (c *Config) StorageEnabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2BucketName != ""
}

// GitHubEnabled reports whether content commits to GitHub are configured.
func (c *Config) GitHubEnabled() bool {
	return c.GitHubToken != "" && c.GitHubOwner != "" && c.GitHubRepo != ""
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
