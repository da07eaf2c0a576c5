package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr          string        `yaml:"addr" validate:"required"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	SecureCookies bool          `yaml:"secure_cookies"`
	JwtTTL        time.Duration `yaml:"jwt_ttl" validate:"required"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	PostsPerPage  int           `yaml:"posts_per_page" validate:"required,gt=0"`
	IndexCacheTTL time.Duration `yaml:"index_cache_ttl" validate:"required"`
	Cache         Cache         `yaml:"cache"`

	MediaPath             string   `yaml:"media_path" validate:"required"`
	TemplatesPath         string   `yaml:"templates_path" validate:"required"`
	StaticPath            string   `yaml:"static_path" validate:"required"`
	MaxImageSize          int64    `yaml:"max_image_size" validate:"required,gt=0"`
	AllowedImageMimeTypes []string `yaml:"allowed_image_mime_types" validate:"required,min=1"`

	PostTextMaxLen    int `yaml:"post_text_max_len" validate:"required,gt=0"`
	CommentTextMaxLen int `yaml:"comment_text_max_len" validate:"required,gt=0"`
	PasswordMinLen    int `yaml:"password_min_len" validate:"required,gt=0"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	RateLimit RateLimit `yaml:"rate_limit"`
}

// RateLimit configures the token buckets. Zero values fall back to defaults.
type RateLimit struct {
	AuthPerMinute   float64 `yaml:"auth_per_minute"`
	AuthBurst       float64 `yaml:"auth_burst"`
	WritesPerMinute float64 `yaml:"writes_per_minute"`
	WritesBurst     float64 `yaml:"writes_burst"`
}

// Cache selects the page cache backend. Backend is "memory" or "redis".
type Cache struct {
	Backend       string        `yaml:"backend" validate:"omitempty,oneof=memory redis"`
	RedisAddr     string        `yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB       int           `yaml:"redis_db"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key" validate:"required"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder. A .env file in
// the same folder, if present, is loaded into the environment first so that
// secrets can be kept out of the yaml files.
func MustLoad(configFolder string) *Config {
	envPath := path.Join(configFolder, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			panic(fmt.Sprintf("can't load %s: %v", envPath, err))
		}
	}

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(c)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Private.JwtKey = v
	}
	if v := os.Getenv("PG_HOST"); v != "" {
		c.Private.Pg.Host = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Private.Pg.Password = v
	}
	if v := os.Getenv("PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Private.Pg.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Public.Cache.RedisAddr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Public.Addr = ":" + v
	}
}

func (c *Config) applyDefaults() {
	if c.Public.ReadTimeout == 0 {
		c.Public.ReadTimeout = 5 * time.Second
	}
	if c.Public.WriteTimeout == 0 {
		c.Public.WriteTimeout = 10 * time.Second
	}
	if c.Public.Cache.Backend == "" {
		c.Public.Cache.Backend = "memory"
	}
	if c.Public.Cache.SweepInterval <= 0 {
		c.Public.Cache.SweepInterval = time.Minute
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	rl := &c.Public.RateLimit
	if rl.AuthPerMinute == 0 {
		rl.AuthPerMinute = 10
	}
	if rl.AuthBurst == 0 {
		rl.AuthBurst = 5
	}
	if rl.WritesPerMinute == 0 {
		rl.WritesPerMinute = 30
	}
	if rl.WritesBurst == 0 {
		rl.WritesBurst = 10
	}
}
