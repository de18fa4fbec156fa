package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is built once at process start and handed to every component that needs
// credentials or tunables. Nothing reads credentials from package state.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	LLM      LLMConfig      `toml:"llm"`
	Delivery DeliveryConfig `toml:"delivery"`
	Redis    RedisConfig    `toml:"redis"`
}

type LogConfig struct {
	Production bool   `toml:"production"`
	Level      string `toml:"level"`
}

type ServerConfig struct {
	ListenAddr      string        `toml:"listen_addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	IdleTimeout     time.Duration `toml:"idle_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	MaxUploadSize   int64         `toml:"max_upload_size"`
	StagingDir      string        `toml:"staging_dir"`
	RateLimit       float64       `toml:"rate_limit"`
	RateBurst       int           `toml:"rate_burst"`
	RateLimitOn     bool          `toml:"rate_limit_enabled"`
}

type LLMConfig struct {
	Provider    string        `toml:"provider"`
	Model       string        `toml:"model"`
	APIKey      string        `toml:"api_key"`
	BaseURL     string        `toml:"base_url"`
	Temperature float64       `toml:"temperature"`
	Timeout     time.Duration `toml:"timeout"`
}

type DeliveryConfig struct {
	DryRun   bool          `toml:"dry_run"`
	Host     string        `toml:"smtp_host"`
	Port     int           `toml:"smtp_port"`
	Username string        `toml:"smtp_username"`
	Password string        `toml:"smtp_password"`
	From     string        `toml:"from"`
	Reviewer string        `toml:"reviewer"`
	Subject  string        `toml:"subject"`
	Body     string        `toml:"body"`
	Timeout  time.Duration `toml:"timeout"`
}

type RedisConfig struct {
	Enabled  bool          `toml:"enabled"`
	Addr     string        `toml:"addr"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the configuration used when no file or env override is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Production: IS_PROD, Level: "debug"},
		Server: ServerConfig{
			ListenAddr:      ServerListenAddr,
			ReadTimeout:     ReadTimeout,
			WriteTimeout:    WriteTimeout,
			IdleTimeout:     IdleTimeout,
			ShutdownTimeout: ShutdownContextTimeout,
			MaxUploadSize:   MaxUploadSize,
			StagingDir:      StagingDirectory,
			RateLimit:       RATE_LIMIT_PER_SECOND,
			RateBurst:       BURST_RATE_LIMIT_PER_SECOND,
			RateLimitOn:     true,
		},
		LLM: LLMConfig{
			Provider:    LLMProviderOpenAI,
			Model:       OpenAIModelName,
			BaseURL:     OpenAIBaseURL,
			Temperature: ModelTemperature,
			Timeout:     LLMTimeout,
		},
		Delivery: DeliveryConfig{
			Port:     SMTPPort,
			Reviewer: ReviewerAddress,
			Subject:  ReviewSubject,
			Body:     ReviewBody,
			Timeout:  SMTPSendTimeout,
		},
		Redis: RedisConfig{
			Enabled: true,
			Addr:    RedisAddr,
			DB:      RedisRunStore,
			TTL:     RedisRunStoreTTL,
		},
	}
}

// Load layers defaults, an optional TOML file and environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if cfg.Delivery.From == "" {
		cfg.Delivery.From = cfg.Delivery.Username
	}
	if cfg.LLM.Provider == LLMProviderGemini && cfg.LLM.Model == OpenAIModelName {
		cfg.LLM.Model = GeminiModelName
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.ListenAddr, "RFQ_LISTEN_ADDR")
	setString(&cfg.LLM.Provider, "RFQ_LLM_PROVIDER")
	setString(&cfg.LLM.Model, "RFQ_LLM_MODEL")
	switch cfg.LLM.Provider {
	case LLMProviderGemini:
		setString(&cfg.LLM.APIKey, "GEMINI_API_KEY")
	default:
		setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	}
	setString(&cfg.Delivery.Host, "SMTP_HOST")
	setString(&cfg.Delivery.Username, "SMTP_USERNAME")
	setString(&cfg.Delivery.Password, "SMTP_PASSWORD")
	if port, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		cfg.Delivery.Port = port
	}
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// Validate reports settings the pipeline cannot run without.
func (c *Config) Validate() error {
	var errs []error
	switch c.LLM.Provider {
	case LLMProviderOpenAI, LLMProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm.api_key is required"))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("llm.timeout must be positive"))
	}
	if !c.Delivery.DryRun {
		if c.Delivery.Host == "" {
			errs = append(errs, errors.New("delivery.smtp_host is required unless delivery.dry_run is set"))
		}
		if c.Delivery.From == "" {
			errs = append(errs, errors.New("delivery.from or delivery.smtp_username is required"))
		}
	}
	if c.Delivery.Reviewer == "" {
		errs = append(errs, errors.New("delivery.reviewer is required"))
	}
	return errors.Join(errs...)
}
