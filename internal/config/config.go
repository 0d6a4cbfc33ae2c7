// Package config loads namesake settings from defaults, an optional TOML
// file and the environment, in that order of precedence.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/agenthands/namesake/internal/core/ids"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "namesake.toml"

type DataConfig struct {
	Dir           string `toml:"dir" mapstructure:"dir"`
	Catalog       string `toml:"catalog" mapstructure:"catalog"`
	Playerdb      string `toml:"playerdb" mapstructure:"playerdb"`
	CustomAliases string `toml:"custom_aliases" mapstructure:"custom_aliases"`
	Rejections    string `toml:"rejections" mapstructure:"rejections"`
	Pairs         string `toml:"pairs" mapstructure:"pairs"`
	AllNames      string `toml:"all_names" mapstructure:"all_names"`
	SuggestNames  string `toml:"suggest_names" mapstructure:"suggest_names"`
	Suggestions   string `toml:"suggestions" mapstructure:"suggestions"`
	Journal       string `toml:"journal" mapstructure:"journal"`
}

type ClassifyConfig struct {
	ReferenceLanguage string `toml:"reference_language" mapstructure:"reference_language"`
	MinPrefixRunes    int    `toml:"min_prefix_runes" mapstructure:"min_prefix_runes"`
	Translate         bool   `toml:"translate" mapstructure:"translate"`
}

type IDsConfig struct {
	Mode string `toml:"mode" mapstructure:"mode"`
}

type TranslateConfig struct {
	// Provider is "google", "llm" or "none".
	Provider string `toml:"provider" mapstructure:"provider"`
	APIKey   string `toml:"api_key" mapstructure:"api_key"`
	BaseURL  string `toml:"base_url" mapstructure:"base_url"`
	CacheTTL string `toml:"cache_ttl" mapstructure:"cache_ttl"`
}

// TTL parses CacheTTL. An empty or zero value disables the memo.
func (c TranslateConfig) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.CacheTTL)
}

type LLMConfig struct {
	Provider  string `toml:"provider" mapstructure:"provider"`
	Model     string `toml:"model" mapstructure:"model"`
	APIKey    string `toml:"api_key" mapstructure:"api_key"`
	BaseURL   string `toml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `toml:"max_tokens" mapstructure:"max_tokens"`
}

type SuggestConfig struct {
	ChunkSize  int    `toml:"chunk_size" mapstructure:"chunk_size"`
	MaxRetries int    `toml:"max_retries" mapstructure:"max_retries"`
	Prompt     string `toml:"prompt,omitempty" mapstructure:"prompt"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" mapstructure:"uri"`
	User     string `toml:"user" mapstructure:"user"`
	Password string `toml:"password" mapstructure:"password"`
}

type ServerConfig struct {
	Addr string `toml:"addr" mapstructure:"addr"`
}

type LogConfig struct {
	Level string `toml:"level" mapstructure:"level"`
	// Format is "auto", "console" or "json".
	Format string `toml:"format" mapstructure:"format"`
}

type Config struct {
	Data      DataConfig      `toml:"data" mapstructure:"data"`
	Classify  ClassifyConfig  `toml:"classify" mapstructure:"classify"`
	IDs       IDsConfig       `toml:"ids" mapstructure:"ids"`
	Translate TranslateConfig `toml:"translate" mapstructure:"translate"`
	LLM       LLMConfig       `toml:"llm" mapstructure:"llm"`
	Suggest   SuggestConfig   `toml:"suggest" mapstructure:"suggest"`
	Memgraph  MemgraphConfig  `toml:"memgraph" mapstructure:"memgraph"`
	Server    ServerConfig    `toml:"server" mapstructure:"server"`
	Log       LogConfig       `toml:"log" mapstructure:"log"`

	file string
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           ".",
			Catalog:       "player_names.json",
			Playerdb:      "playerdb.json",
			CustomAliases: "custom_aliases.json",
			Rejections:    "rejected_alias_pairs.json",
			Pairs:         "possible_aliases.txt",
			AllNames:      "all_names.txt",
			SuggestNames:  "names.txt",
			Suggestions:   "name_aliases.json",
			Journal:       "journal.db",
		},
		Classify: ClassifyConfig{
			ReferenceLanguage: "en",
			MinPrefixRunes:    3,
			Translate:         true,
		},
		IDs: IDsConfig{Mode: string(ids.ModeSequential)},
		Translate: TranslateConfig{
			Provider: "none",
			CacheTTL: "24h",
		},
		LLM: LLMConfig{
			Provider:  "claude",
			Model:     "claude-3-5-sonnet-latest",
			MaxTokens: 1000,
		},
		Suggest: SuggestConfig{
			ChunkSize:  100,
			MaxRetries: 3,
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "auto"},
	}
}

// envAliases are the unprefixed variable names kept for compatibility with
// existing deployments. NAMESAKE_<SECTION>_<KEY> always takes precedence.
var envAliases = map[string][]string{
	"llm.provider":      {"LLM_PROVIDER"},
	"llm.model":         {"LLM_MODEL"},
	"llm.api_key":       {"LLM_API_KEY"},
	"llm.base_url":      {"LLM_BASE_URL"},
	"memgraph.uri":      {"MEMGRAPH_URI"},
	"memgraph.user":     {"MEMGRAPH_USER"},
	"memgraph.password": {"MEMGRAPH_PASSWORD"},
	"translate.api_key": {"GOOGLE_TRANSLATE_API_KEY"},
	"log.level":         {"LOG_LEVEL"},
}

// Load resolves the configuration. With an empty path, DefaultFile is used
// when present; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	def := Default()
	raw, err := toml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	// keys absent from the marshalled defaults still need to be known for env lookup
	v.SetDefault("suggest.prompt", "")

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", file, err)
		}
		err = v.MergeConfig(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML '%s': %w", file, err)
		}
	}

	v.SetEnvPrefix("NAMESAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		envKey := "NAMESAKE_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, envKey}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.file = file
	return &cfg, nil
}

// File returns the config file that was read, if any.
func (c *Config) File() string {
	return c.file
}

// Path resolves a data file name against the data directory. Absolute names
// are returned unchanged.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Data.Catalog == "" {
		return fmt.Errorf("data.catalog must be set")
	}
	if c.Classify.MinPrefixRunes < 0 {
		return fmt.Errorf("classify.min_prefix_runes must not be negative, got %d", c.Classify.MinPrefixRunes)
	}
	if _, err := ids.ParseMode(c.IDs.Mode); err != nil {
		return fmt.Errorf("ids.mode: %w", err)
	}
	switch strings.ToLower(c.Translate.Provider) {
	case "", "none", "google", "llm":
	default:
		return fmt.Errorf("translate.provider: unsupported provider %q", c.Translate.Provider)
	}
	if _, err := c.Translate.TTL(); err != nil {
		return fmt.Errorf("translate.cache_ttl: %w", err)
	}
	if c.Suggest.ChunkSize <= 0 {
		return fmt.Errorf("suggest.chunk_size must be positive, got %d", c.Suggest.ChunkSize)
	}
	if c.Suggest.MaxRetries <= 0 {
		return fmt.Errorf("suggest.max_retries must be positive, got %d", c.Suggest.MaxRetries)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported format %q", c.Log.Format)
	}
	return nil
}

// WriteDefault writes the default configuration to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file '%s' already exists", path)
	}
	data, err := toml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file '%s': %w", path, err)
	}
	return nil
}
