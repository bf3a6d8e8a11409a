package harness

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dstring-go/pkg/dstring"
	"dstring-go/pkg/transform"

	"github.com/spf13/viper"
)

// Config drives the dstring command and the API server.
type Config struct {
	DefaultSize   int    `mapstructure:"default_size"` // capacity of strings the tools create
	Allocator     string `mapstructure:"allocator"`    // heap or mmap
	MaxAlloc      int    `mapstructure:"max_alloc"`    // byte budget across live strings, 0 for none
	Delimiter     string `mapstructure:"delimiter"`    // record terminator, escapes allowed
	Codec         string `mapstructure:"codec"`        // input codec, see transform.Names
	LogDB         string `mapstructure:"log_db"`       // SQLite event store, empty to log to the console only
	APIListenAddr string `mapstructure:"api_listen_address"`
	ConfigFile    string `mapstructure:"config_file"`
}

// ErrBadConfig wraps every validation failure.
var ErrBadConfig = errors.New("invalid configuration")

func DefaultConfig() *Config {
	return &Config{
		DefaultSize:   dstring.DefaultSize,
		Allocator:     "heap",
		Delimiter:     `\n`,
		Codec:         "none",
		LogDB:         "dstring.db",
		APIListenAddr: ":7780",
		ConfigFile:    "dstring",
	}
}

// LoadConfig reads the YAML file named by path, or dstring.yaml found in
// the working directory, /etc/dstring-go/ or $HOME/.dstring-go, then
// applies DSTR_* environment variables on top. A missing file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/dstring-go/")
		v.AddConfigPath("$HOME/.dstring-go")
	}
	v.SetEnvPrefix("DSTR")
	v.AutomaticEnv()

	// AutomaticEnv only reaches keys viper already knows about
	v.SetDefault("default_size", cfg.DefaultSize)
	v.SetDefault("allocator", cfg.Allocator)
	v.SetDefault("max_alloc", cfg.MaxAlloc)
	v.SetDefault("delimiter", cfg.Delimiter)
	v.SetDefault("codec", cfg.Codec)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("api_listen_address", cfg.APIListenAddr)
	v.SetDefault("config_file", cfg.ConfigFile)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if f := v.ConfigFileUsed(); f != "" {
		cfg.ConfigFile = f
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that the tools would otherwise trip over
// later.
func (c *Config) Validate() error {
	if c.DefaultSize <= 0 {
		return fmt.Errorf("%w: default_size must be positive, got %d", ErrBadConfig, c.DefaultSize)
	}
	if c.MaxAlloc < 0 {
		return fmt.Errorf("%w: max_alloc must not be negative", ErrBadConfig)
	}
	if _, err := c.DelimiterByte(); err != nil {
		return err
	}
	if _, err := transform.Lookup(c.Codec); err != nil {
		return fmt.Errorf("%w: %w", ErrBadConfig, err)
	}
	switch c.Allocator {
	case "heap", "mmap":
	default:
		return fmt.Errorf("%w: allocator must be heap or mmap, got %q", ErrBadConfig, c.Allocator)
	}
	return nil
}

// DelimiterByte decodes Delimiter: a single byte, or one Go escape such as
// \n, \t or \x1e. NUL is refused since it cannot be stored.
func (c *Config) DelimiterByte() (byte, error) {
	return ParseDelimiter(c.Delimiter)
}

// ParseDelimiter is DelimiterByte for a bare value.
func ParseDelimiter(d string) (byte, error) {
	s := d
	if len(s) != 1 {
		u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
		if err != nil || len(u) != 1 {
			return 0, fmt.Errorf("%w: delimiter %q is not a single byte", ErrBadConfig, d)
		}
		s = u
	}
	if s[0] == 0 {
		return 0, fmt.Errorf("%w: delimiter may not be NUL", ErrBadConfig)
	}
	return s[0], nil
}

// NewAllocator builds the allocator the configuration asks for, wrapped in
// a budget when MaxAlloc is set.
func (c *Config) NewAllocator() (dstring.Allocator, error) {
	var a dstring.Allocator
	switch c.Allocator {
	case "", "heap":
		a = dstring.HeapAllocator{}
	case "mmap":
		m, err := mmapAllocator()
		if err != nil {
			return nil, err
		}
		a = m
	default:
		return nil, fmt.Errorf("%w: unknown allocator %q", ErrBadConfig, c.Allocator)
	}
	if c.MaxAlloc > 0 {
		return dstring.Limit(a, c.MaxAlloc), nil
	}
	return a, nil
}
