package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hengadev/errsx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/keyswap"
	"github.com/zoobzio/keyswap/bson"
	"github.com/zoobzio/keyswap/json"
	"github.com/zoobzio/keyswap/msgpack"
	kyaml "github.com/zoobzio/keyswap/yaml"
)

// envPrefix namespaces the environment variables read by the CLI.
const envPrefix = "KEYSWAP_"

// Config holds CLI settings. Values are layered: file, then environment,
// then flags.
type Config struct {
	Keys    []string `toml:"keys" yaml:"keys"`
	Method  string   `toml:"method" yaml:"method"`
	Prefix  string   `toml:"prefix" yaml:"prefix"`
	Padding int      `toml:"padding" yaml:"padding"`
	Format  string   `toml:"format" yaml:"format"`
	Input   string   `toml:"input" yaml:"input"`
	Output  string   `toml:"output" yaml:"output"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Method:  string(keyswap.MethodAlphabetic),
		Padding: keyswap.DefaultPaddingLength,
		Format:  "json",
	}
}

// LoadConfig reads a TOML or YAML config file over the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
	return cfg, nil
}

// envLookup returns a lookup that prefers the process environment and falls
// back to the values in envFile, if one is given.
func envLookup(envFile string) (func(string) (string, bool), error) {
	if envFile == "" {
		return os.LookupEnv, nil
	}
	vals, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vals[key]
		return v, ok
	}, nil
}

// ApplyEnv overlays KEYSWAP_* variables onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "KEYS"); ok {
		c.Keys = splitKeys(v)
	}
	if v, ok := lookup(envPrefix + "METHOD"); ok {
		c.Method = v
	}
	if v, ok := lookup(envPrefix + "PREFIX"); ok {
		c.Prefix = v
	}
	if v, ok := lookup(envPrefix + "FORMAT"); ok {
		c.Format = v
	}
	if v, ok := lookup(envPrefix + "PADDING"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPADDING: %w", envPrefix, err)
		}
		c.Padding = n
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	errs := c.check()
	return errs.AsError()
}

// ValidateFor is Validate plus the constraints of one command. Detokenizing
// needs a method whose dictionary can be rebuilt from the keys alone.
func (c *Config) ValidateFor(command string) error {
	errs := c.check()
	method := keyswap.Method(c.Method)
	if command == "detokenize" && keyswap.IsValidMethod(method) && !method.Deterministic() {
		errs.Set("method", fmt.Sprintf("%s tokens change on every build and cannot be detokenized", c.Method))
	}
	return errs.AsError()
}

func (c *Config) check() errsx.Map {
	var errs errsx.Map
	if len(c.Keys) == 0 {
		errs.Set("keys", "at least one key is required")
	}
	switch {
	case !keyswap.IsValidMethod(keyswap.Method(c.Method)):
		errs.Set("method", fmt.Sprintf("unknown method %q", c.Method))
	case keyswap.Method(c.Method) == keyswap.MethodCustom:
		errs.Set("method", "custom requires a generator and is only available from Go")
	}
	if c.Padding < 0 {
		errs.Set("padding", fmt.Sprintf("must not be negative, got %d", c.Padding))
	}
	if _, ok := codecs[c.Format]; !ok {
		errs.Set("format", fmt.Sprintf("unknown format %q", c.Format))
	}
	for _, k := range c.Keys {
		if !keyswap.IsSafeKey(k) {
			errs.Set("keys", fmt.Sprintf("unsafe key %q", k))
			break
		}
	}
	return errs
}

// Options converts c to dictionary options.
func (c *Config) Options() []keyswap.Option {
	return []keyswap.Option{
		keyswap.WithMethod(keyswap.Method(c.Method)),
		keyswap.WithPadding(c.Padding),
		keyswap.WithPrefix(c.Prefix),
	}
}

// Codec returns the codec for c.Format.
func (c *Config) Codec() (keyswap.Codec, error) {
	newCodec, ok := codecs[c.Format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", c.Format)
	}
	return newCodec(), nil
}

var codecs = map[string]func() keyswap.Codec{
	"json":    json.New,
	"yaml":    kyaml.New,
	"msgpack": msgpack.New,
	"bson":    bson.New,
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
