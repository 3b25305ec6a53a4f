package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BNB Smart Chain mainnet deployments.
const (
	DefaultChainID       = uint64(56)
	DefaultSwapper       = "0x342309bEcaD50D2de2Ad2C88d4E9B6392c7AbEBB"
	DefaultQuoter        = "0xB048Bbc1Ee6b733FFfCFb9e9CeF7375518e25997"
	DefaultWrappedNative = "0xbb4cdb9cbd36b01bd1cbaebf2de08d9173bc095c"
)

// Config holds the settings shared by every command.
type Config struct {
	RPCURL        string
	ChainID       uint64
	PrivateKey    string
	Swapper       string
	Quoter        string
	WrappedNative string
	MinBuy        decimal.Decimal
	MaxBuy        decimal.Decimal
	Journal       string
	PGDSN         string
	Tokens        []string
	Amounts       []Pair
	LogLevel      string
}

// ScanConfig holds settings for the swap event scanner.
type ScanConfig struct {
	Config
	FromBlock         uint64
	ToBlock           uint64
	Addresses         []string
	BatchSize         uint64
	Out               string
	Errors            string
	Checkpoint        string
	CheckpointEnabled bool
	StateName         string
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Pair is one key=value entry, kept in input order.
type Pair struct {
	Key   string
	Value string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return Config{}, err
	}
	return loadBase(v)
}

// LoadScan loads the shared settings plus the scanner settings.
func LoadScan(cfgFile string, flags *pflag.FlagSet) (ScanConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return ScanConfig{}, err
	}
	base, err := loadBase(v)
	if err != nil {
		return ScanConfig{}, err
	}

	addresses := getStringSlice(v, "address")
	if len(addresses) == 0 && base.Swapper != "" {
		addresses = []string{base.Swapper}
	}

	return ScanConfig{
		Config:            base,
		FromBlock:         v.GetUint64("from"),
		ToBlock:           v.GetUint64("to"),
		Addresses:         addresses,
		BatchSize:         v.GetUint64("batch-size"),
		Out:               v.GetString("out"),
		Errors:            v.GetString("errors"),
		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		StateName:         v.GetString("state-name"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
	}, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("SWAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain-id", DefaultChainID)
	v.SetDefault("swapper", DefaultSwapper)
	v.SetDefault("quoter", DefaultQuoter)
	v.SetDefault("wrapped-native", DefaultWrappedNative)
	v.SetDefault("min-buy", "0.002")
	v.SetDefault("max-buy", "2")
	v.SetDefault("log-level", "info")
	v.SetDefault("batch-size", uint64(2000))
	v.SetDefault("out", "./data/swap_legs.jsonl")
	v.SetDefault("errors", "./data/decode_errors.jsonl")
	v.SetDefault("checkpoint", "./data/checkpoint.json")
	v.SetDefault("checkpoint-enabled", true)
	v.SetDefault("state-name", "swap_legs")
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func loadBase(v *viper.Viper) (Config, error) {
	minBuy, err := getDecimal(v, "min-buy")
	if err != nil {
		return Config{}, err
	}
	maxBuy, err := getDecimal(v, "max-buy")
	if err != nil {
		return Config{}, err
	}
	if minBuy.GreaterThan(maxBuy) {
		return Config{}, fmt.Errorf("min-buy %s exceeds max-buy %s", minBuy, maxBuy)
	}

	amounts, err := ParsePairs(getStringSlice(v, "amount"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		RPCURL:        v.GetString("rpc"),
		ChainID:       v.GetUint64("chain-id"),
		PrivateKey:    v.GetString("private-key"),
		Swapper:       v.GetString("swapper"),
		Quoter:        v.GetString("quoter"),
		WrappedNative: v.GetString("wrapped-native"),
		MinBuy:        minBuy,
		MaxBuy:        maxBuy,
		Journal:       v.GetString("journal"),
		PGDSN:         v.GetString("pg-dsn"),
		Tokens:        getStringSlice(v, "token"),
		Amounts:       amounts,
		LogLevel:      v.GetString("log-level"),
	}, nil
}

// ParsePairs parses key=value entries. Keys must be unique.
func ParsePairs(items []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected key=value, got %q", item)
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			return nil, fmt.Errorf("empty key in %q", item)
		}
		norm := strings.ToLower(key)
		if _, ok := seen[norm]; ok {
			return nil, fmt.Errorf("duplicate key %s", key)
		}
		seen[norm] = struct{}{}
		pairs = append(pairs, Pair{Key: key, Value: strings.TrimSpace(parts[1])})
	}
	return pairs, nil
}

func getDecimal(v *viper.Viper, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
