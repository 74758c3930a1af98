package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/TamannaDash/queuectl/store"
)

// Key names the closed set of configuration settings queuectl
// recognizes. Any other key is rejected with ErrUnknownConfigKey.
type Key string

const (
	MaxRetries          Key = "max-retries"
	BackoffBase         Key = "backoff-base"
	PollIntervalSeconds Key = "poll-interval-seconds"
	StuckTimeoutSeconds Key = "stuck-timeout-seconds"
)

var (
	// ErrUnknownConfigKey is returned by Get/Set for any key outside
	// the closed set above.
	ErrUnknownConfigKey = errors.New("unknown config key")

	// ErrInvalidConfigValue is returned by Set when value fails the
	// per-key validation rule.
	ErrInvalidConfigValue = errors.New("invalid config value")
)

var defaults = map[Key]string{
	MaxRetries:          "3",
	BackoffBase:         "2",
	PollIntervalSeconds: "1.0",
	StuckTimeoutSeconds: "3600",
}

var order = []Key{MaxRetries, BackoffBase, PollIntervalSeconds, StuckTimeoutSeconds}

func validate(key Key, value string) error {
	switch key {
	case MaxRetries:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: max-retries must be an integer >= 0", ErrInvalidConfigValue)
		}
	case BackoffBase:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: backoff-base must be an integer >= 1", ErrInvalidConfigValue)
		}
	case PollIntervalSeconds:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: poll-interval-seconds must be > 0", ErrInvalidConfigValue)
		}
	case StuckTimeoutSeconds:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: stuck-timeout-seconds must be an integer >= 0", ErrInvalidConfigValue)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	return nil
}

// Config is a typed get/set layer over store's kv table.
type Config struct {
	store *store.Store
}

// New wraps s for typed config access.
func New(s *store.Store) *Config {
	return &Config{store: s}
}

// Get returns the raw stored value for key, falling back to its
// documented default if unset. It fails with ErrUnknownConfigKey for
// any key outside the closed set.
func (c *Config) Get(ctx context.Context, key Key) (string, error) {
	if _, ok := defaults[key]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}
	value, ok, err := c.store.ConfigGet(ctx, string(key))
	if err != nil {
		return "", err
	}
	if !ok {
		return defaults[key], nil
	}
	return value, nil
}

// GetAll returns every key with its effective (stored-or-default)
// value, as a map keyed by Key; Keys gives the documented order.
func (c *Config) GetAll(ctx context.Context) (map[Key]string, error) {
	ret := make(map[Key]string, len(order))
	for _, key := range order {
		value, err := c.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		ret[key] = value
	}
	return ret, nil
}

// Keys returns the closed set of recognized keys, in documented order.
func Keys() []Key {
	return append([]Key(nil), order...)
}

// Set validates value against key's rule and persists it. It fails
// with ErrUnknownConfigKey or ErrInvalidConfigValue without writing
// anything.
func (c *Config) Set(ctx context.Context, key Key, value string) error {
	if err := validate(key, value); err != nil {
		return err
	}
	return c.store.ConfigSet(ctx, string(key), value)
}

// MaxRetriesValue returns the effective max-retries as an integer.
func (c *Config) MaxRetriesValue(ctx context.Context) (uint32, error) {
	v, err := c.Get(ctx, MaxRetries)
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseUint(v, 10, 32)
	return uint32(n), nil
}

// BackoffBaseValue returns the effective backoff-base as an integer.
func (c *Config) BackoffBaseValue(ctx context.Context) (uint32, error) {
	v, err := c.Get(ctx, BackoffBase)
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseUint(v, 10, 32)
	return uint32(n), nil
}

// PollIntervalSecondsValue returns the effective poll interval in
// seconds as a float.
func (c *Config) PollIntervalSecondsValue(ctx context.Context) (float64, error) {
	v, err := c.Get(ctx, PollIntervalSeconds)
	if err != nil {
		return 0, err
	}
	f, _ := strconv.ParseFloat(v, 64)
	return f, nil
}

// StuckTimeoutSecondsValue returns the effective stuck timeout in
// seconds as an integer.
func (c *Config) StuckTimeoutSecondsValue(ctx context.Context) (uint32, error) {
	v, err := c.Get(ctx, StuckTimeoutSeconds)
	if err != nil {
		return 0, err
	}
	n, _ := strconv.ParseUint(v, 10, 32)
	return uint32(n), nil
}
