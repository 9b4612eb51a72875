package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Source yields a validated Config. Implementations are consulted every time
// a toolkit client is constructed, so operators can fix missing settings
// without restarting the process.
type Source interface {
	Load() (*Config, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() (*Config, error)

// Load calls f.
func (f SourceFunc) Load() (*Config, error) { return f() }

// Static returns a Source that validates and hands out copies of cfg.
func Static(cfg Config) Source {
	return SourceFunc(func() (*Config, error) {
		c := cfg
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return &c, nil
	})
}

// DotEnvFiles are loaded by NewEnvSource, earlier files taking precedence.
var DotEnvFiles = []string{".env.local", ".env"}

// Viper keys. Nested timeout keys map to TIMEOUT_* variables.
const (
	KeyAPIKey      = "api_key"
	KeyRPCURL      = "rpc_url"
	KeyChainID     = "chain_id"
	KeyNetworkName = "network_name"
	KeySwapRouter  = "swap_router"
	KeyListenAddr  = "listen_addr"
	KeyHealthAddr  = "health_addr"
	KeyDebug       = "debug"
	KeyLogLevel    = "log.level"
	KeyLogEnv      = "log.env"
)

var timeoutKeys = []string{"dial", "chain_read", "chain_submit", "receipt_wait", "invoke"}

// EnvSource reads configuration through viper from the process environment
// (and any config file or flags bound to the same viper instance).
type EnvSource struct {
	v *viper.Viper
}

// NewEnvSource loads dot-env files that exist, then binds the environment
// variable names onto v. Variables already set in the environment are never
// overwritten by dot-env files.
func NewEnvSource(v *viper.Viper, dotEnvFiles ...string) *EnvSource {
	if v == nil {
		v = viper.New()
	}
	for _, f := range dotEnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			zap.L().Warn("failed to load env file", zap.String("file", f), zap.Error(err))
		}
	}
	BindEnv(v)
	return &EnvSource{v: v}
}

// BindEnv registers environment names and defaults on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(KeyAPIKey, EnvAPIKey, EnvAPIKeyAlt)
	_ = v.BindEnv(KeyRPCURL, EnvRPCURL)
	_ = v.BindEnv(KeyChainID, EnvChainID)
	_ = v.BindEnv(KeyNetworkName, "NETWORK_NAME")
	_ = v.BindEnv(KeySwapRouter, EnvSwapRouter)
	_ = v.BindEnv(KeyListenAddr, EnvListenAddr)
	_ = v.BindEnv(KeyHealthAddr, EnvHealthAddr)
	_ = v.BindEnv(KeyDebug, EnvDebug)
	_ = v.BindEnv(KeyLogLevel, "LOG_LEVEL")
	_ = v.BindEnv(KeyLogEnv, "LOG_ENV")
	for _, k := range timeoutKeys {
		_ = v.BindEnv("timeouts."+k, "TIMEOUT_"+strings.ToUpper(k))
	}

	v.SetDefault(KeyListenAddr, DefaultListen)
	v.SetDefault(KeyHealthAddr, DefaultHealth)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogEnv, "development")
}

// Viper exposes the underlying viper instance.
func (s *EnvSource) Viper() *viper.Viper { return s.v }

// Raw returns the current settings without requiring the chain settings.
// Server defaults and timeout defaults are applied.
func (s *EnvSource) Raw() *Config {
	v := s.v
	cfg := &Config{
		Network: Network{
			ChainID: strings.TrimSpace(v.GetString(KeyChainID)),
			Name:    v.GetString(KeyNetworkName),
		},
		RPCAddr:    strings.TrimSpace(v.GetString(KeyRPCURL)),
		APIKey:     strings.TrimSpace(v.GetString(KeyAPIKey)),
		SwapRouter: strings.TrimSpace(v.GetString(KeySwapRouter)),
		ListenAddr: v.GetString(KeyListenAddr),
		HealthAddr: v.GetString(KeyHealthAddr),
		Debug:      v.GetBool(KeyDebug),
		Timeouts: Timeouts{
			Dial:        v.GetDuration("timeouts.dial"),
			ChainRead:   v.GetDuration("timeouts.chain_read"),
			ChainSubmit: v.GetDuration("timeouts.chain_submit"),
			ReceiptWait: v.GetDuration("timeouts.receipt_wait"),
			Invoke:      v.GetDuration("timeouts.invoke"),
		}.WithDefaults(),
	}
	cfg.ApplyServerDefaults()
	return cfg
}

// Load returns the current settings and validates them.
func (s *EnvSource) Load() (*Config, error) {
	cfg := s.Raw()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
