package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// TestConfigValidate_AppliesDefaults verifies that Validate fills the network
// name, listen addresses and timeouts when they are not explicitly set.
func TestConfigValidate_AppliesDefaults(t *testing.T) {
	cfg := &Config{
		RPCAddr: "https://rpc.example",
		APIKey:  "key",
		Network: Network{ChainID: "43114"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if cfg.Network != Avalanche {
		t.Fatalf("expected Avalanche network, got %#v", cfg.Network)
	}
	if cfg.ListenAddr != DefaultListen {
		t.Fatalf("unexpected ListenAddr: %s", cfg.ListenAddr)
	}
	if cfg.HealthAddr != DefaultHealth {
		t.Fatalf("unexpected HealthAddr: %s", cfg.HealthAddr)
	}
	if cfg.Timeouts.Invoke != 2*time.Minute {
		t.Fatalf("unexpected Invoke timeout: %v", cfg.Timeouts.Invoke)
	}
}

// TestConfigValidate_UnknownChainGetsName verifies that custom chains are
// accepted and receive a synthetic name.
func TestConfigValidate_UnknownChainGetsName(t *testing.T) {
	cfg := &Config{RPCAddr: "http://localhost:8545", APIKey: "k", Network: Network{ChainID: "1337"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if cfg.Network.Name != "chain-1337" {
		t.Fatalf("unexpected network name: %s", cfg.Network.Name)
	}
}

// TestConfigValidate_ReportsAllMissing verifies that every absent required
// setting is named in the error.
func TestConfigValidate_ReportsAllMissing(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "nothing set",
			cfg:  Config{},
			want: []string{EnvAPIKey, EnvRPCURL, EnvChainID},
		},
		{
			name: "only api key missing",
			cfg:  Config{RPCAddr: "http://x", Network: Fuji},
			want: []string{EnvAPIKey},
		},
		{
			name: "blank values count as missing",
			cfg:  Config{APIKey: "  ", RPCAddr: "http://x", Network: Network{ChainID: " "}},
			want: []string{EnvAPIKey, EnvChainID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var missing *MissingError
			if !errors.As(err, &missing) {
				t.Fatalf("expected *MissingError, got %v", err)
			}
			if !reflect.DeepEqual(missing.Keys, tt.want) {
				t.Fatalf("missing keys = %v, want %v", missing.Keys, tt.want)
			}
		})
	}
}

// TestConfigValidate_RejectsBadChainID verifies that non-numeric chain IDs
// are rejected.
func TestConfigValidate_RejectsBadChainID(t *testing.T) {
	for _, id := range []string{"avalanche", "-5", "0"} {
		cfg := &Config{APIKey: "k", RPCAddr: "http://x", Network: Network{ChainID: id}}
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for chain id %q", id)
		}
	}
}

// TestTimeoutsWithDefaults verifies that WithDefaults preserves explicitly set
// timeout values and fills in defaults for zero values.
func TestTimeoutsWithDefaults(t *testing.T) {
	in := Timeouts{
		Dial:        time.Second,
		ChainSubmit: 42 * time.Second,
	}

	out := in.WithDefaults()

	// Provided values should be kept.
	if out.Dial != time.Second {
		t.Fatalf("Dial overwritten: got %v", out.Dial)
	}
	if out.ChainSubmit != 42*time.Second {
		t.Fatalf("ChainSubmit overwritten: got %v", out.ChainSubmit)
	}

	// Zero values filled with defaults.
	if out.ChainRead != 12*time.Second {
		t.Fatalf("ChainRead default mismatch: %v", out.ChainRead)
	}
	if out.ReceiptWait != 90*time.Second {
		t.Fatalf("ReceiptWait default mismatch: %v", out.ReceiptWait)
	}
	if out.Invoke != 2*time.Minute {
		t.Fatalf("Invoke default mismatch: %v", out.Invoke)
	}
}

func TestNetworkChainIDBig(t *testing.T) {
	id, err := Avalanche.ChainIDBig()
	if err != nil {
		t.Fatalf("ChainIDBig: %v", err)
	}
	if id.Int64() != 43114 {
		t.Fatalf("unexpected chain id %s", id)
	}
}
