package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestInitEvm_Unreachable(t *testing.T) {
	start := time.Now()
	_, err := InitEvm(context.Background(), "http://127.0.0.1:1", "", nil, 2*time.Second)
	if err == nil {
		t.Fatal("expected error dialing")
	}
	if time.Since(start) > 6*time.Second {
		t.Fatalf("InitEvm took too long")
	}
}

// chainIDServer answers eth_chainId with chainID and records the API key header.
func chainIDServer(t *testing.T, chainID string, gotKey *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotKey = r.Header.Get(APIKeyHeader)
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Method != "eth_chainId" {
			t.Errorf("unexpected method %s", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  chainID,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInitEvm_SendsAPIKeyAndVerifiesChain(t *testing.T) {
	var gotKey string
	srv := chainIDServer(t, "0xa86a", &gotKey)

	evm, err := InitEvm(context.Background(), srv.URL, "secret", big.NewInt(43114), time.Second)
	if err != nil {
		t.Fatalf("InitEvm: %v", err)
	}
	defer evm.Close()

	if gotKey != "secret" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if evm.ChainID.Int64() != 43114 {
		t.Fatalf("unexpected chain id %s", evm.ChainID)
	}
}

func TestInitEvm_ChainMismatch(t *testing.T) {
	var gotKey string
	srv := chainIDServer(t, "0x1", &gotKey)

	_, err := InitEvm(context.Background(), srv.URL, "", big.NewInt(43114), time.Second)
	var mismatch *ChainMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ChainMismatchError, got %v", err)
	}
	if mismatch.Got.Int64() != 1 {
		t.Fatalf("unexpected remote chain %s", mismatch.Got)
	}
	if gotKey != "" {
		t.Fatalf("no api key header expected, got %q", gotKey)
	}
}

func TestEVMClient_CloseIsIdempotent(t *testing.T) {
	calls := 0
	evm := &EVMClient{closer: func() { calls++ }}
	evm.Close()
	evm.Close()
	if calls != 1 {
		t.Fatalf("closer called %d times", calls)
	}
	var nilClient *EVMClient
	nilClient.Close()
}
