package gateway

import (
	"errors"
	"testing"
)

func TestFormatSwapResult(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "usdc six decimals",
			in:   "Swap successful!\nTransaction Hash: 0xabc\n(Approximate) Output: 1500000 USDC",
			want: "Swap successful!\nTransaction Hash: 0xabc\n(Approximate) Output: 1.500000 USDC",
		},
		{
			name: "native eighteen decimals",
			in:   "Swap successful!\n(Approximate) Output: 2500000000000000000 AVAX",
			want: "Swap successful!\n(Approximate) Output: 2.500000 AVAX",
		},
		{
			name: "case-insensitive stable symbol",
			in:   "Swap successful!\n(Approximate) Output: 42 usdt.e\nDone.",
			want: "Swap successful!\n(Approximate) Output: 0.000042 usdt.e\nDone.",
		},
		{
			name: "rounds to six places",
			in:   "Swap successful!\n(Approximate) Output: 1234567890123456789 WAVAX",
			want: "Swap successful!\n(Approximate) Output: 1.234568 WAVAX",
		},
		{
			name: "text before marker is replaced",
			in:   "Swap successful!\n  -> (Approximate) Output: 1000000 USDC  ",
			want: "Swap successful!\n(Approximate) Output: 1.000000 USDC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatSwapResult(tt.in)
			if err != nil {
				t.Fatalf("FormatSwapResult error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("FormatSwapResult =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFormatSwapResult_Malformed(t *testing.T) {
	for _, in := range []string{
		"Swap successful!",
		"Swap successful!\n(Approximate) Output:",
		"Swap successful!\n(Approximate) Output: USDC",
		"Swap successful!\n(Approximate) Output: 1.5 USDC",
		"Swap successful!\n(Approximate) Output: lots USDC",
	} {
		got, err := FormatSwapResult(in)
		if !errors.Is(err, ErrMalformedSwapOutput) {
			t.Fatalf("expected ErrMalformedSwapOutput for %q, got %v", in, err)
		}
		if got != in {
			t.Fatalf("malformed input must be returned unchanged, got %q", got)
		}
	}
}

func TestTokenDecimals(t *testing.T) {
	for sym, want := range map[string]int32{"USDC": 6, "usdc": 6, "USDT.e": 6, "USDC.E": 6, "AVAX": 18, "WAVAX": 18, "": 18} {
		if got := TokenDecimals(sym); got != want {
			t.Fatalf("TokenDecimals(%q) = %d, want %d", sym, got, want)
		}
	}
}
