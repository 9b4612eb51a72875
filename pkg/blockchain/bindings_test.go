package blockchain

import "testing"

func TestBindingABIs(t *testing.T) {
	for _, m := range []string{"balanceOf", "decimals", "symbol", "allowance", "transfer", "approve"} {
		if _, ok := erc20ABI.Methods[m]; !ok {
			t.Fatalf("ERC20 ABI missing %s", m)
		}
	}
	for _, m := range []string{"WETH", "getAmountsOut", "swapExactETHForTokens", "swapExactTokensForETH", "swapExactTokensForTokens"} {
		if _, ok := routerABI.Methods[m]; !ok {
			t.Fatalf("router ABI missing %s", m)
		}
	}
	if !routerABI.Methods["swapExactETHForTokens"].IsPayable() {
		t.Fatal("swapExactETHForTokens must be payable")
	}
}
