package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArguments(t *testing.T) {
	got, err := parseArguments(
		[]string{"amount=0.5", "tokenAddress=eth", "memo=a=b"},
		`{"amount":"1","approveMax":true}`,
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"amount":       "0.5",
		"tokenAddress": "eth",
		"memo":         "a=b",
		"approveMax":   true,
	}, got)

	got, err = parseArguments(nil, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseArguments([]string{"amount"}, "")
	assert.Error(t, err)
	_, err = parseArguments(nil, `[1,2]`)
	assert.Error(t, err)
	_, err = parseArguments([]string{"amount=1"}, "null")
	assert.Error(t, err)
	_, err = parseArguments(nil, " null ")
	assert.Error(t, err)
}
