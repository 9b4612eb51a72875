// Package model defines the data structures exchanged between the
// presentation layers, the HTTP boundary and the action gateway: action
// requests and response envelopes, tool descriptions and the token book.
//
// ActionRequest accepts both the canonical JSON field names
// (credential, actionName, arguments) and the legacy ones
// (privateKey, action, args). Its String method never includes the
// credential.
//
// DefaultTokens maps chain IDs to well-known assets; Avalanche C-Chain
// carries AVAX, WAVAX, USDC and USDT.
package model
