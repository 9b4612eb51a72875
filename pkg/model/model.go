package model

import (
	"encoding/json"
	"strings"
)

// ActionRequest is one inbound call: a credential, the exact action name and
// optional arguments.
type ActionRequest struct {
	Credential string         `json:"credential"`
	ActionName string         `json:"actionName"`
	Arguments  map[string]any `json:"arguments,omitempty"`
}

// UnmarshalJSON accepts both the canonical field names and the legacy
// privateKey/action/args names. Canonical names win when both are present.
func (r *ActionRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Credential string         `json:"credential"`
		PrivateKey string         `json:"privateKey"`
		ActionName string         `json:"actionName"`
		Action     string         `json:"action"`
		Arguments  map[string]any `json:"arguments"`
		Args       map[string]any `json:"args"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Credential = firstNonEmpty(raw.Credential, raw.PrivateKey)
	r.ActionName = firstNonEmpty(raw.ActionName, raw.Action)
	r.Arguments = raw.Arguments
	if r.Arguments == nil {
		r.Arguments = raw.Args
	}
	return nil
}

// String never prints the credential.
func (r ActionRequest) String() string {
	return "ActionRequest{action=" + r.ActionName + "}"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ActionResponse is the envelope returned to callers. Exactly one of Data
// (Success true) or Error (Success false) is meaningful.
type ActionResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Succeeded builds a success envelope.
func Succeeded(data any) ActionResponse {
	return ActionResponse{Success: true, Data: data}
}

// Failed builds a failure envelope.
func Failed(msg string) ActionResponse {
	return ActionResponse{Success: false, Error: msg}
}

// ToolsRequest asks for the action catalogue of a credential's client.
type ToolsRequest struct {
	Credential string `json:"credential"`
	PrivateKey string `json:"privateKey,omitempty"`
}

// Key returns the credential under either field name.
func (r ToolsRequest) Key() string {
	return firstNonEmpty(r.Credential, r.PrivateKey)
}

// ToolInfo describes one action exposed by a toolkit client.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters,omitempty"`
}

// ParameterInfo describes one named argument of an action.
type ParameterInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// Heartbeat is the payload of the HTTP heartbeat endpoint.
type Heartbeat struct {
	Status  string `json:"status"`
	ChainID string `json:"chainId"`
	Version string `json:"version"`
}
