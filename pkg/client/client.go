// Package client talks to a running console server over HTTP and to its
// gRPC health endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shamank/smartwallet-console/pkg/model"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// DefaultServer is the address used when none is given.
const DefaultServer = "http://localhost:8080"

// Client is a thin HTTP client for the console endpoints.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for base (e.g. http://localhost:8080). A nil hc uses
// a client with a timeout long enough for receipt waits.
func New(base string, hc *http.Client) *Client {
	if base == "" {
		base = DefaultServer
	}
	if hc == nil {
		hc = &http.Client{Timeout: 3 * time.Minute}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// Execute posts req to /execute. Failure envelopes are returned as values
// together with the status code; err is set only when no envelope could be
// read.
func (c *Client) Execute(ctx context.Context, req model.ActionRequest) (model.ActionResponse, int, error) {
	var resp model.ActionResponse
	status, err := c.post(ctx, "/execute", req, &resp)
	return resp, status, err
}

// Tools lists the actions available for credential.
func (c *Client) Tools(ctx context.Context, credential string) ([]model.ToolInfo, error) {
	var resp struct {
		Success bool             `json:"success"`
		Data    []model.ToolInfo `json:"data"`
		Error   string           `json:"error"`
	}
	if _, err := c.post(ctx, "/tools", model.ToolsRequest{Credential: credential}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("list tools failed: %s", resp.Error)
	}
	return resp.Data, nil
}

// Heartbeat performs a GET on /heartbeat and decodes the payload.
func (c *Client) Heartbeat(ctx context.Context) (model.Heartbeat, error) {
	var hb model.Heartbeat
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/heartbeat", nil)
	if err != nil {
		return hb, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return hb, err
	}
	defer closeBody(resp.Body)
	if err := json.NewDecoder(resp.Body).Decode(&hb); err != nil {
		return hb, fmt.Errorf("failed to decode heartbeat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return hb, fmt.Errorf("heartbeat failed with: %v", resp.StatusCode)
	}
	return hb, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer closeBody(resp.Body)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode %s response (status %d): %w", path, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

func closeBody(b io.ReadCloser) {
	if err := b.Close(); err != nil {
		zap.L().Error("failed to close response body", zap.Error(err))
	}
}

// GRPCHealth performs a standard gRPC health check against addr
// (host:port, plaintext). An empty service checks the overall status.
func GRPCHealth(ctx context.Context, addr, service string, opts ...grpc.DialOption) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	defer conn.Close()
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, fmt.Errorf("grpc heartbeat failed: %w", err)
	}
	return resp.GetStatus(), nil
}
