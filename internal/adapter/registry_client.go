// Package adapter provides the I/O ports of mutapath: the registry transport,
// snapshot files, the guide store and the knowledge-base loader.
package adapter

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"lukechampine.com/blake3"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

// SchemaMethod is the JSON-RPC method that returns the reflected type
// registry of the remote process.
const SchemaMethod = "registry/schema"

// RegistrySource supplies the schema registry snapshot. The source never
// executes mutations; it only reads reflection data.
type RegistrySource interface {
	// FetchSnapshot retrieves the registry, optionally filtered to the given
	// type names.
	FetchSnapshot(ctx context.Context, types []m.TypeName) (*m.Snapshot, error)
}

type registryClient struct {
	url    string
	client *http.Client
}

// NewRegistryClient creates a JSON-RPC 2.0 client for the remote reflection
// endpoint.
func NewRegistryClient(url string, timeout time.Duration) RegistrySource {
	return &registryClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type schemaParams struct {
	Types []m.TypeName `json:"types,omitempty"`
}

// FetchSnapshot implements RegistrySource.
func (c *registryClient) FetchSnapshot(ctx context.Context, types []m.TypeName) (*m.Snapshot, error) {
	request := rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  SchemaMethod,
	}

	if len(types) > 0 {
		request.Params = schemaParams{Types: types}
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal schema request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build schema request: %w", err)
	}

	httpRequest.Header.Set("Content-Type", "application/json")

	slog.Debug("fetching registry snapshot", "url", c.url, "id", request.ID)

	httpResponse, err := c.client.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("call registry endpoint: %w", err)
	}
	defer func() { _ = httpResponse.Body.Close() }()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry endpoint returned status %d", httpResponse.StatusCode)
	}

	var response rpcResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode schema response: %w", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("registry error %d: %s", response.Error.Code, response.Error.Message)
	}

	var snapshot m.Snapshot
	if err := json.Unmarshal(response.Result, &snapshot); err != nil {
		return nil, fmt.Errorf("decode registry snapshot: %w", err)
	}

	slog.Debug("fetched registry snapshot", "types", len(snapshot.Types))

	return &snapshot, nil
}

// SnapshotDigest computes the BLAKE3 digest of a snapshot's canonical JSON
// form. It labels guide indexes and lets consumers detect unchanged
// registries.
func SnapshotDigest(snapshot *m.Snapshot) (string, error) {
	canonical, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	sum := blake3.Sum256(canonical)

	return hex.EncodeToString(sum[:]), nil
}
