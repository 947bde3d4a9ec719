package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Remote Sync Client
//
// Thin gateway to the spreadsheet-backed proxy. Every operation is one POST
// to a single fixed endpoint with an "action" discriminator in the JSON body.
// The endpoint authenticates by payload field (apiKey), not transport header —
// a deliberate simplification on the remote side, preserved here.
//
// Design decisions:
//   - No retries or backoff: the orchestrator treats every remote failure as
//     best-effort and local state always wins, so a failed call is just
//     reported and forgotten.
//   - A 30s client timeout bounds a hung request so the orchestrator's
//     in-flight flag cannot stay set forever.
// ============================================================================

// RemoteStore is the remote gateway surface the orchestrator depends on.
type RemoteStore interface {
	Enabled() bool
	List(ctx context.Context) ([]EventRecord, error)
	Upsert(ctx context.Context, ev EventRecord) error
	Delete(ctx context.Context, id string) error
}

// SyncClient performs list/upsert/delete against the configured endpoint.
type SyncClient struct {
	config     *SyncConfig
	httpClient *http.Client
}

// NewSyncClient creates a sync client from a validated config.
func NewSyncClient(config *SyncConfig) (*SyncClient, error) {
	if err := config.Validate(); err != nil {
		return nil, serr.Wrap(err, "invalid sync config")
	}
	return &SyncClient{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Enabled reports whether the client has a usable endpoint configuration.
func (sc *SyncClient) Enabled() bool {
	return sc.config.Enabled()
}

// remoteResponse is the common shape of the endpoint's replies. Only the
// fields relevant to a given action are populated. Events stays raw so a
// malformed or non-array value degrades to an empty list instead of failing
// the whole decode; Error stays loose because the proxy is free to send a
// string, a bool, or nothing at all.
type remoteResponse struct {
	Error  any             `json:"error"`
	Events json.RawMessage `json:"events"`
}

// errorText extracts a failure message from a reply's error field.
// The second result reports whether the field was truthy at all.
func (r *remoteResponse) errorText() (string, bool) {
	switch v := r.Error.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		return "", v
	case float64:
		return "", v != 0
	default:
		return "", true
	}
}

// request posts a payload to the endpoint, stamping in the apiKey and
// sheetName, and decodes the reply.
//
// Error policy: a non-2xx status or a response carrying a truthy error field
// surfaces as a single failure with the body's message when present, else a
// generic message with the status code. A body that fails to parse as JSON
// is converted to a synthetic error payload rather than propagated as a
// decode error.
func (sc *SyncClient) request(ctx context.Context, payload map[string]any) (*remoteResponse, error) {
	if !sc.Enabled() {
		return nil, serr.New("remote sync not configured")
	}

	payload["apiKey"] = sc.config.APIKey
	payload["sheetName"] = sc.config.SheetName

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, serr.Wrap(err, "failed to marshal sync request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.config.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, serr.Wrap(err, "failed to create sync request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := sc.httpClient.Do(req)
	if err != nil {
		return nil, serr.Wrap(err, "sync request failed")
	}
	defer resp.Body.Close()

	data := &remoteResponse{}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		data = &remoteResponse{Error: "bad JSON from remote endpoint"}
	}

	errMsg, hasErr := data.errorText()
	if resp.StatusCode < 200 || resp.StatusCode > 299 || hasErr {
		if errMsg != "" {
			return nil, serr.New(errMsg)
		}
		return nil, serr.New(fmt.Sprintf("remote endpoint error (%d)", resp.StatusCode))
	}

	return data, nil
}

// List fetches the full remote collection. Each row is normalized; a missing
// or non-array events field yields an empty list, not an error.
func (sc *SyncClient) List(ctx context.Context) ([]EventRecord, error) {
	data, err := sc.request(ctx, map[string]any{"action": "list"})
	if err != nil {
		return nil, err
	}

	var raws []*RawEvent
	if len(data.Events) > 0 {
		// A non-array value here is treated as an empty collection
		_ = json.Unmarshal(data.Events, &raws)
	}
	return NormalizeEvents(raws), nil
}

// Upsert creates or replaces the remote row matching the event's id.
func (sc *SyncClient) Upsert(ctx context.Context, ev EventRecord) error {
	_, err := sc.request(ctx, map[string]any{"action": "upsert", "event": ev})
	return err
}

// Delete removes the remote row matching id.
func (sc *SyncClient) Delete(ctx context.Context, id string) error {
	_, err := sc.request(ctx, map[string]any{"action": "delete", "id": id})
	return err
}
