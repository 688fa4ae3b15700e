package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
)

// Paths of the ephemeris module
const (
	EphemerisPath = "/api/ephemeris"
	RefreshPath   = EphemerisPath + "/refresh"
	RelayPath     = EphemerisPath + "/generate"
	GeneratorPath = EphemerisPath + "/generator"
)

// ListEphemerides returns the records currently loaded by the backend
func (c *Client) ListEphemerides(ctx context.Context) ([]*ephemeris.Record, error) {
	var out ApiResponse[[]*ephemeris.Record]
	if err := c.NewRequest(ctx, http.MethodGet, EphemerisPath, nil, &out).doJSON(); err != nil {
		return nil, err
	}

	// Check for success
	switch out.Status {
	case api_types.StatusFail:
		return nil, fmt.Errorf("failed to list ephemerides: %s", out.Message)
	case api_types.StatusError:
		return nil, fmt.Errorf("error listing ephemerides (%s): %v", out.Message, out.Error)
	}

	return out.Data, nil
}

// Refresh asks the backend to reload its records from the store
func (c *Client) Refresh(ctx context.Context) (*RefreshResponse, error) {
	var out ApiResponse[RefreshResponse]
	if err := c.NewRequest(ctx, http.MethodPost, RefreshPath, nil, &out).doJSON(); err != nil {
		return nil, err
	}

	// Check for success
	switch out.Status {
	case api_types.StatusFail:
		return nil, fmt.Errorf("failed to refresh ephemerides: %s", out.Message)
	case api_types.StatusError:
		return nil, fmt.Errorf("error refreshing ephemerides (%s): %v", out.Message, out.Error)
	}

	return &out.Data, nil
}

// Generate calls the relay endpoint, which forwards to the configured generator
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*GeneratorResponse, error) {
	var out GeneratorResponse
	if err := c.NewRequest(ctx, http.MethodPost, RelayPath, req, &out).doJSON(); err != nil {
		return nil, err
	}

	return &out, nil
}

// TriggerGeneration calls the generator entrypoint with the client's key. A nil
// request sends no body so the generator picks tomorrow
func (c *Client) TriggerGeneration(ctx context.Context, req *GeneratorRequest) (*GeneratorResponse, error) {
	raw, err := c.TriggerGenerationRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	var out GeneratorResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode generator response: %w", err)
	}

	return &out, nil
}

// TriggerGenerationRaw calls the generator entrypoint and returns its JSON body untouched
func (c *Client) TriggerGenerationRaw(ctx context.Context, req *GeneratorRequest) (json.RawMessage, error) {
	var in any
	if req != nil {
		in = req
	}

	return c.NewRequest(ctx, http.MethodPost, GeneratorPath, in, nil).WithBearer(c.apiKey).do()
}
