package graph

import (
	"context"
	"encoding/json"
	"net/http"
)

var jsonContentType = map[string]string{"Content-Type": "application/json"}

// batchStep is one sub-request of a Graph JSON batch.
type batchStep struct {
	ID      string            `json:"id"`
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    any               `json:"body,omitempty"`
}

// batchStepResponse is one sub-response. Body carries the raw JSON of the
// sub-response so callers can decode it into the right resource type.
type batchStepResponse struct {
	ID     string          `json:"id"`
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// batch executes sub-requests through the /$batch endpoint. The HTTP call
// itself succeeding does not imply every step succeeded; callers inspect
// per-step status codes.
func (c *Client) batch(ctx context.Context, steps []batchStep) ([]batchStepResponse, error) {
	payload := struct {
		Requests []batchStep `json:"requests"`
	}{Requests: steps}

	var out struct {
		Responses []batchStepResponse `json:"responses"`
	}
	if err := c.do(ctx, http.MethodPost, "/$batch", payload, &out); err != nil {
		return nil, err
	}
	return out.Responses, nil
}
