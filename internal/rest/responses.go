package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/webdekho/schoolctl/pkg/types"
)

// readSuccess consumes the response body and returns it when the status is
// 2xx, otherwise it builds the error for the failure.
func readSuccess(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, errorFromBody(resp.StatusCode, body)
	}
	return body, nil
}

// errorFromBody maps a failure response to the client error taxonomy:
// 401 and 404 wrap their sentinels, everything else becomes an APIError
// carrying the server's message field when the body has one.
func errorFromBody(status int, body []byte) error {
	message := serverMessage(body)
	switch status {
	case http.StatusUnauthorized:
		return types.ErrUnauthorized
	case http.StatusNotFound:
		if message != "" {
			return fmt.Errorf("%w: %s", types.ErrNotFound, message)
		}
		return types.ErrNotFound
	}
	return &types.APIError{StatusCode: status, Message: message}
}

// serverMessage extracts the human-readable message from a structured error
// body. Empty when the body is not JSON or carries no message field.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}

// normalizeListBody adapts the two list-envelope shapes the backend answers
// with, {"data": [...], "total": n} and a bare array, into one ListPage.
// A bare array carries no server total, so the item count stands in for it.
func normalizeListBody(body []byte) (*types.ListPage[json.RawMessage], error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
		}
		return &types.ListPage[json.RawMessage]{Items: items, Total: len(items)}, nil
	}

	var envelope struct {
		Data  []json.RawMessage `json:"data"`
		Total *int              `json:"total"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	page := &types.ListPage[json.RawMessage]{Items: envelope.Data}
	if page.Items == nil {
		page.Items = []json.RawMessage{}
	}
	if envelope.Total != nil {
		page.Total = *envelope.Total
	} else {
		page.Total = len(page.Items)
	}
	return page, nil
}

// normalizeRecordBody unwraps single-record responses that arrive wrapped in
// a {"data": {...}} envelope; bare objects pass through unchanged.
func normalizeRecordBody(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && len(bytes.TrimSpace(envelope.Data)) > 0 {
		if d := bytes.TrimSpace(envelope.Data); d[0] == '{' {
			return envelope.Data, nil
		}
	}
	return json.RawMessage(trimmed), nil
}
