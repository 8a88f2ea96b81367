// Package jsonutil provides the JSON helpers shared by the API client and the
// mock collaborator: context-wrapped errors and tolerant array decoding.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// MarshalWithContext is the encoding counterpart of UnmarshalWithContext.
func MarshalWithContext(v any, context string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return data, nil
}

// UnmarshalArrayAllowEmpty unmarshals a JSON array. A JSON null or an empty
// array both yield a non-nil empty slice.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []T{}
	}
	return entries, nil
}

// DecodeBody reads at most limit bytes of r and unmarshals them into v.
func DecodeBody(r io.Reader, limit int64, v any, context string) error {
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", context, err)
	}
	return UnmarshalWithContext(data, v, context)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
