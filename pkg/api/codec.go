// Package api defines the bistro.v1 RPC surface: procedure names, JSON
// request/response messages, and typed Connect clients.
package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Codec carries plain Go structs as JSON over Connect. Handlers and clients
// both install it with WithCodec.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithCodec is the handler and client option selecting Codec.
func WithCodec() connect.Option {
	return connect.WithCodec(Codec{})
}
