package provider

import (
	"context"
	"fmt"
)

// Generator turns one uploaded image into a generated image URL.
type Generator interface {
	Generate(ctx context.Context, model_id string, img []byte) (string, error)
}

// ProviderError is returned for any failed provider call: transport,
// non-2xx status, or a response without an output URL.
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (pe *ProviderError) Error() string {
	switch {
	case pe.StatusCode != 0 && pe.Err != nil:
		return fmt.Sprintf("provider returned %d: %s: %v", pe.StatusCode, pe.Message, pe.Err)
	case pe.StatusCode != 0:
		return fmt.Sprintf("provider returned %d: %s", pe.StatusCode, pe.Message)
	case pe.Err != nil:
		return fmt.Sprintf("provider: %s: %v", pe.Message, pe.Err)
	default:
		return "provider: " + pe.Message
	}
}

func (pe *ProviderError) Unwrap() error {
	return pe.Err
}
