package converter

import (
	"context"
	"fmt"
)

// Registry dispatches an input to the first backend that accepts it.
// Built once at startup and shared read-only across requests.
type Registry struct {
	backends []Converter
}

// NewRegistry creates a registry over the given backends, in priority order.
func NewRegistry(backends ...Converter) *Registry {
	return &Registry{backends: backends}
}

// Convert hands the input to the first accepting backend.
func (r *Registry) Convert(ctx context.Context, in Input) (*Result, error) {
	for _, b := range r.backends {
		if b.Accepts(in) {
			return b.Convert(ctx, in)
		}
	}
	return nil, fmt.Errorf("unsupported format: %s", in.Name)
}
