package service

import (
	"context"

	"reelspin/internal/model"
)

// ResultService answers spin requests asynchronously.
// Results are delivered to the registered handler from another goroutine
type ResultService interface {
	RegisterResultHandler(h func(model.SpinResult))
	RequestSpin(ctx context.Context, req model.SpinRequest) error
	Close()
}
