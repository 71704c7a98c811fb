package server

import (
	"context"

	"statboard-service/internal/poller"
)

// Poller defines the minimal cache-warmer behavior needed by the server.
type Poller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() poller.Status
}
