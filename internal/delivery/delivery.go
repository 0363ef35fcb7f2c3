// Package delivery defines the contract every transport-facing server
// implements so the application can serve them uniformly.
package delivery

import "context"

// Delivery is a long-running server (HTTP, worker, ...). Serve blocks until
// the context is cancelled or the server fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
