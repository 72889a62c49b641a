// Package delivery defines the contract every transport entrypoint implements.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server) started by the main
// lifecycle and stopped through its own lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
