// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a runnable transport (HTTP API, worker endpoint). Servers are
// collected in the "deliveries" Fx group and started together; shutdown goes
// through Fx lifecycle hooks.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
