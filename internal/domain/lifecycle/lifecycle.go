// Package lifecycle holds shared start/stop constants for the application's components.
package lifecycle

import "time"

// DefaultTimeout bounds startup probes and graceful shutdowns.
const DefaultTimeout = 10 * time.Second
