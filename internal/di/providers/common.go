package providers

import "time"

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown of services.
	shutdownTimeout = 30 * time.Second

	// httpTimeout bounds every outbound request that has no tighter deadline.
	httpTimeout = 30 * time.Second
)
