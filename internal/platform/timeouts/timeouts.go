// Package timeouts defines shared timeout constants used by the web service.
package timeouts

import "time"

// BackendRequest caps a single REST call to the guild backend.
const BackendRequest = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// OTelShutdown limits how long pending spans are flushed on exit.
const OTelShutdown = 5 * time.Second
