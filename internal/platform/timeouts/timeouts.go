// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// TelemetryShutdown caps how long a command waits to flush spans on exit.
const TelemetryShutdown = 5 * time.Second

// StorageBusy is how long a SQLite connection waits on a locked database
// before failing.
const StorageBusy = 5 * time.Second
