package telemetry

import (
	"github.com/google/uuid"
)

// NewTraceID returns a short trace identifier to stamp a single CLI-driven
// resolve call. It is attached to the child logger the CLI command builds
// with With; lines logged through Logger() by other packages during the
// call (e.g. ingest) do not carry it.
func NewTraceID() string {
	return uuid.New().String()[:8]
}
