package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts content_id and row_id from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if contentID := GetContentID(ctx); contentID != "" {
		e.Str("content_id", contentID)
	}

	if rowID := GetRowID(ctx); rowID != "" {
		e.Str("row_id", rowID)
	}
}
