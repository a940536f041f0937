package logging

import "context"

type contextKey string

const (
	contentIDKey contextKey = "content_id"
	rowIDKey     contextKey = "row_id"
)

// WithContentID adds a content ID to the context.
func WithContentID(ctx context.Context, contentID string) context.Context {
	return context.WithValue(ctx, contentIDKey, contentID)
}

// WithRowID adds a row (category) ID to the context.
func WithRowID(ctx context.Context, rowID string) context.Context {
	return context.WithValue(ctx, rowIDKey, rowID)
}

// GetContentID retrieves the content ID from the context.
// Returns empty string if not present.
func GetContentID(ctx context.Context) string {
	if id, ok := ctx.Value(contentIDKey).(string); ok {
		return id
	}
	return ""
}

// GetRowID retrieves the row ID from the context.
// Returns empty string if not present.
func GetRowID(ctx context.Context) string {
	if id, ok := ctx.Value(rowIDKey).(string); ok {
		return id
	}
	return ""
}
