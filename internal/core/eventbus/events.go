// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within marquee.
package eventbus

import (
	"github.com/colonyops/marquee/internal/core/catalog"
	"github.com/colonyops/marquee/internal/core/notify"
)

// Event identifies an event type on the bus.
type Event string

// Event names. Keep list sorted A-Z.
const (
	EventCatalogReloaded       Event = "catalog.reloaded"
	EventContentUnresolved     Event = "content.unresolved"
	EventListAdded             Event = "list.added"
	EventListRemoved           Event = "list.removed"
	EventModalClosed           Event = "modal.closed"
	EventModalOpened           Event = "modal.opened"
	EventNotificationPublished Event = "notification.published"
	EventTuiStarted            Event = "tui.started"
	EventTuiStopped            Event = "tui.stopped"
)

// CatalogReloadedPayload is emitted after the catalog is rebuilt from disk.
type CatalogReloadedPayload struct {
	Catalog *catalog.Catalog
}

// ContentUnresolvedPayload is emitted when a content reference cannot be
// resolved to a catalog record.
type ContentUnresolvedPayload struct {
	ContentID string
	RowID     string
}

// ListAddedPayload is emitted when a title is added to My List.
type ListAddedPayload struct {
	ContentID string
	Title     string
}

// ListRemovedPayload is emitted when a title is removed from My List.
type ListRemovedPayload struct {
	ContentID string
	Title     string
}

// ModalOpenedPayload is emitted when the detail modal finishes opening.
type ModalOpenedPayload struct {
	ContentID string
}

// ModalClosedPayload is emitted when the detail modal finishes closing.
type ModalClosedPayload struct {
	ContentID string
}

// NotificationPublishedPayload is emitted when a user-facing notification
// is produced from a domain event.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}
