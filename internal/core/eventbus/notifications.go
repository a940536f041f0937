package eventbus

import (
	"fmt"

	"github.com/colonyops/marquee/internal/core/notify"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeListAdded(func(p ListAddedPayload) {
		r.notifyf(notify.LevelSuccess, "%s added to My List", titleOrID(p.Title, p.ContentID))
	})

	r.bus.SubscribeListRemoved(func(p ListRemovedPayload) {
		r.notifyf(notify.LevelInfo, "%s removed from My List", titleOrID(p.Title, p.ContentID))
	})

	r.bus.SubscribeContentUnresolved(func(p ContentUnresolvedPayload) {
		r.notifyf(notify.LevelError, "title %s is unavailable", p.ContentID)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

func titleOrID(title, id string) string {
	if title != "" {
		return fmt.Sprintf("%q", title)
	}
	return id
}
