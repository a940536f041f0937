package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus dispatches typed events to subscribers on a single goroutine.
// Publishing is non-blocking; events are dropped when the buffer is full.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates an EventBus with the given buffer size.
func New(bufferSize int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, bufferSize),
		subs: make(map[Event][]func(any)),
	}
}

// Start runs the dispatch loop until the context is canceled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.invoke(env, fn)
	}
}

func (bus *EventBus) invoke(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(env.payload)
}

// PublishCatalogReloaded publishes a catalog.reloaded event.
func (bus *EventBus) PublishCatalogReloaded(p CatalogReloadedPayload) {
	bus.send(EventCatalogReloaded, p)
}

// SubscribeCatalogReloaded registers a subscriber for catalog.reloaded events.
func (bus *EventBus) SubscribeCatalogReloaded(fn func(CatalogReloadedPayload)) {
	bus.subscribe(EventCatalogReloaded, func(p any) { fn(p.(CatalogReloadedPayload)) })
}

// PublishContentUnresolved publishes a content.unresolved event.
func (bus *EventBus) PublishContentUnresolved(p ContentUnresolvedPayload) {
	bus.send(EventContentUnresolved, p)
}

// SubscribeContentUnresolved registers a subscriber for content.unresolved events.
func (bus *EventBus) SubscribeContentUnresolved(fn func(ContentUnresolvedPayload)) {
	bus.subscribe(EventContentUnresolved, func(p any) { fn(p.(ContentUnresolvedPayload)) })
}

// PublishListAdded publishes a list.added event.
func (bus *EventBus) PublishListAdded(p ListAddedPayload) {
	bus.send(EventListAdded, p)
}

// SubscribeListAdded registers a subscriber for list.added events.
func (bus *EventBus) SubscribeListAdded(fn func(ListAddedPayload)) {
	bus.subscribe(EventListAdded, func(p any) { fn(p.(ListAddedPayload)) })
}

// PublishListRemoved publishes a list.removed event.
func (bus *EventBus) PublishListRemoved(p ListRemovedPayload) {
	bus.send(EventListRemoved, p)
}

// SubscribeListRemoved registers a subscriber for list.removed events.
func (bus *EventBus) SubscribeListRemoved(fn func(ListRemovedPayload)) {
	bus.subscribe(EventListRemoved, func(p any) { fn(p.(ListRemovedPayload)) })
}

// PublishModalOpened publishes a modal.opened event.
func (bus *EventBus) PublishModalOpened(p ModalOpenedPayload) {
	bus.send(EventModalOpened, p)
}

// SubscribeModalOpened registers a subscriber for modal.opened events.
func (bus *EventBus) SubscribeModalOpened(fn func(ModalOpenedPayload)) {
	bus.subscribe(EventModalOpened, func(p any) { fn(p.(ModalOpenedPayload)) })
}

// PublishModalClosed publishes a modal.closed event.
func (bus *EventBus) PublishModalClosed(p ModalClosedPayload) {
	bus.send(EventModalClosed, p)
}

// SubscribeModalClosed registers a subscriber for modal.closed events.
func (bus *EventBus) SubscribeModalClosed(fn func(ModalClosedPayload)) {
	bus.subscribe(EventModalClosed, func(p any) { fn(p.(ModalClosedPayload)) })
}

// PublishNotificationPublished publishes a notification.published event.
func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

// SubscribeNotificationPublished registers a subscriber for notification.published events.
func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}

// PublishTuiStarted publishes a tui.started event.
func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

// SubscribeTuiStarted registers a subscriber for tui.started events.
func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(p any) { fn(p.(TUIStartedPayload)) })
}

// PublishTuiStopped publishes a tui.stopped event.
func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

// SubscribeTuiStopped registers a subscriber for tui.stopped events.
func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(p any) { fn(p.(TUIStoppedPayload)) })
}
