package events

import (
	"fmt"
	"sync"

	console "filmledger/internal/utils/logger"
)

var log = console.New("EVENTS")

type EventHandler func(interface{})

// EventBus is a minimal in-process pub/sub used to decouple entity
// lifecycle from background maintenance (upload sweeps and the like).
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

var defaultBus = NewEventBus()

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

// On registers a handler for an event
func (bus *EventBus) On(event string, handler EventHandler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.handlers[event] = append(bus.handlers[event], handler)
	log.Info("Registered handler for event: %s", event)
}

// Emit triggers an event with the given data
func (bus *EventBus) Emit(event string, data interface{}) {
	bus.mu.RLock()
	handlers, exists := bus.handlers[event]
	bus.mu.RUnlock()

	if !exists {
		return
	}

	for _, handler := range handlers {
		go func(h EventHandler) {
			defer func() {
				if r := recover(); r != nil {
					_ = log.Error("Panic in event handler", fmt.Errorf("panic: %v", r))
				}
			}()
			h(data)
		}(handler)
	}
}

// On registers a handler on the default event bus.
func On(event string, handler EventHandler) {
	defaultBus.On(event, handler)
}

// Emit triggers an event on the default event bus.
func Emit(event string, data interface{}) {
	defaultBus.Emit(event, data)
}
