package bower

import (
	"github.com/google/uuid"
)

// LifecycleKind identifies a lifecycle transition.
type LifecycleKind uint8

const (
	LifecycleInitialized LifecycleKind = iota
	LifecycleUpdated
	LifecycleDestroyed
)

func (k LifecycleKind) String() string {
	switch k {
	case LifecycleInitialized:
		return "initialized"
	case LifecycleUpdated:
		return "updated"
	case LifecycleDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// LifecycleEvent reports a transition of one element.
type LifecycleEvent struct {
	Kind      LifecycleKind
	ElementID uuid.UUID
	Label     string
}

// EventSink receives lifecycle events. When set on a Scene, every element
// transition is forwarded to it on the goroutine that caused it.
type EventSink interface {
	EmitLifecycle(event LifecycleEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(event LifecycleEvent)

// EmitLifecycle calls f.
func (f EventSinkFunc) EmitLifecycle(event LifecycleEvent) {
	f(event)
}
