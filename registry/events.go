package registry

import extensionhost "github.com/synapsehq/extension-host"

// Event types for alias lifecycle notifications.
type EventType uint8

const (
	EventAliased EventType = iota
	EventReplaced
	EventRemoved
)

// Event represents an alias lifecycle event.
type Event struct {
	Module   extensionhost.Symbols
	Previous extensionhost.Symbols
	Path     string
	Type     EventType
}

// Observer receives notifications about alias lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}
