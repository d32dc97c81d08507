package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLoadStarted     EventType = "LoadStarted"
	EventItemBatchLoaded EventType = "ItemBatchLoaded"
	EventLoadCompleted   EventType = "LoadCompleted"
	EventError           EventType = "Error"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventConfigChanged   EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LoadStartedEvent is emitted when item loading begins
type LoadStartedEvent struct {
	Source string // file path, or "generated" for synthetic items
}

func (e LoadStartedEvent) Type() EventType { return EventLoadStarted }

// ItemBatchLoadedEvent carries a batch of freshly loaded items
type ItemBatchLoadedEvent struct {
	Items []Item
}

func (e ItemBatchLoadedEvent) Type() EventType { return EventItemBatchLoaded }

// LoadCompletedEvent is emitted when item loading finishes
type LoadCompletedEvent struct {
	ItemsFound int
}

func (e LoadCompletedEvent) Type() EventType { return EventLoadCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when configuration needs to be saved
type ConfigChangedEvent struct {
	IndicatorEnabled      bool
	ShowPositionIndicator bool
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
