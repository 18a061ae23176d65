package domain

import "time"

// Event types
const (
	EventTypeRegisterOpened     = "register.opened"
	EventTypeRegisterClosed     = "register.closed"
	EventTypeEntryRecorded      = "ledger_entry.recorded"
	EventTypeEntryDeleted       = "ledger_entry.deleted"
	EventTypePaymentRecorded    = "payment.recorded"
	EventTypePaymentUpdated     = "payment.updated"
	EventTypePaymentDeleted     = "payment.deleted"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// Aggregate types
const (
	AggregateTypeRegister = "register_session"
	AggregateTypeEntry    = "ledger_entry"
	AggregateTypePayment  = "payment"
	AggregateTypeOrder    = "order"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Payload       map[string]any
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Published     bool
}
