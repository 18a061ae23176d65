package memory

import (
	"maps"
	"slices"
	"time"

	"github.com/iho/caisse/internal/domain"
)

type (
	sessionRow = domain.RegisterSession
	entryRow   = domain.LedgerEntry
	paymentRow = domain.Payment
	orderRow   = domain.Order
	clientRow  = domain.Client
	productRow = domain.Product
	serviceRow = domain.Service
	userRow    = domain.User
	outboxRow  = domain.OutboxEvent
)

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneSession(s sessionRow) *domain.RegisterSession {
	s.ClosedAt = cloneTime(s.ClosedAt)
	return &s
}

func cloneEntry(e entryRow) *domain.LedgerEntry {
	e.PaymentID = cloneString(e.PaymentID)
	return &e
}

func clonePayment(p paymentRow) *domain.Payment {
	p.SessionID = cloneString(p.SessionID)
	return &p
}

func cloneOrder(o orderRow) *domain.Order {
	o.LineItems = slices.Clone(o.LineItems)
	o.ServiceItems = slices.Clone(o.ServiceItems)
	return &o
}

func cloneOutbox(e outboxRow) *domain.OutboxEvent {
	e.Payload = maps.Clone(e.Payload)
	e.PublishedAt = cloneTime(e.PublishedAt)
	return &e
}

func ptr[T any](v T) *T {
	return &v
}
