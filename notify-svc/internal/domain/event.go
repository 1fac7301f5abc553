package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

const (
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// OrderEvent is the subset of canteen-svc's order event the board needs.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BoardEntry is one token waiting at the counter.
type BoardEntry struct {
	Token      string    `json:"token"`
	ReadySince time.Time `json:"ready_since"`
}

type Board struct {
	Day     string       `json:"day"`
	Entries []BoardEntry `json:"entries"`
}
