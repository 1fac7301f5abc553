package service

import (
	"fmt"
	"strings"
	"time"

	"canteen/canteen-svc/internal/domain"
)

type TransitionPolicy string

const (
	// PolicyStrict only accepts the moves the staff UI offers.
	PolicyStrict TransitionPolicy = "strict"
	// PolicyPermissive accepts any known status from any status.
	PolicyPermissive TransitionPolicy = "permissive"
)

func ParseTransitionPolicy(value string) (TransitionPolicy, error) {
	switch TransitionPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyPermissive:
		return PolicyPermissive, nil
	}
	return "", fmt.Errorf("unknown transition policy %q", value)
}

type Action struct {
	Label  string        `json:"label"`
	Status domain.Status `json:"status"`
}

var actionTable = map[domain.Status][]Action{
	domain.StatusPending: {
		{Label: "Start preparing", Status: domain.StatusPreparing},
		{Label: "Cancel", Status: domain.StatusCancelled},
	},
	domain.StatusPreparing: {
		{Label: "Mark ready", Status: domain.StatusReady},
	},
	domain.StatusReady: {
		{Label: "Complete", Status: domain.StatusCompleted},
	},
}

var defaultNotes = map[domain.Status]string{
	domain.StatusPending:   "Order placed",
	domain.StatusPreparing: "Order is being prepared",
	domain.StatusReady:     "Order is ready for pickup",
	domain.StatusCompleted: "Order completed",
	domain.StatusCancelled: "Order cancelled",
}

// AllowedActions lists what staff may do with an order in status. Terminal states have none.
func AllowedActions(status domain.Status) []Action {
	actions := actionTable[status]
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

func CanTransition(from, to domain.Status) bool {
	for _, action := range actionTable[from] {
		if action.Status == to {
			return true
		}
	}
	return false
}

func DefaultNote(status domain.Status) string {
	if note, ok := defaultNotes[status]; ok {
		return note
	}
	return "Status changed to " + string(status)
}

type Lifecycle struct {
	Policy TransitionPolicy
}

func (l Lifecycle) Check(from, to domain.Status) error {
	if !to.Valid() {
		return validationError("unknown status %q", to)
	}
	if l.Policy == PolicyPermissive || CanTransition(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Apply records the move on the order. History is only ever appended to.
func (l Lifecycle) Apply(order *domain.Order, to domain.Status, note string, at time.Time) {
	if note == "" {
		note = DefaultNote(to)
	}
	order.StatusHistory = append(order.StatusHistory, domain.StatusEntry{
		Status:    to,
		Timestamp: at,
		Note:      note,
	})
	order.Status = to
	order.UpdatedAt = at
	if to == domain.StatusCompleted && order.CompletedAt == nil {
		completedAt := at
		order.CompletedAt = &completedAt
	}
}
