package event_bus

import "github.com/pennywise/pennywise/internal/money"

const (
	// TransactionRecorded is published after a transaction has been
	// persisted. Budget tracking subscribes to it to advance running
	// spend totals.
	TransactionRecorded EventType = "transaction.recorded"
)

// TransactionRecordedPayload carries the fields budget tracking needs; the
// full transaction stays inside its own package.
type TransactionRecordedPayload struct {
	ID       string
	Type     string
	Category string
	Amount   money.Money
}
