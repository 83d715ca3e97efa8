package core

// Operation represents a store operation, one of Create, Update, Delete, List
type Operation string

// all supported store operations. Only the modifying ones are notified.
const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationList   Operation = "list"
)

// Notifier is an interface to receive change notifications. Notify is called once
// after every successful mutation with the affected resource name and the JSON
// representation of the changed row (or of its identifier for deletes).
type Notifier interface {
	Notify(resource string, operation Operation, payload []byte)
}
