package constants

// ContractStatus is the stored lifecycle stage of a contract record.
// The stored value is advisory; the effective status is always recomputed
// from field completeness.
type ContractStatus string

// Stable values (store these exact strings in DB).
const (
	StatusDraft     ContractStatus = "draft"     // auto-extracted, possibly incomplete
	StatusCompleted ContractStatus = "completed" // user-confirmed, ready for generation
)
