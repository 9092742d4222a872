package models

// StatusActive marks an adjustment as eligible for projections. A missing
// status is treated the same way.
const StatusActive = "ACTIVE"

// Adjustment is a recurring income (positive value) or expense (negative value)
// attached to an account. Value and dates are kept as the text the store
// returned; the cashflow engine parses them.
type Adjustment struct {
	ID          int64  `json:"id"`
	AccountID   int64  `json:"account_id"`
	AccountName string `json:"account_name,omitempty"`
	ValueType   string `json:"value_type"`
	Value       string `json:"value"`
	Frequency   string `json:"frequency"`
	StartedOn   string `json:"started_on"`          // Format: YYYY-MM-DD
	EnteredOn   string `json:"entered_on,omitempty"` // Format: YYYY-MM-DD
	EndedOn     string `json:"ended_on,omitempty"`   // Format: YYYY-MM-DD
	Label       string `json:"label,omitempty"`
	Notes       string `json:"notes,omitempty"`
	NotesHTML   string `json:"notes_html,omitempty"`
	Status      string `json:"status,omitempty"`
}
