package models

// Account is a tracked account the recurring adjustments belong to
type Account struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"-"` // Not serialized
	Website   string `json:"website,omitempty"`
	Notes     string `json:"notes,omitempty"`
	NotesHTML string `json:"notes_html,omitempty"`
	Status    string `json:"status,omitempty"`
}
