package model

import "fmt"

// MaxDrafts is the fixed number of draft slots. Slot ids run 1..MaxDrafts
// and slot id n always occupies array position n-1.
const MaxDrafts = 6

// Draft is one named palette snapshot. It doubles as the wire record of the
// remote draft service. An empty draft has no colors and no timestamp.
type Draft struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Colors    ColorMap `json:"colors,omitempty"`
	Timestamp int64    `json:"timestamp,omitempty"`
}

// PlaceholderName is the generated name of an empty slot.
func PlaceholderName(id int) string {
	return fmt.Sprintf("Draft %d", id)
}

// EmptyDraft returns the empty default for slot id.
func EmptyDraft(id int) Draft {
	return Draft{ID: id, Name: PlaceholderName(id)}
}

// IsEmpty reports whether the draft holds no snapshot.
func (d Draft) IsEmpty() bool {
	return len(d.Colors) == 0
}

// Clone returns a deep copy; mutating the copy never affects the original.
func (d Draft) Clone() Draft {
	clone := d
	clone.Colors = d.Colors.Clone()
	return clone
}

// DraftsEnvelope is the JSON document persisted by the remote draft service
// and returned by GET /api/drafts. Exactly one stamp is set per write.
type DraftsEnvelope struct {
	Drafts      []Draft `json:"drafts"`
	LastUpdated string  `json:"lastUpdated,omitempty"`
	RestoredAt  string  `json:"restoredAt,omitempty"`
	ClearedAt   string  `json:"clearedAt,omitempty"`
}

// CloneDrafts deep-copies a draft list.
func CloneDrafts(drafts []Draft) []Draft {
	if drafts == nil {
		return nil
	}
	clone := make([]Draft, len(drafts))
	for i, d := range drafts {
		clone[i] = d.Clone()
	}
	return clone
}

// SaveResponse is the body returned by the mutating draft endpoints.
type SaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// ErrorResponse is the body of 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}
