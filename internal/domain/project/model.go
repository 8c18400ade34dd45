package project

import "time"

// Project is the persistence-side identity of one migration project. The
// inventory snapshot itself is stored separately, one revision per save.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Instance string `json:"instance,omitempty"`
	// Revision counts committed saves; it is bumped once per persisted
	// snapshot and lets callers detect staleness without deep comparison.
	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
