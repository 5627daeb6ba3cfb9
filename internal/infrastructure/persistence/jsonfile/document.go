package jsonfile

import (
	"time"

	"github.com/alem-hub/watson/internal/infrastructure/persistence/record"
)

// documentVersion is bumped whenever the on-disk shape changes.
const documentVersion = 1

// rosterDocument is the on-disk shape of the whole roster. Array order
// is the storage order, so the file round-trips listings exactly.
type rosterDocument struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Persons []record.Person `json:"persons"`
}
