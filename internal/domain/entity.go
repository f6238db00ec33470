package domain

// Entity is the storage form of a persisted record. Identity returns the
// server-assigned id, or 0 when the record has not been created yet.
type Entity interface {
	Identity() int64
}

// SameIdentity reports whether a and b denote the same persisted record.
// Records without an assigned id are never equal to anything, including
// another unsaved record.
func SameIdentity[E Entity](a, b E) bool {
	id := a.Identity()
	return id != 0 && id == b.Identity()
}

// WriteMode is the create-or-replace decision taken once for a write request.
type WriteMode int

const (
	WriteInsert WriteMode = iota + 1
	WriteReplace
)

func (m WriteMode) String() string {
	switch m {
	case WriteInsert:
		return "insert"
	case WriteReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// DecideWrite maps the presence of a transfer-form id to a WriteMode:
// a missing id means insert, any id means replace the record at that id.
func DecideWrite(id *int64) WriteMode {
	if id == nil {
		return WriteInsert
	}
	return WriteReplace
}
