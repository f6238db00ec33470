package domain

// Kind describes one entity type exposed by the API: how it is named in
// alerts, where it is routed, which index mirrors it, and which fields are
// searchable and sortable.
type Kind struct {
	// Name is the entity name used in alert keys, e.g. "bloodPressure".
	Name string
	// Path is the plural kebab-case resource segment, e.g. "blood-pressures".
	Path string
	// Index is the search index name.
	Index string
	// Paginated is false for kinds whose list and search return everything.
	Paginated bool
	// Fields lists the searchable document fields, "id" first.
	Fields []string
	// Sortable lists the fields accepted in sort expressions.
	Sortable []string
}

// HasField reports whether name is a searchable field of the kind.
func (k Kind) HasField(name string) bool {
	for _, f := range k.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// CanSortBy reports whether name is accepted in sort expressions.
func (k Kind) CanSortBy(name string) bool {
	for _, f := range k.Sortable {
		if f == name {
			return true
		}
	}
	return false
}

var (
	KindPoints = Kind{
		Name:      "points",
		Path:      "points",
		Index:     "points",
		Paginated: true,
		Fields:    []string{"id", "date", "exercise", "meals", "alcohol", "notes", "user.id", "user.login"},
		Sortable:  []string{"id", "date", "exercise", "meals", "alcohol", "notes"},
	}
	KindWeight = Kind{
		Name:      "weight",
		Path:      "weights",
		Index:     "weight",
		Paginated: true,
		Fields:    []string{"id", "timestamp", "weight", "user.id", "user.login"},
		Sortable:  []string{"id", "timestamp", "weight"},
	}
	KindBloodPressure = Kind{
		Name:      "bloodPressure",
		Path:      "blood-pressures",
		Index:     "bloodpressure",
		Paginated: true,
		Fields:    []string{"id", "timestamp", "systolic", "diastolic", "user.id", "user.login"},
		Sortable:  []string{"id", "timestamp", "systolic", "diastolic"},
	}
	KindPreferences = Kind{
		Name:      "preferences",
		Path:      "preferences",
		Index:     "preferences",
		Paginated: false,
		Fields:    []string{"id", "weeklyGoals", "weightUnit", "user.id", "user.login"},
		Sortable:  []string{"id", "weeklyGoals", "weightUnit"},
	}
)

// Kinds returns every kind exposed by the API.
func Kinds() []Kind {
	return []Kind{KindPoints, KindWeight, KindBloodPressure, KindPreferences}
}
