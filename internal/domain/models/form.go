package models

// PersonRecord is one entry in a list-valued form field (executors,
// beneficiaries, attorneys, witnesses). All fields except Name are optional;
// entries are independent even when their field values match.
type PersonRecord struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	Province     string `json:"province,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
}

// List-valued field names. Everything else in FormData is a scalar.
const (
	FieldExecutors     = "executors"
	FieldBeneficiaries = "beneficiaries"
	FieldAttorneys     = "attorneys"
	FieldWitnesses     = "witnesses"
)

// FormData holds one wizard session's answers: scalar fields by name plus the
// person lists. It is exclusively owned by one session and mutated only
// through the session's field-update and list-add/remove operations.
type FormData struct {
	Fields map[string]string         `json:"fields"`
	People map[string][]PersonRecord `json:"people"`
}

// NewFormData returns an empty, initialized FormData.
func NewFormData() FormData {
	return FormData{
		Fields: make(map[string]string),
		People: make(map[string][]PersonRecord),
	}
}

// Field returns the scalar value for name, or "" when unset.
func (f FormData) Field(name string) string {
	return f.Fields[name]
}

// SetField stores a scalar value.
func (f FormData) SetField(name, value string) {
	f.Fields[name] = value
}

// Persons returns the list entries for a list-valued field. The returned
// slice is the live backing slice; callers must not retain it across writes.
func (f FormData) Persons(listField string) []PersonRecord {
	return f.People[listField]
}

// IsListField reports whether name is one of the known list-valued fields.
func IsListField(name string) bool {
	switch name {
	case FieldExecutors, FieldBeneficiaries, FieldAttorneys, FieldWitnesses:
		return true
	}
	return false
}

// Clone returns a deep copy, used for persisted snapshots so later edits
// cannot mutate a saved draft or generated document.
func (f FormData) Clone() FormData {
	c := NewFormData()
	for k, v := range f.Fields {
		c.Fields[k] = v
	}
	for k, v := range f.People {
		list := make([]PersonRecord, len(v))
		copy(list, v)
		c.People[k] = list
	}
	return c
}
