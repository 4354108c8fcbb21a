package wizard

import (
	"errors"
	"testing"

	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
)

func newTestSession(t *testing.T, docType models.DocumentType) *Session {
	t.Helper()

	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	session, err := NewSession(docType, registry)
	if err != nil {
		t.Fatalf("NewSession(%s) error = %v", docType, err)
	}
	return session
}

// fillPersonal populates the personal step so Next can pass it.
func fillPersonal(t *testing.T, s *Session) {
	t.Helper()

	for field, value := range map[string]string{
		"fullName":    "Margaret Chen",
		"address":     "120 Queen Street West",
		"dateOfBirth": "1968-04-12",
		"city":        "Toronto",
		"postalCode":  "M5V 2T6",
	} {
		if err := s.UpdateField(field, value); err != nil {
			t.Fatalf("UpdateField(%s) error = %v", field, err)
		}
	}
}

func TestNewSessionUnknownType(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	_, err = NewSession(models.DocumentType("deed"), registry)
	if !errors.Is(err, domain.ErrUnknownType) {
		t.Errorf("NewSession(deed) error = %v, want ErrUnknownType", err)
	}
}

func TestNextBlockedByValidation(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)

	result := s.Next()
	if result.Advanced || result.Completed {
		t.Errorf("Next() on empty personal step advanced=%v completed=%v, want neither", result.Advanced, result.Completed)
	}
	if result.Errors.Empty() {
		t.Fatal("Next() on empty personal step returned no errors")
	}
	if s.CurrentStepIndex != 0 {
		t.Errorf("CurrentStepIndex = %d after blocked Next, want 0", s.CurrentStepIndex)
	}
	if s.ValidationErrors["fullName"] == "" {
		t.Error("validation errors not stored on the session")
	}
}

func TestNextAdvancesWhenValid(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)
	fillPersonal(t, s)

	result := s.Next()
	if !result.Advanced {
		t.Fatalf("Next() = %+v, want Advanced", result)
	}
	if s.CurrentStepIndex != 1 {
		t.Errorf("CurrentStepIndex = %d, want 1", s.CurrentStepIndex)
	}
	if s.FurthestStepIndex != 1 {
		t.Errorf("FurthestStepIndex = %d, want 1", s.FurthestStepIndex)
	}
	if !s.ValidationErrors.Empty() {
		t.Errorf("ValidationErrors = %v after successful Next, want empty", s.ValidationErrors)
	}
}

func TestUpdateFieldClearsStoredError(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)

	s.Next()
	if s.ValidationErrors["fullName"] == "" {
		t.Fatal("expected a stored fullName error")
	}

	if err := s.UpdateField("fullName", "Margaret Chen"); err != nil {
		t.Fatalf("UpdateField error = %v", err)
	}
	if s.ValidationErrors["fullName"] != "" {
		t.Error("fullName error not cleared by UpdateField")
	}
	if s.ValidationErrors["address"] == "" {
		t.Error("unrelated errors should survive until the next forward attempt")
	}
}

func TestPreviousFloorsAtFirstStep(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)

	s.Previous()
	if s.CurrentStepIndex != 0 {
		t.Errorf("CurrentStepIndex = %d after Previous on first step, want 0", s.CurrentStepIndex)
	}

	fillPersonal(t, s)
	s.Next()
	s.Previous()
	if s.CurrentStepIndex != 0 {
		t.Errorf("CurrentStepIndex = %d, want 0", s.CurrentStepIndex)
	}
	// Retreating does not lower the high-water mark.
	if s.FurthestStepIndex != 1 {
		t.Errorf("FurthestStepIndex = %d after Previous, want 1", s.FurthestStepIndex)
	}
}

func TestJumpToBounds(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)
	fillPersonal(t, s)
	s.Next()
	s.Previous()

	if err := s.JumpTo(1); err != nil {
		t.Errorf("JumpTo(1) error = %v, want nil", err)
	}
	if s.CurrentStepIndex != 1 {
		t.Errorf("CurrentStepIndex = %d, want 1", s.CurrentStepIndex)
	}

	if err := s.JumpTo(3); err == nil {
		t.Error("JumpTo past furthest step succeeded, want error")
	}
	if err := s.JumpTo(-1); err == nil {
		t.Error("JumpTo(-1) succeeded, want error")
	}
	if err := s.JumpTo(len(s.Steps)); err == nil {
		t.Error("JumpTo(len(steps)) succeeded, want error")
	}
}

func TestSessionCompletesOnFinalStep(t *testing.T) {
	s := newTestSession(t, models.DocumentTypePOACare)
	fillPersonal(t, s)

	if err := s.AddPerson(models.FieldAttorneys, models.PersonRecord{Name: "David Osei"}); err != nil {
		t.Fatalf("AddPerson error = %v", err)
	}
	if err := s.AddPerson(models.FieldWitnesses, models.PersonRecord{Name: "Alice Tremblay"}); err != nil {
		t.Fatalf("AddPerson error = %v", err)
	}
	if err := s.AddPerson(models.FieldWitnesses, models.PersonRecord{Name: "Robert Singh"}); err != nil {
		t.Fatalf("AddPerson error = %v", err)
	}

	// personal -> attorneys -> care -> witnesses -> review
	for i := 0; i < len(s.Steps)-1; i++ {
		result := s.Next()
		if !result.Advanced {
			t.Fatalf("Next() at step %d = %+v, want Advanced", i, result)
		}
	}

	result := s.Next()
	if !result.Completed {
		t.Fatalf("Next() on review step = %+v, want Completed", result)
	}
	if !s.Completed {
		t.Error("session not marked completed")
	}

	// Completed sessions freeze their form data.
	if err := s.UpdateField("city", "Ottawa"); err == nil {
		t.Error("UpdateField on a completed session succeeded, want error")
	}
	if err := s.AddPerson(models.FieldWitnesses, models.PersonRecord{Name: "Late Witness"}); err == nil {
		t.Error("AddPerson on a completed session succeeded, want error")
	}

	// A completed session has no draft; a late auto-save must get nothing
	// to write, or it would resurrect the deleted draft row.
	if draft := s.Snapshot(); draft != nil {
		t.Error("Snapshot on a completed session returned a draft, want nil")
	}
}

func TestVersionIncrementsOnMutation(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)

	v := s.Version
	if err := s.UpdateField("fullName", "Margaret Chen"); err != nil {
		t.Fatalf("UpdateField error = %v", err)
	}
	if s.Version != v+1 {
		t.Errorf("Version = %d after UpdateField, want %d", s.Version, v+1)
	}

	if err := s.AddPerson(models.FieldWitnesses, models.PersonRecord{Name: "Alice Tremblay"}); err != nil {
		t.Fatalf("AddPerson error = %v", err)
	}
	if s.Version != v+2 {
		t.Errorf("Version = %d after AddPerson, want %d", s.Version, v+2)
	}
}

func TestAddRemovePersonRoundTrip(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)

	first := models.PersonRecord{Name: "David Osei", Relationship: "brother"}
	second := models.PersonRecord{Name: "David Osei", Relationship: "brother"}

	if err := s.AddPerson(models.FieldExecutors, first); err != nil {
		t.Fatalf("AddPerson error = %v", err)
	}
	// Identical entries stay independent records.
	if err := s.AddPerson(models.FieldExecutors, second); err != nil {
		t.Fatalf("AddPerson duplicate error = %v", err)
	}
	if got := len(s.FormData.Persons(models.FieldExecutors)); got != 2 {
		t.Fatalf("executor count = %d, want 2", got)
	}

	if err := s.RemovePerson(models.FieldExecutors, 0); err != nil {
		t.Fatalf("RemovePerson error = %v", err)
	}
	if got := len(s.FormData.Persons(models.FieldExecutors)); got != 1 {
		t.Fatalf("executor count = %d after remove, want 1", got)
	}

	if err := s.RemovePerson(models.FieldExecutors, 5); err == nil {
		t.Error("RemovePerson with out-of-range index succeeded, want error")
	}
	if err := s.AddPerson("guardians", models.PersonRecord{Name: "X"}); err == nil {
		t.Error("AddPerson to an unknown list succeeded, want error")
	}
}

func TestUpdateFieldRejectsListFields(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)

	if err := s.UpdateField(models.FieldExecutors, "not a list"); err == nil {
		t.Error("UpdateField on a list-valued field succeeded, want error")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := newTestSession(t, models.DocumentTypeWill)
	fillPersonal(t, s)
	s.Next()

	draft := s.Snapshot()

	// Later edits must not leak into the snapshot.
	if err := s.UpdateField("city", "Ottawa"); err != nil {
		t.Fatalf("UpdateField error = %v", err)
	}
	if draft.FormData.Field("city") != "Toronto" {
		t.Error("snapshot mutated by a later edit")
	}

	restored := newTestSession(t, models.DocumentTypeWill)
	restored.Restore(draft)

	if restored.CurrentStepIndex != 1 {
		t.Errorf("restored CurrentStepIndex = %d, want 1", restored.CurrentStepIndex)
	}
	if restored.FurthestStepIndex != 1 {
		t.Errorf("restored FurthestStepIndex = %d, want 1", restored.FurthestStepIndex)
	}
	if restored.FormData.Field("fullName") != "Margaret Chen" {
		t.Errorf("restored fullName = %q", restored.FormData.Field("fullName"))
	}
}
