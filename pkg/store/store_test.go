package store_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rxpad/pkg/letterhead"
	"github.com/goliatone/go-rxpad/pkg/prescription"
	"github.com/goliatone/go-rxpad/pkg/store"
)

func TestNew_StartsEmpty(t *testing.T) {
	s := store.New()
	snap := s.Snapshot()
	if diff := cmp.Diff(prescription.Empty(), snap.Prescription); diff != "" {
		t.Fatalf("initial prescription mismatch (-want +got):\n%s", diff)
	}
	if !snap.Letterhead.IsZero() || snap.Version != 0 {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	s := store.New()
	s.LoadSample()

	snap := s.Snapshot()
	snap.Prescription.Medicines[0].Name = "mutated"

	if got := s.Prescription().Medicines[0].Name; got != "Metformin" {
		t.Fatalf("store state leaked through snapshot, got %q", got)
	}
}

func TestUpdate_ReplacesWholeValue(t *testing.T) {
	s := store.New()
	before := s.Snapshot()

	after, err := s.Update(func(d prescription.Data) (prescription.Data, error) {
		return prescription.SetField(d, prescription.FieldPatientName, "Ada")
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if after.Prescription.Name != "Ada" || after.Version != before.Version+1 {
		t.Fatalf("unexpected snapshot: %+v", after)
	}
	if before.Prescription.Name != "" {
		t.Fatalf("earlier snapshot changed")
	}
}

func TestUpdate_FailureKeepsState(t *testing.T) {
	s := store.New()
	s.LoadSample()
	before := s.Snapshot()

	boom := errors.New("boom")
	_, err := s.Update(func(d prescription.Data) (prescription.Data, error) {
		d.Name = "half-applied"
		return d, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Fatalf("state changed after failed update (-want +got):\n%s", diff)
	}
}

func TestResetAndSample(t *testing.T) {
	s := store.New()
	if diff := cmp.Diff(prescription.Sample(), s.LoadSample().Prescription); diff != "" {
		t.Fatalf("sample mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(prescription.Empty(), s.Reset().Prescription); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
}

func TestLetterheadSlots(t *testing.T) {
	s := store.New()

	s.SetHeader("<h1>H</h1>")
	s.SetFooter("<p>F</p>")
	if got := s.Letterhead(); got.Header != "<h1>H</h1>" || got.Footer != "<p>F</p>" {
		t.Fatalf("unexpected letterhead: %+v", got)
	}

	s.ApplyLetterhead(letterhead.SetSlot(letterhead.SlotHeader, "<h1>H2</h1>"))
	if got := s.Letterhead(); got.Header != "<h1>H2</h1>" || got.Footer != "<p>F</p>" {
		t.Fatalf("slot update leaked into the other slot: %+v", got)
	}

	s.SetLetterhead(letterhead.Default())
	if got := s.Letterhead(); got != letterhead.Default() {
		t.Fatalf("default not applied: %+v", got)
	}

	if !s.ClearLetterhead().Letterhead.IsZero() {
		t.Fatalf("clear left content behind")
	}
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	s := store.New()

	var kinds []store.ChangeKind
	s.Subscribe(func(c store.Change) {
		kinds = append(kinds, c.Kind)
	})

	s.LoadSample()
	s.SetHeader("h")

	want := []store.ChangeKind{store.ChangePrescription, store.ChangeLetterhead}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("change kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentSlotWritesAreLastWriterWins(t *testing.T) {
	s := store.New()

	var wg sync.WaitGroup
	for _, html := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			s.SetHeader(v)
		}(html)
	}
	wg.Wait()

	got := s.Letterhead().Header
	switch got {
	case "a", "b", "c", "d":
	default:
		t.Fatalf("header should hold one of the written values, got %q", got)
	}
	if v := s.Snapshot().Version; v != 4 {
		t.Fatalf("expected 4 versions, got %d", v)
	}
}
