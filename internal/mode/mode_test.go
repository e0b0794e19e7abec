package mode

import "testing"

type recordingCleanup struct {
	searchCleared, filterCleared, fuzzyCleared, columnSearchCleared int
}

func (r *recordingCleanup) ClearSearch()       { r.searchCleared++ }
func (r *recordingCleanup) ClearFilter()       { r.filterCleared++ }
func (r *recordingCleanup) ClearFuzzyFilter()  { r.fuzzyCleared++ }
func (r *recordingCleanup) ClearColumnSearch() { r.columnSearchCleared++ }

// S6: leaving a mode clears only that mode's own state.
func TestExitClearsOnlyLeavingModesState(t *testing.T) {
	c := NewCoordinator()
	r := &recordingCleanup{}

	c.Enter(Filter, r)
	c.Enter(FuzzyFilter, r) // leaving Filter clears filter state
	if r.filterCleared != 1 {
		t.Fatalf("filterCleared = %d, want 1", r.filterCleared)
	}
	if r.fuzzyCleared != 0 {
		t.Fatalf("fuzzyCleared = %d, want 0 (FuzzyFilter just entered, not left)", r.fuzzyCleared)
	}

	c.Exit(r) // leaving FuzzyFilter clears fuzzy state only
	if r.fuzzyCleared != 1 {
		t.Fatalf("fuzzyCleared = %d, want 1", r.fuzzyCleared)
	}
	if r.filterCleared != 1 {
		t.Fatalf("filterCleared should stay 1, got %d", r.filterCleared)
	}
	if c.Current() != Results {
		t.Fatalf("Current = %v, want Results", c.Current())
	}
}

func TestOverlayModesReturnToPriorMode(t *testing.T) {
	c := NewCoordinator()
	r := &recordingCleanup{}

	c.Enter(Search, r)
	c.Enter(Help, r) // overlay: pushes Search onto the return-stack
	if c.Current() != Help {
		t.Fatalf("Current = %v, want Help", c.Current())
	}
	c.Exit(r) // pops back to Search, not Results
	if c.Current() != Search {
		t.Fatalf("Current = %v, want Search (restored from return-stack)", c.Current())
	}
}

func TestNestedOverlays(t *testing.T) {
	c := NewCoordinator()
	r := &recordingCleanup{}

	c.Enter(History, r)
	c.Enter(Debug, r)
	c.Enter(Help, r)
	c.Exit(r)
	if c.Current() != Debug {
		t.Fatalf("Current = %v, want Debug", c.Current())
	}
	c.Exit(r)
	if c.Current() != History {
		t.Fatalf("Current = %v, want History", c.Current())
	}
	c.Exit(r)
	if c.Current() != Results {
		t.Fatalf("Current = %v, want Results", c.Current())
	}
}
