package logging

import (
	"log/slog"
	"testing"
)

func TestRingHandlerBoundedCapacity(t *testing.T) {
	h := NewRingHandler(3, slog.LevelDebug)
	logger := slog.New(h)
	for i := 0; i < 10; i++ {
		logger.Info("tick", "i", i)
	}
	snap := h.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len(snap) = %d, want 3", len(snap))
	}
	if snap[len(snap)-1].Attrs["i"] != int64(9) && snap[len(snap)-1].Attrs["i"] != 9 {
		t.Fatalf("expected most recent record last, got %+v", snap[len(snap)-1])
	}
}

func TestRingHandlerRespectsLevel(t *testing.T) {
	h := NewRingHandler(10, slog.LevelWarn)
	logger := slog.New(h)
	logger.Info("should be dropped")
	logger.Warn("should be kept")
	snap := h.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("len(snap) = %d, want 1", len(snap))
	}
}

func TestWithAttrsMergesIntoEachRecord(t *testing.T) {
	h := NewRingHandler(10, slog.LevelDebug)
	logger := slog.New(h).With("buffer", "trades.csv")
	logger.Info("ran query")
	snap := h.Snapshot()
	if snap[0].Attrs["buffer"] != "trades.csv" {
		t.Fatalf("expected With-attrs to be merged, got %+v", snap[0].Attrs)
	}
}
