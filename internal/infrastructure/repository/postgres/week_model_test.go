package postgres

import (
	"testing"
	"time"

	"github.com/MrG-Man/Acca-Tracker/internal/domain/selection"
)

func TestWeekStateTableModel_ToDomainDefaults(t *testing.T) {
	row := weekStateTableModel{
		Saturday: "2026-09-05",
		Document: []byte(`{"matches":[]}`),
	}

	state, err := row.toDomain()
	if err != nil {
		t.Fatalf("toDomain() error = %v", err)
	}
	if state.Saturday != "2026-09-05" {
		t.Fatalf("Saturday = %q, want backfilled from row", state.Saturday)
	}
	if state.Assignments == nil {
		t.Fatal("Assignments not initialized")
	}
}

func TestWeekStateTableModel_ToDomainRejectsBadDocument(t *testing.T) {
	row := weekStateTableModel{Saturday: "2026-09-05", Document: []byte("not json")}
	if _, err := row.toDomain(); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEncodeWeekDocumentRoundTrip(t *testing.T) {
	state := selection.NewWeekState("2026-09-05", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	doc, err := encodeWeekDocument(state)
	if err != nil {
		t.Fatalf("encodeWeekDocument() error = %v", err)
	}

	row := weekStateTableModel{Saturday: state.Saturday, Document: doc}
	decoded, err := row.toDomain()
	if err != nil {
		t.Fatalf("toDomain() error = %v", err)
	}
	if decoded.Saturday != state.Saturday {
		t.Fatalf("Saturday = %q, want %q", decoded.Saturday, state.Saturday)
	}
}
