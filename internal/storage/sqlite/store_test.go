package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/redreef/alphaflow/internal/models"
)

func testState(ticker string) *models.PipelineState {
	return &models.PipelineState{
		Ticker:    ticker,
		StartDate: "2024-01-01",
		EndDate:   "2024-06-01",
		Assessment: &models.RiskAssessment{
			MaxPositionSize: 12500,
			RiskScore:       4,
			TradingAction:   "reduce",
		},
		Decision: &models.TradingDecision{
			Action:     "hold",
			Quantity:   0,
			Confidence: 70,
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRun(ctx, "run-1", testState("AAPL")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := store.SaveRun(ctx, "run-2", testState("MSFT")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := store.ListRuns(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	got := runs[0]
	if got.RiskScore != 4 || got.TradingAction != "reduce" || got.DecisionAction != "hold" {
		t.Errorf("round trip mangled record: %+v", got)
	}
	if got.AssessmentJSON == "" || got.DecisionJSON == "" {
		t.Error("serialized payloads missing")
	}
}

func TestListRunsFiltersByTicker(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRun(ctx, "run-1", testState("AAPL")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := store.SaveRun(ctx, "run-2", testState("MSFT")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := store.ListRuns(ctx, "aapl", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Ticker != "AAPL" {
		t.Fatalf("filter failed: %+v", runs)
	}
}

func TestSaveRunRejectsIncompleteState(t *testing.T) {
	store := openTestStore(t)

	state := testState("AAPL")
	state.Decision = nil
	if err := store.SaveRun(context.Background(), "run-x", state); err == nil {
		t.Fatal("incomplete state accepted")
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SaveRun(ctx, "run-1", testState("AAPL")); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := store.SaveRun(ctx, "run-1", testState("AAPL")); err == nil {
		t.Fatal("duplicate run id accepted")
	}
}
