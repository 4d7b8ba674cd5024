package dates

import (
	"errors"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(Layout, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return parsed
}

func TestResolveBothProvided(t *testing.T) {
	w, err := Resolve("2023-01-01", "2023-01-07", mustTime(t, "2024-06-15"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.Start != "2023-01-01" || w.End != "2023-01-07" {
		t.Fatalf("got %+v, want 2023-01-01..2023-01-07", w)
	}
}

func TestResolveDefaultsBothEmpty(t *testing.T) {
	w, err := Resolve("", "", mustTime(t, "2024-06-15"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.End != "2024-06-14" {
		t.Errorf("end = %s, want yesterday 2024-06-14", w.End)
	}
	if w.Start != "2023-06-15" {
		t.Errorf("start = %s, want end-365d 2023-06-15", w.Start)
	}
}

func TestResolveDefaultStartFromProvidedEnd(t *testing.T) {
	w, err := Resolve("", "2023-01-07", mustTime(t, "2024-06-15"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.End != "2023-01-07" {
		t.Errorf("end = %s, want 2023-01-07", w.End)
	}
	if w.Start != "2022-01-07" {
		t.Errorf("start = %s, want 2022-01-07", w.Start)
	}
}

func TestResolveClampsFutureEnd(t *testing.T) {
	w, err := Resolve("", "2099-01-01", mustTime(t, "2024-06-15"))
	if err != nil {
		t.Fatalf("future end must clamp, not error: %v", err)
	}
	if w.End != "2024-06-14" {
		t.Errorf("end = %s, want clamped 2024-06-14", w.End)
	}
	// start defaults from the clamped end, not the supplied one
	if w.Start != "2023-06-15" {
		t.Errorf("start = %s, want 2023-06-15", w.Start)
	}
}

func TestResolveStartAfterEnd(t *testing.T) {
	_, err := Resolve("2024-01-10", "2024-01-05", mustTime(t, "2024-06-15"))
	if !errors.Is(err, ErrStartAfterEnd) {
		t.Fatalf("got %v, want ErrStartAfterEnd", err)
	}
}

func TestResolveStartAfterClampedEnd(t *testing.T) {
	// An explicit start beyond yesterday collides with the clamped end.
	_, err := Resolve("2024-07-01", "2099-01-01", mustTime(t, "2024-06-15"))
	if !errors.Is(err, ErrStartAfterEnd) {
		t.Fatalf("got %v, want ErrStartAfterEnd", err)
	}
}

func TestResolveFormatErrors(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		field string
	}{
		{"slash separated start", "2023/01/01", "2023-01-07", "start_date"},
		{"garbage end", "2023-01-01", "next tuesday", "end_date"},
		{"impossible calendar day", "2023-02-30", "2023-03-07", "start_date"},
		{"impossible end day", "2023-01-01", "2023-04-31", "end_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.start, tc.end, mustTime(t, "2024-06-15"))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("got %v, want FormatError", err)
			}
			if fe.Field != tc.field {
				t.Errorf("field = %s, want %s", fe.Field, tc.field)
			}
		})
	}
}

func TestResolveFormatCheckedBeforeOrder(t *testing.T) {
	// A malformed start fails as a format error even when the range would
	// also be inverted.
	_, err := Resolve("2024/01/10", "2024-01-05", mustTime(t, "2024-06-15"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want FormatError before range check", err)
	}
}

func TestResolveDeterministic(t *testing.T) {
	now := mustTime(t, "2024-06-15")
	first, err := Resolve("", "", now)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Resolve("", "", now)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if again != first {
			t.Fatalf("resolution not deterministic: %+v vs %+v", again, first)
		}
	}
}
