package hint

import (
	"errors"
	"testing"
)

func TestParse_SingleSegment(t *testing.T) {
	rec, err := Parse(`wd:Q42"Douglas Adams"@en`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.DatabaseKind != "wd" {
		t.Errorf("DatabaseKind = %q, want %q", rec.DatabaseKind, "wd")
	}
	if rec.DatabaseID != "Q42" {
		t.Errorf("DatabaseID = %q, want %q", rec.DatabaseID, "Q42")
	}
	if len(rec.Pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(rec.Pairs))
	}
	if rec.Pairs[0] != (NamePair{Name: "Douglas Adams", Language: "en"}) {
		t.Errorf("Pairs[0] = %+v", rec.Pairs[0])
	}
	if rec.PrimaryName() != "Douglas Adams" {
		t.Errorf("PrimaryName = %q", rec.PrimaryName())
	}
}

func TestParse_MultiSegmentOrdering(t *testing.T) {
	rec, err := Parse(`wd:Q5"A"@en/"B"@de`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []NamePair{{"A", "en"}, {"B", "de"}}
	if len(rec.Pairs) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(rec.Pairs), len(want))
	}
	for i := range want {
		if rec.Pairs[i] != want[i] {
			t.Errorf("Pairs[%d] = %+v, want %+v", i, rec.Pairs[i], want[i])
		}
	}
	if rec.PrimaryName() != "A" {
		t.Errorf("PrimaryName = %q, want %q", rec.PrimaryName(), "A")
	}
}

func TestParse_TrimsSegmentWhitespace(t *testing.T) {
	rec, err := Parse(`wd:Q42"A"@en / "B"@de `)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Pairs[1].Name != "B" || rec.Pairs[1].Language != "de" {
		t.Errorf("Pairs[1] = %+v", rec.Pairs[1])
	}
}

func TestParse_Names(t *testing.T) {
	rec, err := Parse(`wd:Q1"Universe"@en/"Universum"@de/"Univers"@fr`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"Universe", "Universum", "Univers"}
	got := rec.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParse_MissingMarkerFails(t *testing.T) {
	_, err := Parse(`"Douglas Adams"@en`)
	var merr *MalformedHintError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want MalformedHintError", err)
	}
}

func TestParse_MissingLanguageFailsClosed(t *testing.T) {
	// Second segment has a name but no language tag: the whole record
	// must fail, not yield a partially populated one.
	rec, err := Parse(`wd:Q42"A"@en/"B"`)
	if err == nil {
		t.Fatalf("Parse succeeded with %+v, want error", rec)
	}
	var merr *MalformedHintError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want MalformedHintError", err)
	}
	if rec != nil {
		t.Errorf("record should be nil on malformed input, got %+v", rec)
	}
}

func TestParse_EmptyStringFails(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("Parse(\"\") succeeded, want error")
	}
}
