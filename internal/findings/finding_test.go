package findings

import (
	"strings"
	"testing"
)

func TestDedupKey_BoundedPrefix(t *testing.T) {
	long := strings.Repeat("a", 80)
	a := Finding{Repository: "org/repo", FilePath: "conf/.env", Finding: long}
	b := Finding{Repository: "org/repo", FilePath: "conf/.env", Finding: long[:50] + "different tail"}

	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("expected identical keys for findings sharing a 50-char prefix")
	}

	c := Finding{Repository: "org/other", FilePath: "conf/.env", Finding: long}
	if a.DedupKey() == c.DedupKey() {
		t.Fatalf("expected different keys for different repositories")
	}
}

func TestDeduplicate_KeepsFirstOccurrence(t *testing.T) {
	list := []Finding{
		{Repository: "org/repo", FilePath: "a.env", Finding: "password=x", RiskScore: 7.5},
		{Repository: "org/repo", FilePath: "a.env", Finding: "password=x", RiskScore: 9.9},
		{Repository: "org/repo", FilePath: "b.env", Finding: "password=x", RiskScore: 8.0},
	}

	unique := Deduplicate(list)
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique findings, got %d", len(unique))
	}
	if unique[0].RiskScore != 7.5 {
		t.Fatalf("expected the first occurrence to survive, got score %v", unique[0].RiskScore)
	}
}

func TestSortByRiskScore_StableForTies(t *testing.T) {
	list := []Finding{
		{Repository: "first", RiskScore: 7.5},
		{Repository: "second", RiskScore: 9.0},
		{Repository: "third", RiskScore: 7.5},
	}

	SortByRiskScore(list)

	if list[0].Repository != "second" {
		t.Fatalf("expected highest score first, got %q", list[0].Repository)
	}
	if list[1].Repository != "first" || list[2].Repository != "third" {
		t.Fatalf("expected ties to keep input order, got %q then %q", list[1].Repository, list[2].Repository)
	}
}

func TestTruncate(t *testing.T) {
	list := make([]Finding, 25)
	if got := len(Truncate(list, 20)); got != 20 {
		t.Fatalf("expected 20 findings after truncation, got %d", got)
	}
	if got := len(Truncate(list[:3], 20)); got != 3 {
		t.Fatalf("expected short lists untouched, got %d", got)
	}
}

func TestMaxRiskScore(t *testing.T) {
	if got := MaxRiskScore(nil); got != 0.0 {
		t.Fatalf("expected 0.0 for an empty list, got %v", got)
	}
	list := []Finding{{RiskScore: 3.0}, {RiskScore: 9.2}, {RiskScore: 7.5}}
	if got := MaxRiskScore(list); got != 9.2 {
		t.Fatalf("expected 9.2, got %v", got)
	}
}
