package matching

import (
	"context"
	"testing"
)

type fakeSearch struct {
	results map[string][]Candidate
	queries []string
	limits  []int
}

func (f *fakeSearch) search(_ context.Context, query string, limit int) []Candidate {
	f.queries = append(f.queries, query)
	f.limits = append(f.limits, limit)
	return f.results[query]
}

func TestFindBestMatchPoolsAcrossQueries(t *testing.T) {
	fake := &fakeSearch{results: map[string][]Candidate{
		"Rema Calm Down": {
			{ID: "weak", Name: "Calm", Artists: []string{"Someone"}, Popularity: 10},
		},
		"Calm Down Rema": {
			{ID: "strong", Name: "Calm Down", Artists: []string{"Rema"}, Popularity: 80},
		},
	}}
	selector := NewSelector(fake.search)

	queries := []string{"Rema Calm Down", "Calm Down Rema", "Rema - Calm Down"}
	best, ok := selector.FindBestMatch(context.Background(), queries, "Rema - Calm Down")
	if !ok {
		t.Fatal("expected a match")
	}
	if best.ID != "strong" {
		t.Fatalf("expected strong candidate, got %q", best.ID)
	}
	if len(fake.queries) != len(queries) {
		t.Fatalf("expected every query to run, got %v", fake.queries)
	}
	for i, q := range queries {
		if fake.queries[i] != q {
			t.Fatalf("query %d ran out of order: %v", i, fake.queries)
		}
		if fake.limits[i] != DefaultFanOut {
			t.Fatalf("expected fan-out %d, got %d", DefaultFanOut, fake.limits[i])
		}
	}
}

func TestFindBestMatchRejectsBelowThreshold(t *testing.T) {
	fake := &fakeSearch{results: map[string][]Candidate{
		"q": {{ID: "popular", Name: "Unrelated", Artists: []string{"Nobody"}, Popularity: 100}},
	}}
	selector := NewSelector(fake.search)
	if _, ok := selector.FindBestMatch(context.Background(), []string{"q"}, "Rema Calm Down"); ok {
		t.Fatal("expected no match below threshold")
	}
}

func TestFindBestMatchRejectsScoreEqualToThreshold(t *testing.T) {
	candidate := Candidate{ID: "edge", Name: "Calm Down", Artists: []string{"Rema"}, Popularity: 50}
	original := "Rema - Calm Down"
	fake := &fakeSearch{results: map[string][]Candidate{"q": {candidate}}}

	score := Score(candidate, original)
	if _, ok := NewSelector(fake.search, WithThreshold(score)).FindBestMatch(context.Background(), []string{"q"}, original); ok {
		t.Fatalf("expected no match when best score %v equals threshold", score)
	}
	best, ok := NewSelector(fake.search, WithThreshold(score-0.01)).FindBestMatch(context.Background(), []string{"q"}, original)
	if !ok || best.ID != "edge" {
		t.Fatalf("expected match just above threshold, got %+v ok=%v", best, ok)
	}
}

func TestFindBestMatchEmptyResults(t *testing.T) {
	fake := &fakeSearch{}
	selector := NewSelector(fake.search)
	if _, ok := selector.FindBestMatch(context.Background(), []string{"a", "b"}, "anything"); ok {
		t.Fatal("expected no match when search returns nothing")
	}
	if len(fake.queries) != 2 {
		t.Fatalf("expected both queries attempted, got %v", fake.queries)
	}
}

func TestFindBestMatchTieKeepsDiscoveryOrder(t *testing.T) {
	twin := Candidate{Name: "Last Last", Artists: []string{"Burna Boy"}, Popularity: 70}
	first := twin
	first.ID = "first"
	second := twin
	second.ID = "second"
	fake := &fakeSearch{results: map[string][]Candidate{
		"one": {first},
		"two": {second},
	}}
	selector := NewSelector(fake.search)
	best, ok := selector.FindBestMatch(context.Background(), []string{"one", "two"}, "Burna Boy - Last Last")
	if !ok {
		t.Fatal("expected a match")
	}
	if best.ID != "first" {
		t.Fatalf("expected first-discovered candidate on tie, got %q", best.ID)
	}
}

func TestSelectorOptions(t *testing.T) {
	fake := &fakeSearch{results: map[string][]Candidate{
		"q": {{ID: "x", Name: "Unrelated", Popularity: 100}},
	}}
	selector := NewSelector(fake.search, WithThreshold(0.1), WithFanOut(3), WithFanOut(0), WithLogger(nil))
	if selector.Threshold() != 0.1 {
		t.Fatalf("unexpected threshold %v", selector.Threshold())
	}
	best, ok := selector.FindBestMatch(context.Background(), []string{"q"}, "Rema")
	if !ok || best.ID != "x" {
		t.Fatalf("expected lowered threshold to accept, got %+v ok=%v", best, ok)
	}
	if fake.limits[0] != 3 {
		t.Fatalf("expected fan-out 3, got %d", fake.limits[0])
	}
}

func TestFindBestMatchStopsWhenCancelled(t *testing.T) {
	fake := &fakeSearch{}
	selector := NewSelector(fake.search)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := selector.FindBestMatch(ctx, []string{"a", "b"}, "x"); ok {
		t.Fatal("expected no match")
	}
	if len(fake.queries) != 0 {
		t.Fatalf("expected no searches after cancel, got %v", fake.queries)
	}
}

func TestRankOrdersPoolBestFirst(t *testing.T) {
	fake := &fakeSearch{results: map[string][]Candidate{
		"a": {{ID: "weak", Name: "Calm", Artists: []string{"Someone"}, Popularity: 10}},
		"b": {{ID: "strong", Name: "Calm Down", Artists: []string{"Rema"}, Popularity: 80}},
	}}
	ranked := NewSelector(fake.search).Rank(context.Background(), []string{"a", "b"}, "Rema - Calm Down")
	if len(ranked) != 2 {
		t.Fatalf("expected both candidates pooled, got %d", len(ranked))
	}
	if ranked[0].ID != "strong" || ranked[1].ID != "weak" {
		t.Fatalf("unexpected order: %q, %q", ranked[0].ID, ranked[1].ID)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Fatalf("expected descending scores, got %v then %v", ranked[0].Score, ranked[1].Score)
	}
}
