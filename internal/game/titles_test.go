package game

import (
	"reflect"
	"testing"
)

func TestRankSuggestionsPrefixFirst(t *testing.T) {
	titles := []string{"The Dark Knight", "Dark City", "Darkman"}
	got := RankSuggestions("dark", titles, 30)
	want := []string{"Darkman", "Dark City", "The Dark Knight"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRankSuggestionsEarlierMatchWins(t *testing.T) {
	titles := []string{"A Very Long Alien Story", "An Alien Tale"}
	got := RankSuggestions("alien", titles, 30)
	if len(got) != 2 || got[0] != "An Alien Tale" {
		t.Fatalf("got %v", got)
	}
}

func TestRankSuggestionsShortQueryPrefixOnly(t *testing.T) {
	titles := []string{"Up", "Cup of Tea", "Upgrade"}
	got := RankSuggestions("up", titles, 30)
	want := []string{"Up", "Upgrade"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRankSuggestionsDropsNumericTitles(t *testing.T) {
	titles := []string{"12 Angry Men", "Angry Birds"}
	if got := RankSuggestions("angry", titles, 30); len(got) != 1 || got[0] != "Angry Birds" {
		t.Fatalf("got %v", got)
	}
	if got := RankSuggestions("12 angry", titles, 30); len(got) != 1 || got[0] != "12 Angry Men" {
		t.Fatalf("numeric query should keep numeric titles: %v", got)
	}
}

func TestRankSuggestionsDedupeAndLimit(t *testing.T) {
	titles := []string{"Alien", "alien", "Aliens", "Alien 3", "Alienator"}
	got := RankSuggestions("alien", titles, 2)
	if len(got) != 2 {
		t.Fatalf("limit not applied: %v", got)
	}
	if got[0] != "Alien" {
		t.Fatalf("exact prefix match should rank first: %v", got)
	}
}

func TestRankSuggestionsEmptyQuery(t *testing.T) {
	if got := RankSuggestions("   ", []string{"Alien"}, 30); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestAcademyAwardSummary(t *testing.T) {
	cases := map[string]string{
		"": "",
		"Nominated for 3 BAFTA Awards":  "",
		"Won 2 Oscars. Another 5 wins.": "This movie won 2 Oscars",
		"Won 1 Oscar. 12 wins total.":   "This movie won 1 Oscar",
		"Won an Oscar for Best Visual Effects. Another 4 wins.": "This movie won an Oscar for Best Visual Effects",
		"Nominated for 2 Oscars. 9 wins & 30 nominations total.": "Nominated for 2 Oscars. 9 wins & 30 nominations total.",
	}
	for in, want := range cases {
		if got := AcademyAwardSummary(in); got != want {
			t.Fatalf("AcademyAwardSummary(%q) = %q, want %q", in, got, want)
		}
	}
}
