package mapping

import "testing"

func TestResolveTeamName(t *testing.T) {
	candidates := []string{"Ipswich Town FC", "Leicester", "Sunderland AFC"}

	tests := []struct {
		name      string
		input     string
		want      string
		wantFound bool
	}{
		{name: "exact match", input: "Sunderland AFC", want: "Sunderland AFC", wantFound: true},
		{name: "alias match", input: "Leicester City", want: "Leicester", wantFound: true},
		{name: "token overlap", input: "Ipswich Town", want: "Ipswich Town FC", wantFound: true},
		{name: "no match", input: "Plymouth Argyle", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ResolveTeamName(tt.input, candidates)
			if found != tt.wantFound {
				t.Fatalf("expected found=%v, got %v", tt.wantFound, found)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveTeamName_TokenFallbackIsDeterministic(t *testing.T) {
	// Both candidates share the "united" token; the sorted-first one
	// must win every time.
	candidates := []string{"Leeds United FC", "Sheffield United FC"}

	for i := 0; i < 20; i++ {
		got, found := ResolveTeamName("West United", candidates)
		if !found || got != "Leeds United FC" {
			t.Fatalf("expected deterministic first candidate, got %q found=%v", got, found)
		}
	}
}
