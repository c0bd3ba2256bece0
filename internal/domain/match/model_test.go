package match

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Arsenal", "arsenal"},
		{"  Manchester   United  ", "manchester united"},
		{"LEEDS\tUNITED", "leeds united"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchID(t *testing.T) {
	t.Parallel()

	m := Match{League: "Premier League", HomeTeam: "Arsenal", AwayTeam: "Spurs"}
	if got := m.ID(); got != "premier league_arsenal_spurs" {
		t.Fatalf("ID() = %q", got)
	}

	// Formatting drift never splits identity.
	other := Match{League: " PREMIER  LEAGUE ", HomeTeam: "arsenal", AwayTeam: " SPURS"}
	if !m.SameFixture(other) {
		t.Fatalf("SameFixture() = false for %q vs %q", m.ID(), other.ID())
	}
}

func TestBTTS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		home, away int
		want       bool
	}{
		{0, 0, false},
		{1, 0, false},
		{0, 1, false},
		{1, 1, true},
		{4, 2, true},
	}
	for _, tt := range tests {
		if got := BTTS(tt.home, tt.away); got != tt.want {
			t.Fatalf("BTTS(%d, %d) = %v, want %v", tt.home, tt.away, got, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", StatusNotStarted},
		{"HT", StatusHalfTime},
		{"FT", StatusFinished},
		{"full_time", StatusFinished},
		{"in_play", StatusLive},
		{"live", StatusLive},
		{"finished", StatusFinished},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
