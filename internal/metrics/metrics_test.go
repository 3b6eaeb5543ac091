package metrics

import (
	"math"
	"testing"
)

func TestQuality_NoLines(t *testing.T) {
	q := Quality(0, 0)
	if q.Score != 100 {
		t.Errorf("expected score 100 for zero lines, got %v", q.Score)
	}
	if q.IssuesPerKLOC != 0 || q.IssueRatePerMille != 0 {
		t.Errorf("expected zero density figures, got %v / %v", q.IssuesPerKLOC, q.IssueRatePerMille)
	}

	// Issues without lines still score 100; no code means no problems.
	q = Quality(7, 0)
	if q.Score != 100 {
		t.Errorf("expected score 100, got %v", q.Score)
	}
}

func TestQuality_Density(t *testing.T) {
	tests := []struct {
		name      string
		issues    int
		lines     int
		wantKLOC  float64
		wantScore float64
	}{
		{"clean code", 0, 1000, 0, 100},
		{"one per kloc", 1, 1000, 1, 98},
		{"scenario from report", 3, 140, 21.43, 57.14},
		{"floored at zero", 100, 1000, 100, 0},
		{"well past floor", 1000, 100, 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Quality(tt.issues, tt.lines)
			if q.IssuesPerKLOC != tt.wantKLOC {
				t.Errorf("IssuesPerKLOC = %v, want %v", q.IssuesPerKLOC, tt.wantKLOC)
			}
			if q.IssueRatePerMille != tt.wantKLOC {
				t.Errorf("IssueRatePerMille = %v, want %v", q.IssueRatePerMille, tt.wantKLOC)
			}
			if q.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", q.Score, tt.wantScore)
			}
		})
	}
}

func TestQuality_Monotonic(t *testing.T) {
	const lines = 500
	prev := math.Inf(1)
	for issues := 0; issues <= 300; issues += 10 {
		score := Quality(issues, lines).Score
		if score > prev {
			t.Fatalf("score increased from %v to %v at %d issues", prev, score, issues)
		}
		if score < 0 || score > 100 {
			t.Fatalf("score %v out of [0,100] at %d issues", score, issues)
		}
		prev = score
	}
}

func TestQuantityScore_Tiers(t *testing.T) {
	tests := []struct {
		lines int
		avg   float64
		want  float64
	}{
		{200, 100, 100},  // ratio 2.0 inclusive
		{199, 100, 90},   // just under 2.0
		{150, 100, 90},   // ratio 1.5 inclusive
		{100, 100, 80},   // ratio 1.0 inclusive
		{80, 100, 70},    // ratio 0.8 inclusive
		{60, 100, 60},    // ratio 0.6 inclusive
		{40, 100, 50},    // ratio 0.4 inclusive
		{20, 100, 40},    // ratio 0.2 inclusive
		{19, 100, 30},    // below lowest tier
		{0, 100, 30},     // no volume at all
		{1000, 100, 100}, // far above cohort
	}

	for _, tt := range tests {
		if got := QuantityScore(tt.lines, tt.avg); got != tt.want {
			t.Errorf("QuantityScore(%d, %v) = %v, want %v", tt.lines, tt.avg, got, tt.want)
		}
	}
}

func TestQuantityScore_ZeroAverage(t *testing.T) {
	if got := QuantityScore(500, 0); got != 50 {
		t.Errorf("expected neutral 50 for zero average, got %v", got)
	}
}

func TestQuantityScore_FixedTierValues(t *testing.T) {
	valid := map[float64]bool{30: true, 40: true, 50: true, 60: true, 70: true, 80: true, 90: true, 100: true}
	for lines := 0; lines <= 400; lines += 7 {
		got := QuantityScore(lines, 137)
		if !valid[got] {
			t.Fatalf("QuantityScore(%d, 137) = %v, not a tier value", lines, got)
		}
	}
}

func TestFinalScore(t *testing.T) {
	tests := []struct {
		quality  float64
		quantity float64
		want     float64
	}{
		{57.14, 80, 61.71},
		{100, 100, 100},
		{0, 0, 0},
		{0, 100, 20}, // volume alone cannot rescue a bad score
		{100, 30, 86},
		{33.33, 50, 36.66},
	}

	for _, tt := range tests {
		if got := FinalScore(tt.quality, tt.quantity); got != tt.want {
			t.Errorf("FinalScore(%v, %v) = %v, want %v", tt.quality, tt.quantity, got, tt.want)
		}
	}
}
