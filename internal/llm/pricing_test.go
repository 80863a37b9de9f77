package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		found bool
	}{
		{"gpt-4o-2024-08-06", true},
		{"openai/gpt-4o-2024-08-06", true},
		{"claude-sonnet-4-20250514", true},
		{"gemini-2.5-flash", true},
		{"mock", false},
		{"meta-llama/llama-3-8b", false},
	}
	for _, tt := range tests {
		if got := LookupCost(tt.model); (got != nil) != tt.found {
			t.Errorf("LookupCost(%q) found = %v, want %v", tt.model, got != nil, tt.found)
		}
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 2.5, OutputPerMTok: 10}
	got := c.Cost(1_000_000, 500_000)
	if math.Abs(got-7.5) > 1e-9 {
		t.Fatalf("Cost() = %v, want 7.5", got)
	}
	if c.Cost(0, 0) != 0 {
		t.Fatal("expected zero cost for zero tokens")
	}
}
