package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		price float64
		want  Tier
	}{
		{8000, TierLuxury},
		{6000.01, TierLuxury},
		{6000, TierAboveAverage},
		{3000.01, TierAboveAverage},
		{3000, TierAffordable},
		{2999.99, TierAffordable},
		{0, TierAffordable},
		{-10, TierAffordable},
	}
	for _, tt := range tests {
		if got := Classify(tt.price); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{2.5, 2},
		{3.5, 4},
		{2871.4, 2871},
		{2871.6, 2872},
		{-0.5, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		price float64
		want  []string
	}{
		{6500.4, []string{"預測總價是：6500 萬元", TierLuxury.Message()}},
		{4200, []string{"4200 萬元", TierAboveAverage.Message()}},
		{1830.5, []string{"1830 萬元", TierAffordable.Message()}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Render(&buf, tt.price); err != nil {
			t.Fatal(err)
		}
		for _, w := range tt.want {
			if !strings.Contains(buf.String(), w) {
				t.Errorf("Render(%v) = %q, missing %q", tt.price, buf.String(), w)
			}
		}
	}
}

func TestTierMessagesDistinct(t *testing.T) {
	seen := map[string]Tier{}
	for _, tier := range []Tier{TierAffordable, TierAboveAverage, TierLuxury} {
		if prev, ok := seen[tier.Message()]; ok {
			t.Errorf("%v and %v share a message", prev, tier)
		}
		seen[tier.Message()] = tier
	}
}
