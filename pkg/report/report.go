package report

import (
	"fmt"
	"io"
	"math"
)

// Tier is the commentary bracket of a predicted price.
type Tier int

const (
	TierAffordable Tier = iota
	TierAboveAverage
	TierLuxury
)

// Thresholds in units of 10,000 TWD. A price equal to a threshold belongs to
// the lower tier.
const (
	LuxuryAbove       = 6000.0
	AboveAverageAbove = 3000.0
)

func (t Tier) String() string {
	switch t {
	case TierLuxury:
		return "luxury"
	case TierAboveAverage:
		return "above_average"
	default:
		return "affordable"
	}
}

// Message is the comment printed for the tier.
func (t Tier) Message() string {
	switch t {
	case TierLuxury:
		return "💎 哇！豪宅等級，適合投資！"
	case TierAboveAverage:
		return "✨ 價格中上，位置可能不錯唷～"
	default:
		return "💡 這價格滿實惠的，可以考慮看看！"
	}
}

// Classify puts price into exactly one tier.
func Classify(price float64) Tier {
	switch {
	case price > LuxuryAbove:
		return TierLuxury
	case price > AboveAverageAbove:
		return TierAboveAverage
	default:
		return TierAffordable
	}
}

// Round rounds half to even, so 2.5 becomes 2.
func Round(price float64) int64 {
	return int64(math.RoundToEven(price))
}

// Render writes the result block for price to w.
func Render(w io.Writer, price float64) error {
	_, err := fmt.Fprintf(w, "\n📢 預測結果來囉～\n🏡 這間房子的預測總價是：%d 萬元\n%s\n",
		Round(price), Classify(price).Message())
	return err
}
