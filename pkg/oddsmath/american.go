package oddsmath

import (
	"fmt"
	"sort"

	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}

	return (100.0 / float64(-american)) + 1.0, nil
}

// AmericanToMultiplier returns the gross payout per unit stake for a price.
// A missing or zero price has no market and yields the 0 sentinel.
func AmericanToMultiplier(price models.NullInt) float64 {
	if !price.Valid || price.Int == 0 {
		return 0
	}

	multiplier, err := AmericanToDecimal(price.Int)
	if err != nil {
		return 0
	}
	return multiplier
}

// BestPrice returns the bookmaker quoting the largest American price for a
// team. Null prices are ignored; equal prices resolve to the smallest
// bookmaker id so the result does not depend on map order.
func BestPrice(odds map[string]models.NullInt) (book string, price int, ok bool) {
	books := make([]string, 0, len(odds))
	for b := range odds {
		books = append(books, b)
	}
	sort.Strings(books)

	for _, b := range books {
		p := odds[b]
		if !p.Valid || p.Int == 0 {
			continue
		}
		if !ok || p.Int > price {
			book, price, ok = b, p.Int, true
		}
	}

	return book, price, ok
}
