package balance

import (
	"time"

	"github.com/walletwise/backend/internal/models"
)

// incomeLikeTypes is the closed set of posting types that add to a balance.
// "salary" behaves exactly like "income"; keep this set explicit rather than
// inferring it from direction alone.
var incomeLikeTypes = map[string]bool{
	models.PostingTypeIncome: true,
	models.PostingTypeSalary: true,
}

// qualifies decides whether a posting takes part in the balance sum:
// credit-card-linked postings never move the account directly, and postings
// dated strictly after now are excluded until they become due.
func qualifies(p *models.Posting, now time.Time) bool {
	if p.CreditCardID != "" {
		return false
	}
	if p.Date.After(now) {
		return false
	}
	return true
}

// signedAmount maps a qualifying posting to its contribution. Transfer legs
// follow their recorded direction; plain transactions follow their type, with
// the direction field as fallback for anything unrecognized.
func signedAmount(p *models.Posting) float64 {
	switch {
	case p.Type == models.PostingTypeTransfer:
		if p.Direction == models.DirectionOut {
			return -p.Amount
		}
		return p.Amount
	case incomeLikeTypes[p.Type]:
		return p.Amount
	case p.Type == models.PostingTypeExpense:
		return -p.Amount
	case p.Direction == models.DirectionOut:
		return -p.Amount
	default:
		return p.Amount
	}
}
