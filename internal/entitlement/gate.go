// Package entitlement decides whether another recipe may be added to the library.
package entitlement

import "fmt"

// DefaultFreeLimit is the number of recipes a free library may hold.
const DefaultFreeLimit = 20

// Decision is the answer of a Gate.
type Decision struct {
	CanAdd bool
	Reason string
}

// Gate is consulted before an import with the current library size.
type Gate interface {
	CanAddRecette(currentCount int) Decision
}

// QuotaGate allows up to Limit recipes unless Premium is set.
type QuotaGate struct {
	Limit   int
	Premium bool
}

// NewQuotaGate returns a gate with the given limit. A limit of zero or less uses DefaultFreeLimit.
func NewQuotaGate(limit int, premium bool) QuotaGate {
	if limit <= 0 {
		limit = DefaultFreeLimit
	}
	return QuotaGate{Limit: limit, Premium: premium}
}

func (g QuotaGate) CanAddRecette(currentCount int) Decision {
	if g.Premium {
		return Decision{CanAdd: true}
	}
	if currentCount >= g.Limit {
		return Decision{
			CanAdd: false,
			Reason: fmt.Sprintf("free library limit reached (%d recipes)", g.Limit),
		}
	}
	return Decision{CanAdd: true}
}

// Unlimited never refuses.
type Unlimited struct{}

func (Unlimited) CanAddRecette(int) Decision {
	return Decision{CanAdd: true}
}
