package booking

import "poojaseva/models"

const (
	DefaultVirtualPrice  = 1100.0
	DefaultInPersonPrice = 2100.0
)

// PriceRule reads one optional base price off a pooja.
type PriceRule struct {
	Name  string
	Price func(models.Pooja) *float64
}

var (
	virtualPriceRules = []PriceRule{
		{Name: "base_price_virtual", Price: func(p models.Pooja) *float64 { return p.BasePriceVirtual }},
	}
	inPersonPriceRules = []PriceRule{
		{Name: "base_price_in_person", Price: func(p models.Pooja) *float64 { return p.BasePriceInPerson }},
		{Name: "base_price_temple", Price: func(p models.Pooja) *float64 { return p.BasePriceTemple }},
	}
)

// Quote is a resolved price and the rule that produced it.
type Quote struct {
	Amount float64 `json:"amount"`
	Source string  `json:"source"`
}

// ResolvePrice applies the mode's rules in order. The first positive price wins;
// a missing or zero price falls through to the next rule and finally to the
// mode default.
func ResolvePrice(pooja models.Pooja, mode models.ServiceMode) Quote {
	rules, fallback := inPersonPriceRules, DefaultInPersonPrice
	if mode == models.ModeVirtual {
		rules, fallback = virtualPriceRules, DefaultVirtualPrice
	}
	for _, r := range rules {
		if v := r.Price(pooja); v != nil && *v > 0 {
			return Quote{Amount: *v, Source: r.Name}
		}
	}
	return Quote{Amount: fallback, Source: "default"}
}
