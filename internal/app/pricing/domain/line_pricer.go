package domain

import "fmt"

// OptionPolicy decides what happens to selections naming an option the service does not offer.
type OptionPolicy string

const (
	// OptionPolicyLenient skips unknown option ids.
	OptionPolicyLenient OptionPolicy = "lenient"
	// OptionPolicyStrict fails with a NotFoundError.
	OptionPolicyStrict OptionPolicy = "strict"
)

// ParseOptionPolicy maps a configuration string to an OptionPolicy.
func ParseOptionPolicy(s string) (OptionPolicy, error) {
	switch OptionPolicy(s) {
	case OptionPolicyLenient, OptionPolicyStrict:
		return OptionPolicy(s), nil
	case "":
		return OptionPolicyLenient, nil
	default:
		return "", fmt.Errorf("unknown option policy %q", s)
	}
}

// LineItem is one priced row of the breakdown.
type LineItem struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
	Quantity int64  `json:"quantity"`
	Price    *Money `json:"price"`
	Total    *Money `json:"total"`
}

// LineItems is the output of pricing a selection list.
type LineItems struct {
	Items               []LineItem
	BaseAmount          *Money
	HasMultipleQuantity bool
	// TotalQuantity sums the raw supplied quantities, used by the tiered bulk policy.
	// Negative quantities on options that ignore them contribute nothing.
	TotalQuantity int64
}

// LinePricer turns selections into priced line items.
type LinePricer struct {
	Policy        OptionPolicy
	EnforceBounds bool
}

// PriceSelections prices every selection against the service's active options.
func (lp LinePricer) PriceSelections(service *Service, selections []Selection) (*LineItems, error) {
	result := &LineItems{
		Items:      make([]LineItem, 0, len(selections)),
		BaseAmount: Zero(),
	}
	total := Zero()

	for _, sel := range selections {
		if raw := sel.RawQuantity(); raw > 0 {
			result.TotalQuantity += raw
		}

		opt, ok := service.Option(sel.OptionID)
		if !ok {
			if lp.Policy == OptionPolicyStrict {
				return nil, NewNotFoundError("option", sel.OptionID, ErrOptionNotFound)
			}
			continue
		}

		qty := int64(1)
		if opt.IsVariable {
			qty = sel.RawQuantity()
			if qty < 0 {
				return nil, NewValidationError("quantity", fmt.Sprintf("quantity for option %s cannot be negative", opt.ID))
			}
			if lp.EnforceBounds {
				if err := checkBounds(opt, qty); err != nil {
					return nil, err
				}
			}
			if qty > 1 {
				result.HasMultipleQuantity = true
			}
		}

		amount := opt.UnitPrice.MultiplyByInt(qty)
		total = total.Add(amount)
		result.Items = append(result.Items, LineItem{
			OptionID: opt.ID,
			Label:    opt.Label,
			Quantity: qty,
			Price:    opt.UnitPrice.Round2(),
			Total:    amount.Round2(),
		})
	}

	result.BaseAmount = total.Round2()
	return result, nil
}

func checkBounds(opt *ServiceOption, qty int64) error {
	if qty < 1 {
		return NewValidationError("quantity", fmt.Sprintf("quantity for %s must be at least 1", opt.Label))
	}
	if opt.MinQty != nil && qty < *opt.MinQty {
		return NewValidationError("quantity", fmt.Sprintf("quantity for %s must be at least %d", opt.Label, *opt.MinQty))
	}
	if opt.MaxQty != nil && qty > *opt.MaxQty {
		return NewValidationError("quantity", fmt.Sprintf("quantity for %s must be at most %d", opt.Label, *opt.MaxQty))
	}
	return nil
}
