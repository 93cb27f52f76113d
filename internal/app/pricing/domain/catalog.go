package domain

// Service is a bookable cleaning service together with its active options.
type Service struct {
	ID         string
	Name       string
	CategoryID string
	Options    []*ServiceOption
}

// Option returns the option with the given id, if the service offers it.
func (s *Service) Option(optionID string) (*ServiceOption, bool) {
	for _, opt := range s.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return nil, false
}

// ServiceOption is a priced add-on of a service. Variable options are charged per unit.
type ServiceOption struct {
	ID         string
	ServiceID  string
	Label      string
	UnitPrice  *Money
	IsVariable bool
	MinQty     *int64
	MaxQty     *int64
	Active     bool
}

// NewServiceOption validates and creates a ServiceOption.
func NewServiceOption(id, serviceID, label string, unitPrice *Money, isVariable bool, minQty, maxQty *int64) (*ServiceOption, error) {
	if unitPrice == nil || unitPrice.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if isVariable && minQty != nil && maxQty != nil && *minQty > *maxQty {
		return nil, ErrInvalidBounds
	}
	return &ServiceOption{
		ID:         id,
		ServiceID:  serviceID,
		Label:      label,
		UnitPrice:  unitPrice.Copy(),
		IsVariable: isVariable,
		MinQty:     minQty,
		MaxQty:     maxQty,
		Active:     true,
	}, nil
}

// Selection is one option picked by the customer. Quantity is nil when not supplied.
type Selection struct {
	OptionID string
	Quantity *int64
}

// RawQuantity is the supplied quantity, or 1 when absent.
func (s Selection) RawQuantity() int64 {
	if s.Quantity == nil {
		return 1
	}
	return *s.Quantity
}

// Qty is a helper for building optional quantities.
func Qty(n int64) *int64 {
	return &n
}
