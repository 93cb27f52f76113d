package m_service_option

// Field name constants for the service_options table (interleaved in services).
const (
	TableName = "service_options"

	ServiceID  = "service_id"
	OptionID   = "option_id"
	Label      = "label"
	UnitPrice  = "unit_price"
	IsVariable = "is_variable"
	MinQty     = "min_qty"
	MaxQty     = "max_qty"
	IsActive   = "is_active"
)
