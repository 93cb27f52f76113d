package m_booking_option

// Field name constants for the booking_options table (interleaved in bookings).
const (
	TableName = "booking_options"

	BookingID = "booking_id"
	OptionID  = "option_id"
	Label     = "label"
	Quantity  = "quantity"
	UnitPrice = "unit_price"
	Total     = "total"
)
