package m_service

// Field name constants for the services table.
const (
	TableName = "services"

	ServiceID  = "service_id"
	Name       = "name"
	CategoryID = "category_id"
	IsActive   = "is_active"
	CreatedAt  = "created_at"
)
