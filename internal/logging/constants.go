package logging

// Standardized field names for structured logging.
const (
	FieldFeed       = "feed"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldRow        = "row"
	FieldReason     = "reason"
	FieldComponent  = "component"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDropped    = "dropped"
	FieldSlug       = "slug"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldOutputFile = "output_file"
)
