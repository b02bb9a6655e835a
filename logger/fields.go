package logger

// Standard field names for consistent structured logging across domgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldFlavor    = "flavor"
	FieldInterface = "interface"
	FieldMember    = "member"
	FieldKind      = "kind"
	FieldSection   = "section"

	FieldFile       = "file"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)
