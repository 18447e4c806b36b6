package logger

// Standard field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldBitLength  = "bit_length"
	FieldTopCount   = "top_count"
	FieldKeys       = "keys"
	FieldLabels     = "labels"
	FieldCount      = "count"
	FieldTotalCount = "total_count"
	FieldWorkers    = "workers"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
	FieldFile       = "file"
	FieldCPU        = "cpu"
)
