package dataset

// RawRow represents a row of raw tabular data as string key-value pairs,
// keyed by column header.
type RawRow map[string]string

// TableData represents a parsed dataset file before schema mapping.
type TableData struct {
	Headers []string // Column headers in file order
	Rows    []RawRow // Data rows
}
