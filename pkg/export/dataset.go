package export

// Dataset defines tabular export content. Rows are keyed by header.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
	// Footer is printed under the table, e.g. the pagination summary.
	Footer string
}

// Exporter renders a dataset into a file format.
type Exporter interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
}
