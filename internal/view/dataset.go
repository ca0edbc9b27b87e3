package view

import (
	"github.com/noah-isme/sma-roster/pkg/export"
)

// Dataset converts the snapshot's table into export rows. The "no data" placeholder row
// is not exported.
func Dataset(s Snapshot) export.Dataset {
	headers := make([]string, len(s.Table.Columns))
	for i, c := range s.Table.Columns {
		headers[i] = c.Title
	}
	data := export.Dataset{Title: s.Title, Headers: headers, Footer: s.Controls.Label}
	for _, row := range s.Table.Rows {
		if row.Placeholder {
			continue
		}
		values := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row.Cells) {
				values[h] = Sanitize(row.Cells[i])
			}
		}
		data.Rows = append(data.Rows, values)
	}
	return data
}
