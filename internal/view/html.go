package view

import (
	"fmt"
	"html/template"
	"io"

	"github.com/noah-isme/sma-roster/internal/roster"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Notice.Visible}}
<div class="notice notice-{{.Notice.Level}}">{{.Notice.Text}}</div>
{{- end}}
<table id="studentTable">
<thead>
<tr>
<th><input type="checkbox" id="selectAll"{{if .AllChecked}} checked{{end}}></th>
{{- range .Headers}}
<th{{if .Sortable}} class="sortable" data-sort="{{.Sort}}"{{end}}>{{.Title}}{{.Marker}}</th>
{{- end}}
<th>Actions</th>
</tr>
</thead>
<tbody>
{{- range .Rows}}
{{- if .Placeholder}}
<tr><td colspan="{{$.Span}}" class="empty">{{index .Cells 0}}</td></tr>
{{- else}}
<tr data-id="{{.ID}}">
<td><input type="checkbox" class="row-checkbox" value="{{.ID}}"{{if .Checked}} checked{{end}}></td>
{{- range .Cells}}
<td>{{.}}</td>
{{- end}}
<td><button data-action="edit" data-id="{{.ID}}">Edit</button> <button data-action="delete" data-id="{{.ID}}">Delete</button></td>
</tr>
{{- end}}
{{- end}}
</tbody>
</table>
<div class="pagination">
<button data-page="{{.Controls.First.Target}}"{{if .Controls.First.Disabled}} disabled{{end}}>First</button>
<button data-page="{{.Controls.Prev.Target}}"{{if .Controls.Prev.Disabled}} disabled{{end}}>Prev</button>
<span class="page-info">{{.Controls.Label}}</span>
<button data-page="{{.Controls.Next.Target}}"{{if .Controls.Next.Disabled}} disabled{{end}}>Next</button>
<button data-page="{{.Controls.Last.Target}}"{{if .Controls.Last.Disabled}} disabled{{end}}>Last</button>
</div>
</body>
</html>
`

var pageTmpl = template.Must(template.New("roster").Parse(pageTemplate))

type htmlHeader struct {
	roster.Column
	Marker string
}

type htmlRow struct {
	roster.Row
	Checked bool
}

type htmlPage struct {
	Title      string
	Notice     roster.Notice
	AllChecked bool
	Headers    []htmlHeader
	Rows       []htmlRow
	Span       int
	Controls   roster.Controls
}

// RenderHTML writes a standalone HTML page of the snapshot. Record values are escaped
// by html/template.
func RenderHTML(w io.Writer, s Snapshot) error {
	data := htmlPage{
		Title:      s.Title,
		Notice:     s.Notice,
		AllChecked: s.AllState == roster.SelectChecked,
		Span:       s.Table.Span,
		Controls:   s.Controls,
	}
	for _, c := range s.Table.Columns {
		data.Headers = append(data.Headers, htmlHeader{Column: c, Marker: s.SortMarker(c)})
	}
	for _, r := range s.Table.Rows {
		data.Rows = append(data.Rows, htmlRow{Row: r, Checked: s.Selected[r.ID]})
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
