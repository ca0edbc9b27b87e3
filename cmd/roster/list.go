package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-roster/internal/models"
	"github.com/noah-isme/sma-roster/internal/roster"
	"github.com/noah-isme/sma-roster/internal/view"
	"github.com/noah-isme/sma-roster/pkg/export"
)

type listOptions struct {
	format   string
	output   string
	title    string
	plain    bool
	page     int
	pageSize int
	sort     string
	order    string
	filters  models.FilterCriteria
}

func newListCmd(opts *rootOptions) *cobra.Command {
	lo := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the roster",
		Example: `  roster list --name ann --sort name --order asc
  roster list --format pdf --output roster.pdf --page-size 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.close()

			if lo.pageSize <= 0 {
				lo.pageSize = s.cfg.Client.PageSize
			}
			state, err := lo.state()
			if err != nil {
				return err
			}

			screen := roster.NewScreen(lo.pageSize)
			ctrl := roster.NewController(screen, s.client, roster.AlwaysConfirm, s.logger)
			if err := ctrl.Seek(cmd.Context(), state, lo.filters); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if lo.output != "" {
				f, err := os.Create(lo.output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeSnapshot(w, view.SnapshotOf(screen, lo.title), lo.format, lo.plain)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&lo.format, "format", "f", "table", "output format: table, html, csv or pdf")
	fs.StringVarP(&lo.output, "output", "o", "", "write to this file instead of stdout")
	fs.StringVar(&lo.title, "title", "Student Roster", "title for html and pdf output")
	fs.BoolVar(&lo.plain, "plain", false, "disable colors in table output")
	fs.IntVar(&lo.page, "page", 1, "page number, 1-based")
	fs.IntVar(&lo.pageSize, "page-size", 0, "records per page (default $ROSTER_PAGE_SIZE)")
	fs.StringVar(&lo.sort, "sort", string(models.SortByID), "sort column: "+sortColumns())
	fs.StringVar(&lo.order, "order", string(models.SortDesc), "sort direction: ASC or DESC")
	fs.StringVar(&lo.filters.StudentNo, "student-no", "", "exact student number")
	fs.StringVar(&lo.filters.Name, "name", "", "name contains")
	fs.StringVar(&lo.filters.Gender, "gender", "", "gender code: 1 male, 2 female")
	fs.StringVar(&lo.filters.Major, "major", "", "major contains")
	fs.StringVar(&lo.filters.ClassName, "class", "", "class contains")
	fs.StringVar(&lo.filters.Status, "status", "", "status code: 1 enrolled, 2 suspended, 3 graduated")
	return cmd
}

func (lo *listOptions) state() (models.QueryState, error) {
	field, ok := models.ParseSortField(lo.sort)
	if !ok {
		return models.QueryState{}, fmt.Errorf("unknown sort column %q, want one of %s", lo.sort, sortColumns())
	}
	dir, ok := models.ParseSortDirection(lo.order)
	if !ok {
		return models.QueryState{}, fmt.Errorf("unknown sort direction %q, want ASC or DESC", lo.order)
	}
	return models.QueryState{Page: lo.page, PageSize: lo.pageSize, SortField: field, SortDirection: dir}, nil
}

func writeSnapshot(w io.Writer, snap view.Snapshot, format string, plain bool) error {
	switch strings.ToLower(format) {
	case "table":
		out := view.RenderTerminal(snap, view.TerminalOptions{Cursor: -1, Plain: plain})
		_, err := fmt.Fprintln(w, out)
		return err
	case "html":
		return view.RenderHTML(w, snap)
	case "csv":
		return writeExport(w, export.NewCSVExporter(), snap)
	case "pdf":
		return writeExport(w, export.NewPDFExporter(), snap)
	}
	return fmt.Errorf("unknown format %q, want table, html, csv or pdf", format)
}

func writeExport(w io.Writer, exporter export.Exporter, snap view.Snapshot) error {
	body, err := exporter.Render(view.Dataset(snap))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(body))
	return err
}

func sortColumns() string {
	fields := models.SortFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
