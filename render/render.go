// Package render is the grid's text rendering collaborator: it prints one
// page of rows plus the pagination window to a writer. It consumes the
// pipeline's Result and never reaches back into the pipeline.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/asaidimu/go-datagrid/core/record"
	"github.com/asaidimu/go-datagrid/core/table"
)

// Renderer writes page slices as aligned text tables.
type Renderer struct {
	w       io.Writer
	columns []string
}

// New creates a renderer over the writer displaying the given columns in
// order.
func New(w io.Writer, columns []string) *Renderer {
	return &Renderer{w: w, columns: columns}
}

// Render prints the page rows followed by the pagination window line.
func (r *Renderer) Render(result *table.Result) error {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(r.columns, "\t"))
	for _, row := range result.Rows {
		cells := make([]string, len(r.columns))
		for i, col := range r.columns {
			cells[i] = record.ToString(row[col])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("rendering rows: %w", err)
	}
	return r.renderWindow(result.Window)
}

func (r *Renderer) renderWindow(w table.Window) error {
	pages := make([]string, len(w.Pages))
	for i, n := range w.Pages {
		if n == w.Page {
			pages[i] = fmt.Sprintf("[%d]", n)
			continue
		}
		pages[i] = fmt.Sprintf("%d", n)
	}
	_, err := fmt.Fprintf(r.w, "rows %d-%d of %d\tpages: %s\n",
		w.From, w.To, w.Total, strings.Join(pages, " "))
	return err
}
