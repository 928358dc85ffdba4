package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"clipsplit/internal/jobs"
)

// column describes one table column. WidthMax of zero leaves it unbounded.
type column struct {
	Title    string
	Align    text.Align
	WidthMax int
}

// planColumns wraps paths and commands at word boundaries so a plan stays
// readable in a normal terminal.
var planColumns = []column{
	{Title: "File"},
	{Title: "Variant"},
	{Title: "Output", WidthMax: 60},
	{Title: "Command", WidthMax: 96},
}

// summaryColumns is the file column followed by one centred column per variant.
func summaryColumns() []column {
	cols := []column{{Title: "File"}}
	for _, v := range jobs.Variants() {
		cols = append(cols, column{Title: v.String(), Align: text.AlignCenter})
	}
	return cols
}

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Title
		configs[i] = table.ColumnConfig{
			Number:           i + 1,
			Align:            col.Align,
			AlignHeader:      text.AlignLeft,
			WidthMax:         col.WidthMax,
			WidthMaxEnforcer: text.WrapSoft,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}
