package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mmcdole/cinelist/internal/domain"
)

// renderMovies renders the derived view as a table for non-interactive use
func renderMovies(movies []domain.Movie) string {
	if len(movies) == 0 {
		return "No movies in your list."
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Title", "Year", "Poster"})
	for _, m := range movies {
		tw.AppendRow(table.Row{m.Title, m.Year, m.Poster})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, WidthMax: 48},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
	})
	return tw.Render()
}
