// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/lookup"
)

// RenderSummary renders a per-key outcome table plus totals as markdown,
// suitable for terminal output after a run.
//
// Parameters:
//   - rep: Aggregated lookup results
//
// Returns:
//   - string: Markdown table of name, candidate count and status, followed
//     by a totals line
func RenderSummary(rep *lookup.Report) string {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"Name", "Matches", "Status"})

	var rows [][]string
	for _, res := range rep.Results() {
		status := statusNotFound
		switch res.Classify() {
		case lookup.Found:
			status = statusFound
		case lookup.Ambiguous:
			status = statusMultiple
		}

		rows = append(rows, []string{
			res.Key.String(),
			fmt.Sprintf("%d", len(res.Candidates)),
			status,
		})
	}

	table.Bulk(rows)
	table.Render()

	found, multiple, notFound := rep.Counts()
	fmt.Fprintf(&buf, "\nTotal: %d names, %d found, %d multiple, %d not found\n",
		rep.Len(), found, multiple, notFound)

	return buf.String()
}
