package main

import (
	"fmt"

	"clipsplit/internal/batch"
	"clipsplit/internal/transcode"
)

// renderSummary tabulates per-file job outcomes. Empty when nothing ran.
func renderSummary(report batch.Report) string {
	if len(report.Files) == 0 {
		return ""
	}
	columns := summaryColumns()
	rows := make([][]string, 0, len(report.Files))
	for _, file := range report.Files {
		row := make([]string, len(columns))
		row[0] = file.Source.Name
		for _, outcome := range file.Jobs {
			row[int(outcome.Job.Variant)+1] = outcomeLabel(outcome.Result)
		}
		for i := 1; i < len(row); i++ {
			if row[i] == "" {
				row[i] = "not run"
			}
		}
		rows = append(rows, row)
	}

	succeeded, failed := report.Counts()
	footer := fmt.Sprintf("%d succeeded, %d failed", succeeded, failed)
	return renderTable(columns, rows) + "\n" + footer
}

func outcomeLabel(result transcode.Result) string {
	switch res := result.(type) {
	case transcode.Success:
		return "ok"
	case transcode.Failure:
		if res.Signal != "" {
			return "failed (signal " + res.Signal + ")"
		}
		if !res.Started() {
			return "failed (not started)"
		}
		return fmt.Sprintf("failed (exit %d)", res.Code)
	default:
		return "unknown"
	}
}

func skippedLines(report batch.Report, colorize bool) []string {
	if len(report.Skipped) == 0 {
		return nil
	}
	lines := renderSectionHeader("Skipped", colorize)
	for _, skip := range report.Skipped {
		lines = append(lines, renderStatusLine(skip.Source.Name, statusWarn, skip.Err.Error(), colorize))
	}
	return lines
}
