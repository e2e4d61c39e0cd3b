package source

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

// extractSpreadsheet flattens every worksheet into whitespace-aligned
// columns. When a workbook has more than one sheet each block is headed by
// the sheet name. Empty sheets are skipped with a warning.
func extractSpreadsheet(data []byte) (string, []string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("workbook has no sheets")
	}

	var (
		blocks   []string
		warnings []string
	)
	for _, name := range sheets {
		rows, err := wb.GetRows(name)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("sheet %q: %v", name, err))
			continue
		}
		if len(rows) == 0 {
			warnings = append(warnings, fmt.Sprintf("sheet %q is empty", name))
			continue
		}

		rendered := renderRows(rows)
		if len(sheets) > 1 {
			rendered = fmt.Sprintf("[%s]\n%s", name, rendered)
		}
		blocks = append(blocks, rendered)
	}

	return strings.Join(blocks, "\n\n"), warnings, nil
}

func renderRows(rows [][]string) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(strings.TrimSpace(c), "\t", " ")
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
	return strings.TrimRight(buf.String(), "\n")
}
