package csvdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

// Diagnosis is a compact structural summary of one feed, the
// counterpart of eyeballing a dataframe before cleaning.
type Diagnosis struct {
	Name    string
	Rows    int
	Columns []string
	Missing map[string]int
}

// Diagnose counts rows and blank values per column.
func Diagnose(name string, rows []domain.Row) Diagnosis {
	missing := make(map[string]int)
	columns := make(map[string]bool)
	for _, row := range rows {
		for col, value := range row {
			columns[col] = true
			if strings.TrimSpace(value) == "" {
				missing[col]++
			}
		}
	}

	names := make([]string, 0, len(columns))
	for col := range columns {
		names = append(names, col)
	}
	sort.Strings(names)

	return Diagnosis{
		Name:    name,
		Rows:    len(rows),
		Columns: names,
		Missing: missing,
	}
}

func (d Diagnosis) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", d.Name)
	fmt.Fprintf(&b, "rows: %d\n", d.Rows)
	fmt.Fprintf(&b, "columns: %s\n", strings.Join(d.Columns, ", "))
	if len(d.Missing) == 0 {
		b.WriteString("missing values: none\n")
		return b.String()
	}
	b.WriteString("missing values:\n")
	for _, col := range d.Columns {
		if n := d.Missing[col]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", col, n)
		}
	}
	return b.String()
}
