package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/pdspring/internal/dynamo"
)

// WriteCSV writes one time column and one value column per result. All results
// must share the same sampling grid.
func WriteCSV(w io.Writer, results ...*dynamo.Result) error {
	if len(results) == 0 {
		return nil
	}
	n := len(results[0].Times)
	for _, r := range results[1:] {
		if len(r.Times) != n {
			return fmt.Errorf("export: mismatched sample counts %d and %d", n, len(r.Times))
		}
	}

	cw := csv.NewWriter(w)
	header := []string{"time"}
	for i, r := range results {
		name := r.Engine
		if name == "" {
			name = fmt.Sprintf("value%d", i)
		}
		header = append(header, name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(results)+1)
	for i := 0; i < n; i++ {
		row[0] = strconv.FormatFloat(results[0].Times[i], 'f', 6, 64)
		for j, r := range results {
			row[j+1] = strconv.FormatFloat(r.Values[i], 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
