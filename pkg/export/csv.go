package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

// WriteCSV writes the report with a bare header line and every data cell
// quoted except Seconds. Lines are joined with "\n" and there is no trailing
// newline.
func WriteCSV(w io.Writer, shifts []model.Shift) error {
	var b strings.Builder
	b.WriteString(strings.Join(Headers, ","))

	for _, s := range shifts {
		b.WriteByte('\n')
		for i, cell := range Row(s) {
			if i > 0 {
				b.WriteByte(',')
			}
			if i == secondsColumn {
				b.WriteString(strconv.FormatInt(cell.(int64), 10))
				continue
			}
			b.WriteString(quote(cell.(string)))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
