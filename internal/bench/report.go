package bench

import (
	"fmt"
	"io"
)

// Separator precedes the timing lines.
const Separator = "______________________"

// WriteReport prints the separator and one "<label>: <ms>ms" line per result,
// in the order given.
func WriteReport(w io.Writer, results []Result) error {
	if _, err := fmt.Fprintln(w, Separator); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s: %dms\n", r.Label, r.Milliseconds); err != nil {
			return err
		}
	}
	return nil
}
