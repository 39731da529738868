package structdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// FormatPrettyString is a convenience wrapper that outputs to a string
// instead of an io.Writer
func FormatPrettyString(changes Changes, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, changes, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one line per record. if colorTTY
// is true it will add
// green "+" for insertions
// red "-" for deletions
// blue "~" for edits
// yellow "@" for array changes
func FormatPretty(w io.Writer, changes Changes, colorTTY bool) error {
	paint := sprintFuncs(colorTTY)
	for _, c := range changes {
		if _, err := fmt.Fprintln(w, formatChange(c, paint)); err != nil {
			return err
		}
	}
	return nil
}

func sprintFuncs(colorTTY bool) map[Kind]func(format string, a ...interface{}) string {
	if !colorTTY {
		return map[Kind]func(format string, a ...interface{}) string{
			KindNew:     fmt.Sprintf,
			KindDeleted: fmt.Sprintf,
			KindEdited:  fmt.Sprintf,
			KindArray:   fmt.Sprintf,
		}
	}
	return map[Kind]func(format string, a ...interface{}) string{
		KindNew:     color.New(color.FgGreen).SprintfFunc(),
		KindDeleted: color.New(color.FgRed).SprintfFunc(),
		KindEdited:  color.New(color.FgBlue).SprintfFunc(),
		KindArray:   color.New(color.FgYellow).SprintfFunc(),
	}
}

func formatChange(c Change, paint map[Kind]func(format string, a ...interface{}) string) string {
	switch c := c.(type) {
	case *New:
		return paint[KindNew]("+ %s: %s", c.At, formatValue(c.Value))
	case *Deleted:
		return paint[KindDeleted]("- %s: %s", c.At, formatValue(c.Value))
	case *Edited:
		return paint[KindEdited]("~ %s: %s => %s", c.At, formatValue(c.Left), formatValue(c.Right))
	case *ArrayChange:
		return paint[KindArray]("@ %s [%d] %s", c.At, c.Index, formatChange(c.Item, paint))
	}
	return ""
}

// formatValue renders a value as compact JSON, falling back to fmt for
// values JSON can't encode (regular expressions, NaN)
func formatValue(v interface{}) string {
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprint(v)
}

// FormatStats prints a one-line summary of a stats tally
func FormatStats(st Stats) string {
	sign := ""
	if st.NodeChange() > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%d %s. %d %s. %d %s. %d %s.\n",
		sign, st.NodeChange(), plural(st.NodeChange(), "element"),
		st.Inserts, plural(st.Inserts, "insert"),
		st.Deletes, plural(st.Deletes, "delete"),
		st.Updates, plural(st.Updates, "update"),
	)
}

func plural(n int, word string) string {
	if n == 1 || n == -1 {
		return word
	}
	return word + "s"
}
