package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

// confirmMessage lists the shifts about to be exported.
func confirmMessage(shifts []shift.Shift) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Download ICS file for %d shifts?\n", len(shifts))
	for _, s := range shifts {
		fmt.Fprintf(&b, " • %s at %s\n", s.DisplayDate, s.DisplayTime)
	}
	return b.String()
}

// confirm prints message and reads a yes/no answer. Anything but y or yes,
// including end of input, is a no.
func confirm(in io.Reader, out io.Writer, message string) (bool, error) {
	fmt.Fprint(out, message)
	fmt.Fprint(out, "[y/N]: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
