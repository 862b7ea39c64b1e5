package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	defaultRuleWidth = 60
	maxRuleWidth     = 100
)

// ruleWidth sizes the banner rule to the terminal, falling back to a fixed
// width when stdout is not a terminal (pipes, schedulers, tests).
func ruleWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultRuleWidth
	}
	if w > maxRuleWidth {
		return maxRuleWidth
	}
	return w
}

func printRule(w io.Writer) {
	_, _ = fmt.Fprintln(w, strings.Repeat("=", ruleWidth()))
}

func printBanner(w io.Writer, title string, ts time.Time) {
	printRule(w)
	_, _ = fmt.Fprintf(w, " %s\n", title)
	_, _ = fmt.Fprintf(w, " started %s\n", ts.Format("2006-01-02 15:04:05"))
	printRule(w)
}

func printClosing(w io.Writer, msg string) {
	printRule(w)
	_, _ = fmt.Fprintf(w, " %s\n", msg)
	printRule(w)
}
