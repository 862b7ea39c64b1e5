// Package interactive provides small stdin prompts for confirmations and
// error-pause acknowledgments.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirm prompts the user with msg and expects y/n on stdin. Returns true
// for yes. For non-interactive environments it returns false.
func Confirm(msg string) bool {
	return ConfirmReader(msg, os.Stdin)
}

// ConfirmReader is Confirm with an injectable reader (useful for tests).
func ConfirmReader(msg string, r io.Reader) bool {
	fmt.Printf("%s [y/N]: ", msg)
	br := bufio.NewReader(r)
	line, _ := br.ReadString('\n')
	resp := strings.TrimSpace(strings.ToLower(line))
	return resp == "y" || resp == "yes"
}

// Pause blocks until the user presses Enter, so an operator can read the
// console before a failing run returns control to the shell.
func Pause(out io.Writer, in io.Reader) {
	_, _ = fmt.Fprint(out, "Press Enter to continue...")
	br := bufio.NewReader(in)
	_, _ = br.ReadString('\n')
}
