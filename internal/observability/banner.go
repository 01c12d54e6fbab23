package observability

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	colorReset = "\033[0m"
	colorCyan  = "\033[96m"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return w
}

// PrintBanner writes the startup banner, centered to the terminal width.
// Color is skipped when stdout is not a terminal.
func PrintBanner() {
	banner := `
   ____ _   _ ____  _   _ _  ___   _ _
  / ___| | | |  _ \| | | | |/ / | | | |
 | |  _| | | | |_) | | | | ' /| | | | |
 | |_| | |_| |  _ <| |_| | . \| |_| | |___
  \____|\___/|_| \_\\___/|_|\_\\___/|_____|

          learning assistant gateway
`

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	width := 80
	if isTTY {
		width = termWidth()
	}

	for _, l := range strings.Split(banner, "\n") {
		padding := (width - len(l)) / 2
		if padding < 0 {
			padding = 0
		}
		line := strings.Repeat(" ", padding) + l
		if isTTY {
			fmt.Println(colorCyan + line + colorReset)
		} else {
			fmt.Println(line)
		}
	}
}
