package observability

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	colorReset    = "\033[0m"
	colorNeonCyan = "\033[96m"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return w
}

// PrintBanner renders the startup banner centered to the terminal width.
func PrintBanner() {
	banner := `
   ______      __    __   ____  __
  / ____/___ _/ /   / /  / __ \/ /___ _____  ____  ___  _____
 / /   / __ ` + "`" + `/ /   / /  / /_/ / / __ ` + "`" + `/ __ \/ __ \/ _ \/ ___/
/ /___/ /_/ / /___/ /__/ ____/ / /_/ / / / / / / /  __/ /
\____/\__,_/_____/____/_/   /_/\__,_/_/ /_/_/ /_/\___/_/

        >> OUTBOUND CALL PLANNING & SUMMARY <<
`

	width := termWidth()
	lines := strings.Split(banner, "\n")

	for _, l := range lines {
		padding := (width - len(l)) / 2
		if padding < 0 {
			padding = 0
		}
		fmt.Printf("%s%s%s\n", strings.Repeat(" ", padding), colorNeonCyan+l, colorReset)
	}
}
