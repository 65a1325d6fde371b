package display

import (
	"fmt"
	"os"

	"github.com/stagehand/setcutter/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, ` ____       _    ____      _   _
/ ___|  ___| |_ / ___|   _| |_| |_ ___ _ __
\___ \ / _ \ __| |  | | | | __| __/ _ \ '__|
 ___) |  __/ |_| |__| |_| | |_| ||  __/ |
|____/ \___|\__|\____\__,_|\__|\__\___|_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
