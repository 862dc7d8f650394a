package display

import (
	"fmt"
	"os"

	"github.com/egoengine/clipmill/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  ____ _ _       __  __ _ _ _
 / ___| (_)_ __ |  \/  (_) | |
| |   | | | '_ \| |\/| | | | |
| |___| | | |_) | |  | | | | |
 \____|_|_| .__/|_|  |_|_|_|_|
          |_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
