package display

import (
	"fmt"
	"os"

	"github.com/backmassage/restamp/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` ____           _
|  _ \ ___  ___| |_ __ _ _ __ ___  _ __
| |_) / _ \/ __| __/ _`+"`"+` | '_ `+"`"+` _ \| '_ \
|  _ <  __/\__ \ || (_| | | | | | | |_) |
|_| \_\___||___/\__\__,_|_| |_| |_| .__/
                                  |_|
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
