package tui

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

const logoASCII = `
                     _
__   __  ___  __  __| |_   ___  _ __  _ __ ___
\ \ / / / _ \ \ \/ /| __| / _ \| '__|| '_ ' _ \
 \ V / | (_) | >  < | |_ |  __/| |   | | | | | |
  \_/   \___/ /_/\_\ \__| \___||_|   |_| |_| |_|`

// Logo returns the styled voxterm banner.
func Logo() string {
	return StyleHeader.Render(strings.Trim(logoASCII, "\n"))
}

// ClearScreen wipes the terminal before a wizard screen.
func ClearScreen() {
	termenv.NewOutput(os.Stdout).ClearScreen()
}
