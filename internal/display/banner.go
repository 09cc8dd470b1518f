package display

import (
	"fmt"
	"os"

	"github.com/backmassage/mkv2mp4/internal/term"
)

const banner = `           _             ____                   _  _
 _ __ ___ | | ____   __ |___ \ _ __ ___  _ __  | || |
| '_ ` + "`" + ` _ \| |/ /\ \ / /   __) | '_ ` + "`" + ` _ \| '_ \ | || |_
| | | | | |   <  \ V /   / __/| | | | | | |_) ||__   _|
|_| |_| |_|_|\_\  \_/   |_____|_| |_| |_| .__/    |_|
                                        |_|
`

// PrintBanner prints the ASCII art banner in magenta when colors are enabled.
func PrintBanner() {
	fmt.Fprint(os.Stdout, term.Magenta.Sprint(banner))
}
