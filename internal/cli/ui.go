package cli

import (
	"fmt"

	"github.com/fatih/color"
)

const logo = `
     _            _    _          _     _
 ___| | __ _  ___| | _| |__  _ __(_) __| | __ _  ___
/ __| |/ _` + "`" + ` |/ __| |/ / '_ \| '__| |/ _` + "`" + ` |/ _` + "`" + ` |/ _ \
\__ \ | (_| | (__|   <| |_) | |  | | (_| | (_| |  __/
|___/_|\__,_|\___|_|\_\_.__/|_|  |_|\__,_|\__, |\___|
                                          |___/
`

func printHeader(title string) {
	fmt.Println(color.CyanString(logo))
	if title != "" {
		fmt.Println(title)
		fmt.Println("─────────────────────")
	}
}
