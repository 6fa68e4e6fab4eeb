// Command lrscript is the joystick-driven arcade front-end.
package main

import (
	"fmt"
	"log"
	"os"

	lrscript "github.com/Skrokkio/LRscript"
	"github.com/Skrokkio/LRscript/imagecache"
	"github.com/Skrokkio/LRscript/storage"
	"github.com/gookit/color"
	"github.com/sqweek/dialog"
)

var (
	colorTitle = color.Style{color.FgGreen, color.OpBold}
	colorValue = color.Style{color.FgCyan}
	colorWarn  = color.Style{color.FgYellow, color.OpBold}
	colorError = color.Style{color.FgRed, color.OpBold}
)

func main() {
	storage.Init(lrscript.AppName)

	err := lrscript.Run(printBanner)
	clearCache()
	if err != nil {
		fmt.Fprintln(os.Stderr, colorError.Sprintf("%s: %v", lrscript.AppName, err))
		dialog.Message("%s", err.Error()).Title(lrscript.AppName).Error()
		os.Exit(1)
	}
}

// printBanner reports the startup state on the terminal
func printBanner(info lrscript.StartupInfo) {
	fmt.Println(colorTitle.Sprintf("%s %s", lrscript.AppName, lrscript.Version))
	fmt.Printf("  data dir:  %s\n", colorValue.Sprint(info.DataDir))
	if info.Joystick != "" {
		fmt.Printf("  joystick:  %s\n", colorValue.Sprint(info.Joystick))
	} else {
		fmt.Printf("  joystick:  %s\n", colorWarn.Sprint("none, keyboard only"))
	}
	fmt.Printf("  platforms: %s\n", colorValue.Sprintf("%d", info.Platforms))
	if info.ConfigError != "" {
		fmt.Printf("  config:    %s\n", colorError.Sprintf("%s needs attention", info.ConfigError))
	}
}

// clearCache removes downloaded artwork. Images are fetched again on the
// next lookup.
func clearCache() {
	dir, err := storage.GetCacheDir()
	if err != nil {
		log.Printf("Failed to resolve cache dir: %v", err)
		return
	}
	if err := imagecache.ClearAll(dir); err != nil {
		log.Printf("Failed to clear image cache: %v", err)
	}
}
