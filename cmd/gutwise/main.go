// Command gutwise runs the GutWise recipe API and its companion tools.
//
// Usage:
//
//	gutwise [serve] [-config gutwise.yaml]
//	gutwise browse [-api URL | -fixture] [-search TERM] [-tag ID]... [-id ID]
//	gutwise backup [-config FILE] [-output FILE]
//	gutwise restore -input FILE [-data-dir DIR] [-force]
//	gutwise version
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/HerbHall/gutwise/internal/version"
)

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		runServe(args)
	case "browse":
		runBrowse(args)
	case "backup":
		runBackup(args)
	case "restore":
		runRestore(args)
	case "version":
		fmt.Println(version.Info())
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		fmt.Fprintln(os.Stderr, "commands: serve, browse, backup, restore, version")
		os.Exit(2)
	}
}

// newLogger builds the process logger.
func newLogger(development bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
