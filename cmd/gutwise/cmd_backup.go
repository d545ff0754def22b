package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/HerbHall/gutwise/internal/backup"
	"github.com/HerbHall/gutwise/internal/config"
)

func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	output := fs.String("output", "", "output file path (default: gutwise-backup-{timestamp}.tar.gz)")
	configFile := fs.String("config", "", "config file to read database.path from and include in the backup")
	dbOverride := fs.String("db", "", "database path (overrides database.path)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	dbPath := *dbOverride
	if dbPath == "" {
		cfg, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "backup failed: %v\n", err)
			os.Exit(1)
		}
		dbPath = cfg.GetString("database.path")
	}

	if *output == "" {
		*output = fmt.Sprintf("gutwise-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
	}

	names, err := backup.Backup(context.Background(), dbPath, *configFile, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backup failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Backup created: %s (%d files)\n", *output, len(names))
}
