// Command migrate applies or rolls back the database schema.
//
// Usage:
//
//	migrate up
//	migrate down
//	migrate status
//
// The DSN is taken from DATABASE_DSN, falling back to the application config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/wafflemkr/points/internal/adapter/postgres"
	"github.com/wafflemkr/points/internal/config"
)

var errUsage = errors.New("usage: migrate up|down|status")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	cmd := args[0]
	if cmd != "up" && cmd != "down" && cmd != "status" {
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dsn = cfg.Database.DSN
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.Printf("close migrator: %v", cerr)
		}
	}()

	switch cmd {
	case "up":
		results, err := m.Up(ctx)
		for _, r := range results {
			fmt.Fprintf(out, "OK   %s (%s)\n", r.Source.Path, r.Duration.Round(time.Millisecond))
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "No pending migrations.")
		}
	case "down":
		r, err := m.Down(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Rolled back %s\n", r.Source.Path)
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(out, "%-8d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
		}
	}
	return nil
}
