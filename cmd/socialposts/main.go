package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"socialposts/internal/config"
	"socialposts/internal/export"
	"socialposts/internal/load"
	"socialposts/internal/logging"
	"socialposts/internal/report"
	"socialposts/internal/tui"
	"socialposts/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    "socialposts",
		Usage:   "Load social media posts from CSV into SQLite and report on them",
		Version: version.Version,
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "Split a posts CSV and rebuild the database from it",
				ArgsUsage: "[csv] [db]",
				Flags:     []cli.Flag{logFileFlag()},
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "csv", UsageText: "source CSV path"},
					&cli.StringArg{Name: "db", UsageText: "destination database path"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					ac, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					logger, closeLog := logging.New(or(c.String("log-file"), ac.LogFile))
					defer closeLog()
					opts := load.Options{
						CSVPath:     or(c.StringArg("csv"), ac.CSVPath),
						DBPath:      or(c.StringArg("db"), ac.DatabasePath),
						Categories:  ac.PostTypes,
						ColumnTypes: ac.ColumnTypes,
					}
					return load.Run(ctx, opts, logger)
				},
			},
			{
				Name:      "export",
				Usage:     "Write the combined posts as JSON",
				ArgsUsage: "[db] [json]",
				Flags:     []cli.Flag{logFileFlag()},
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "db", UsageText: "database path"},
					&cli.StringArg{Name: "json", UsageText: "output JSON path"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					ac, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					logger, closeLog := logging.New(or(c.String("log-file"), ac.LogFile))
					defer closeLog()
					return export.Run(ctx, or(c.StringArg("db"), ac.DatabasePath), or(c.StringArg("json"), ac.JSONPath), logger)
				},
			},
			{
				Name:      "report",
				Usage:     "Print the most commented, most liked and most popular posts",
				ArgsUsage: "[db]",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "db", UsageText: "database path"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					ac, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					return report.Run(ctx, or(c.StringArg("db"), ac.DatabasePath), os.Stdout)
				},
			},
			{
				Name:      "browse",
				Usage:     "Browse the posts in the database",
				ArgsUsage: "[db]",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "db", UsageText: "database path"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					ac, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					return tui.Run(ctx, or(c.StringArg("db"), ac.DatabasePath))
				},
			},
			{
				Name:  "run",
				Usage: "Load, export and report in one go, stopping at the first failure",
				Flags: []cli.Flag{
					logFileFlag(),
					&cli.StringFlag{Name: "csv", Usage: "source CSV path (default from config)"},
					&cli.StringFlag{Name: "db", Usage: "database path (default from config)"},
					&cli.StringFlag{Name: "json", Usage: "output JSON path (default from config)"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					ac, err := config.LoadAppConfig()
					if err != nil {
						return err
					}
					logger, closeLog := logging.New(or(c.String("log-file"), ac.LogFile))
					defer closeLog()

					dbPath := or(c.String("db"), ac.DatabasePath)
					fmt.Println("=== Running: Import Data and Setup Database ===")
					if err := load.Run(ctx, load.Options{
						CSVPath:     or(c.String("csv"), ac.CSVPath),
						DBPath:      dbPath,
						Categories:  ac.PostTypes,
						ColumnTypes: ac.ColumnTypes,
					}, logger); err != nil {
						return fmt.Errorf("error during load: %w", err)
					}
					fmt.Println("=== Running: Export JSON ===")
					if err := export.Run(ctx, dbPath, or(c.String("json"), ac.JSONPath), logger); err != nil {
						return fmt.Errorf("error during export: %w", err)
					}
					fmt.Println("=== Running: Aggregate Data ===")
					if err := report.Run(ctx, dbPath, os.Stdout); err != nil {
						return fmt.Errorf("error during report: %w", err)
					}
					fmt.Println("All steps ran successfully!")
					return nil
				},
			},
			{
				Name:  "config",
				Usage: "Manage the socialposts configuration",
				Commands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Write a default config to ~/.config/socialposts/config.yaml",
						Flags: []cli.Flag{
							&cli.StringSliceFlag{Name: "post-type", Usage: "accepted Post_Type label (repeatable)"},
						},
						Action: func(ctx context.Context, c *cli.Command) error {
							path, err := config.ConfigPath()
							if err != nil {
								return err
							}
							ac, err := config.LoadAppConfig()
							if err != nil {
								return err
							}
							uc := config.UserConfig{
								DatabasePath: ac.DatabasePath,
								CSVPath:      ac.CSVPath,
								JSONPath:     ac.JSONPath,
								PostTypes:    ac.PostTypes,
								ColumnTypes:  ac.ColumnTypes,
								LogFile:      ac.LogFile,
							}
							if v := c.StringSlice("post-type"); len(v) > 0 {
								uc.PostTypes = v
							}
							if err := config.WriteConfig(path, uc); err != nil {
								return err
							}
							fmt.Printf("Config written to %s\n", path)
							return nil
						},
					},
				},
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(ctx context.Context, c *cli.Command) error {
					fmt.Println(version.GetVersion())
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func logFileFlag() cli.Flag {
	return &cli.StringFlag{Name: "log-file", Usage: "Path to the run log file (default: stderr)"}
}

// or returns v unless it is blank.
func or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
