package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/dipdaga/patina/internal"
	"github.com/dipdaga/patina/internal/catalog"
	"github.com/dipdaga/patina/internal/mcpserver"
	"github.com/dipdaga/patina/internal/transform"
	pkgconfig "github.com/dipdaga/patina/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// catalogPath prefers the --catalog flag, falling back to the config file.
func catalogPath(cmd *cli.Command, cfg *internal.Config) string {
	if p := cmd.String("catalog"); p != "" {
		return p
	}
	return cfg.Catalog.Path
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	records, err := catalog.Load(ctx, catalogPath(cmd, cfg))
	if err != nil {
		return err
	}
	return mcpserver.New(records, cfg.Gallery.CuratedTags, cfg.Gallery.ChipCount).ServeStdio()
}

func runEnrich(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	path := catalogPath(cmd, cfg)
	items, err := transform.ReadDocument(path)
	if err != nil {
		return err
	}
	stats, err := transform.Enrich(ctx, items, cmd.String("root"), int(cmd.Int("workers")), logger)
	if err != nil {
		return err
	}
	if err := transform.WriteDocument(outPath(cmd, path), items); err != nil {
		return err
	}
	logger.Info("enrich finished",
		slog.Int("total", stats.Total),
		slog.Int("enriched", stats.Enriched),
		slog.Int("skipped", stats.Skipped))
	return nil
}

func runRewrite(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	path := catalogPath(cmd, cfg)
	items, err := transform.ReadDocument(path)
	if err != nil {
		return err
	}
	stats, err := transform.Rewrite(items, cmd.String("base"))
	if err != nil {
		return err
	}
	if err := transform.WriteDocument(outPath(cmd, path), items); err != nil {
		return err
	}
	logger.Info("rewrite finished",
		slog.Int("total", stats.Total),
		slog.Int("rewritten", stats.Rewritten),
		slog.Int("skipped", stats.Skipped))
	return nil
}

func runClean(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	path := catalogPath(cmd, cfg)
	items, err := transform.ReadDocument(path)
	if err != nil {
		return err
	}
	stats := transform.Clean(items)
	if err := transform.WriteDocument(outPath(cmd, path), items); err != nil {
		return err
	}
	logger.Info("clean finished",
		slog.Int("total", stats.Total),
		slog.Int("titles_updated", stats.TitlesUpdated),
		slog.Int("tag_lists_cleaned", stats.TagListsCleaned),
		slog.Int("descriptions_blanked", stats.DescriptionsBlanked),
		slog.Int("ids_assigned", stats.IDsAssigned))
	return nil
}

func runTags(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	records, err := catalog.Load(ctx, catalogPath(cmd, cfg))
	if err != nil {
		return err
	}

	var spec transform.CategorySpec
	if f := cmd.String("categories"); f != "" {
		if err := pkgconfig.Load(f, &spec); err != nil {
			return err
		}
	}

	report := transform.BuildReport(records, spec)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if out := cmd.String("out"); out != "" {
		return os.WriteFile(out, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}

// outPath returns --out when given, otherwise the input path (in-place).
func outPath(cmd *cli.Command, in string) string {
	if out := cmd.String("out"); out != "" {
		return out
	}
	return in
}

func main() {
	catalogFlag := &cli.StringFlag{
		Name:  "catalog",
		Usage: "Path to the catalog JSON (overrides config)",
	}
	outFlag := &cli.StringFlag{
		Name:  "out",
		Usage: "Output path (defaults to rewriting the input in place)",
	}

	cmd := &cli.Command{
		Name:   "patina",
		Usage:  "Photo archive gallery: catalog server, view pipeline, and batch catalog tools",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the catalog API with live reload",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Expose catalog tools over MCP stdio",
				Action: serveMCP,
				Flags:  []cli.Flag{catalogFlag},
			},
			{
				Name:   "enrich",
				Usage:  "Read declared image dimensions into the catalog",
				Action: runEnrich,
				Flags: []cli.Flag{
					catalogFlag,
					outFlag,
					&cli.StringFlag{
						Name:  "root",
						Usage: "Directory the catalog's local image paths resolve against",
						Value: ".",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Parallel header readers (0 = GOMAXPROCS)",
					},
				},
			},
			{
				Name:   "rewrite",
				Usage:  "Rewrite local image paths to remote object-storage URLs",
				Action: runRewrite,
				Flags: []cli.Flag{
					catalogFlag,
					outFlag,
					&cli.StringFlag{
						Name:     "base",
						Usage:    "Absolute base URL local paths are appended to",
						Required: true,
					},
				},
			},
			{
				Name:   "clean",
				Usage:  "Clean titles, tags, descriptions, and assign missing ids",
				Action: runClean,
				Flags:  []cli.Flag{catalogFlag, outFlag},
			},
			{
				Name:   "tags",
				Usage:  "Tag frequency statistics, decade rollup, and category assignment",
				Action: runTags,
				Flags: []cli.Flag{
					catalogFlag,
					outFlag,
					&cli.StringFlag{
						Name:  "categories",
						Usage: "YAML file mapping category names to member tags",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
