package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/drafter/drafter/internal/config"
	"github.com/drafter/drafter/internal/observability"
	"github.com/drafter/drafter/internal/page"
	"github.com/drafter/drafter/pkg/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "drafter",
		Short:         "Lay out markup documents and render them to PDF or PNG",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.AddCommand(newRenderCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

type renderFlags struct {
	configFile string
	output     string
	debug      bool
}

func newRenderCmd() *cobra.Command {
	var flags renderFlags
	v := config.New()

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a markup document",
		Long: `Render a markup document to PDF or PNG.

The output defaults to the input path with the extension of the output format.
When --format is not given the format follows the extension of --output.
Settings are read from drafter.yaml (or --config) and DRAFTER_* variables;
flags take precedence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(v, flags.configFile); err != nil {
				return err
			}
			if flags.debug {
				v.Set("logger.level", "debug")
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			logger, err := observability.NewConsoleLogger(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer observability.Sync(logger)

			input := args[0]
			format := outputFormat(cfg.Document.Format, flags.output, cmd.Flags().Changed("format"))
			output := flags.output
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
			}
			opts, err := optionsFromConfig(cfg, format, logger)
			if err != nil {
				return err
			}

			logger.Info("rendering", zap.String("input", input), zap.String("output", output), zap.String("format", format))
			if err := api.NewWithOptions(opts).ConvertFile(cmd.Context(), input, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configFile, "config", "c", "", "config file (default is ./drafter.yaml)")
	f.StringVarP(&flags.output, "output", "o", "", "output file")
	f.BoolVar(&flags.debug, "debug", false, "log at debug level")
	f.String("format", "", "output format: pdf or png")
	f.String("page-size", "", "default page size: a name such as A4 or letter, or WxH in points")
	f.String("orientation", "", "default page orientation: portrait or landscape")
	f.Float64("margin", 0, "default page margin in points")
	f.Float64("dpi", 0, "resolution of png output")
	f.Bool("debug-boxes", false, "outline every box")
	f.StringSlice("resource-path", nil, "directories searched for images and stylesheets")
	f.StringSlice("font-dir", nil, "directories searched for TrueType fonts")

	for key, name := range map[string]string{
		"document.format":        "format",
		"document.page_size":     "page-size",
		"document.orientation":   "orientation",
		"document.margin":        "margin",
		"render.dpi":             "dpi",
		"render.debug_boxes":     "debug-boxes",
		"resources.search_paths": "resource-path",
		"render.font_dirs":       "font-dir",
	} {
		_ = v.BindPFlag(key, f.Lookup(name))
	}
	return cmd
}

// outputFormat picks the output format. An explicit format wins, then the
// extension of the output path, then the configured default.
func outputFormat(configured, output string, explicit bool) string {
	if !explicit {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".png":
			return "png"
		case ".pdf":
			return "pdf"
		}
	}
	return strings.ToLower(configured)
}

func optionsFromConfig(cfg *config.Config, format string, logger *zap.Logger) (api.Options, error) {
	size, err := page.ParseSize(cfg.Document.PageSize)
	if err != nil {
		return api.Options{}, err
	}
	f, err := api.ParseFormat(format)
	if err != nil {
		return api.Options{}, err
	}

	opts := api.DefaultOptions()
	for _, o := range []api.Option{
		api.WithPageSize(size.Width, size.Height),
		api.WithPageOrientation(api.PageOrientation(strings.ToLower(cfg.Document.Orientation))),
		api.WithMargins(cfg.Document.Margin, cfg.Document.Margin, cfg.Document.Margin, cfg.Document.Margin),
		api.WithFormat(f),
		api.WithDPI(cfg.Render.DPI),
		api.WithCompression(cfg.Render.Compress),
		api.WithRenderBackgrounds(!cfg.Render.NoBackgrounds),
		api.WithRenderBorders(!cfg.Render.NoBorders),
		api.WithDebugDrawBoxes(cfg.Render.DebugBoxes),
		api.WithResourceTimeout(cfg.Resources.Timeout),
		api.WithTitle(cfg.Document.Title),
		api.WithAuthor(cfg.Document.Author),
		api.WithSubject(cfg.Document.Subject),
		api.WithKeywords(cfg.Document.Keywords),
		api.WithCreator(cfg.Document.Creator),
		api.WithLogger(logger),
	} {
		o(&opts)
	}
	opts.ResourcePaths = append(opts.ResourcePaths, cfg.Resources.SearchPaths...)
	opts.FontDirectories = append(opts.FontDirectories, cfg.Render.FontDirs...)
	return opts, nil
}
