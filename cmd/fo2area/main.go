// Command fo2area runs the layout/pagination core (pkg/api) over an
// XSL-FO document and writes its resulting area tree as debug JSON.
// Grounded on the teacher's cmd/gompdf/main.go flag-based CLI, restructured
// around github.com/urfave/cli/v3 subcommands in the style of
// rupor-github-fb2cng/cmd/fbc/main.go (config file loading in Before,
// structured logging via zap threaded through context).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/xsllayout/xsl-layout/internal/area"
	"github.com/xsllayout/xsl-layout/pkg/api"
	"github.com/xsllayout/xsl-layout/pkg/api/config"
)

type envKey struct{}

type env struct {
	cfg    config.Config
	logger *zap.Logger
}

func envFromContext(ctx context.Context) *env {
	e, _ := ctx.Value(envKey{}).(*env)
	if e == nil {
		e = &env{cfg: config.Default(), logger: zap.NewNop()}
	}
	return e
}

func withEnv(ctx context.Context, e *env) context.Context {
	return context.WithValue(ctx, envKey{}, e)
}

func prepareEnv(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := &env{}
	var err error

	if path := cmd.String("config"); path != "" {
		e.cfg, err = config.Load(path)
		if err != nil {
			return ctx, fmt.Errorf("loading configuration: %w", err)
		}
	} else {
		e.cfg = config.Default()
	}
	if cmd.Bool("strict") {
		e.cfg.Strict = true
	}

	e.logger = e.cfg.Logging.BuildLogger()
	return withEnv(ctx, e), nil
}

func teardownEnv(ctx context.Context, _ *cli.Command) error {
	return envFromContext(ctx).logger.Sync()
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "fo2area",
		Usage:           "lays out an XSL-FO document into an area tree",
		HideHelpCommand: true,
		Before:          prepareEnv,
		After:           teardownEnv,
		OnUsageError:    usageErrorHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "strict", Usage: "set the strict configuration option (carried into api.Options.Strict; layout does not consult it)"},
		},
		Commands: []*cli.Command{
			layoutCommand(),
			validateCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fo2area: %v\n", err)
		os.Exit(1)
	}
}

func layoutCommand() *cli.Command {
	return &cli.Command{
		Name:         "layout",
		Usage:        "format an XSL-FO document and print its area tree as JSON",
		OnUsageError: usageErrorHandler,
		ArgsUsage:    "SOURCE [DESTINATION]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "detail", Value: "full", Usage: "debug JSON detail level: geometry, spacing, or full"},
		},
		Action: runLayout,
	}
}

func runLayout(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("missing SOURCE argument")
	}
	source := cmd.Args().Get(0)

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening %q: %w", source, err)
	}
	defer f.Close()

	opts := e.cfg.ToOptions()
	converter := api.NewWithOptions(opts)

	result, err := converter.Convert(f)
	if err != nil {
		return fmt.Errorf("converting %q: %w", source, err)
	}
	for _, d := range result.Diagnostics {
		e.logger.Warn(d.Message)
	}

	detail := parseDetailLevel(cmd.String("detail"))
	data, err := area.ToDebugJSON(result.Tree, detail)
	if err != nil {
		return fmt.Errorf("serializing area tree: %w", err)
	}

	out := os.Stdout
	if cmd.Args().Len() > 1 {
		dest := cmd.Args().Get(1)
		out, err = os.Create(dest)
		if err != nil {
			return fmt.Errorf("creating %q: %w", dest, err)
		}
		defer out.Close()
	}
	_, err = out.Write(data)
	return err
}

func parseDetailLevel(s string) area.DetailLevel {
	switch s {
	case "geometry":
		return area.DetailGeometry
	case "spacing":
		return area.DetailSpacing
	default:
		return area.DetailFull
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:         "validate",
		Usage:        "run the full layout pipeline on an XSL-FO document and report only its diagnostics, not the area tree",
		OnUsageError: usageErrorHandler,
		ArgsUsage:    "SOURCE",
		Action:       runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("missing SOURCE argument")
	}
	source := cmd.Args().Get(0)

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening %q: %w", source, err)
	}
	defer f.Close()

	converter := api.NewWithOptions(e.cfg.ToOptions())
	result, err := converter.Convert(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: invalid: %v\n", source, err)
		os.Exit(1)
	}
	if len(result.Diagnostics) == 0 {
		fmt.Printf("%s: valid, no diagnostics\n", source)
		return nil
	}
	fmt.Printf("%s: valid, %d diagnostic(s)\n", source, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		fmt.Printf("  - %s\n", d.Message)
	}
	return nil
}
