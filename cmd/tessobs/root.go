package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/oxygene76/tessobs/internal/types"
	"github.com/oxygene76/tessobs/pkg/astronomy/coords"
	"github.com/oxygene76/tessobs/pkg/observability"
	"github.com/oxygene76/tessobs/pkg/resolver"
	"github.com/oxygene76/tessobs/pkg/utils"
)

const (
	appName = "tessobs"
	version = "v1.0.0"
)

// resolverFactory builds the name resolver once configuration is known
type resolverFactory func(cfg utils.ResolverConfig, logger zerolog.Logger) resolver.Resolver

func newSimbadResolver(cfg utils.ResolverConfig, logger zerolog.Logger) resolver.Resolver {
	return resolver.NewClient(cfg.Endpoint, cfg.Timeout, resolver.WithLogger(logger))
}

type app struct {
	stdout      io.Writer
	stderr      io.Writer
	logger      zerolog.Logger
	newResolver resolverFactory

	cfgFile    string
	verbose    bool
	noColor    bool
	dumpConfig bool
	ecliptic   []float64
}

// execute runs the command line and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, newResolver resolverFactory) int {
	a := &app{
		stdout:      stdout,
		stderr:      stderr,
		logger:      utils.NewLogger(stderr, "info", false),
		newResolver: newResolver,
	}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if errors.Is(err, types.ErrTargetNotFound) {
		a.logger.Error().Err(err).Msg("Target name failed to resolve, please check")
		return 1
	}
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	a.logger.Error().Err(err).Str("codespace", codespace).Uint32("code", code).Msg(appName + " failed")
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	defaultPath, _ := utils.GetConfigPath()
	cmd := &cobra.Command{
		Use:   appName + " <target name>",
		Short: "When might a star be observed by TESS",
		Long: `Resolve a target name with SIMBAD and estimate when it falls inside a
TESS observing sector, from the date the antisolar point crosses the
target's ecliptic longitude.

Examples:
  tessobs HD 209458
  tessobs "Pi Men"
  tessobs --ecliptic 90,-20 my-field`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if a.dumpConfig || len(a.ecliptic) > 0 {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: a.run,
	}

	cmd.Flags().StringVar(&a.cfgFile, "config", "", fmt.Sprintf("config file (default is %s)", defaultPath))
	cmd.Flags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")
	cmd.Flags().BoolVar(&a.dumpConfig, "dump-config", false, "print the effective configuration as YAML and exit")
	cmd.Flags().Float64SliceVar(&a.ecliptic, "ecliptic", nil, "use ecliptic lon,lat in degrees instead of resolving the name")

	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	config, err := utils.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}

	color := config.Output.Color && !a.noColor
	level := config.Output.LogLevel
	if a.verbose {
		level = zerolog.LevelDebugValue
	}
	a.logger = utils.NewLogger(a.stderr, level, color)

	if a.dumpConfig {
		data, err := config.Marshal()
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(data)
		return err
	}

	planner, err := observability.NewPlanner(config.Mission)
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	out := newPrinter(a.stdout, color)

	var target *coords.Target
	if len(a.ecliptic) > 0 {
		if len(a.ecliptic) != 2 {
			return errorsmod.Wrapf(types.ErrMalformedCoordinates, "--ecliptic takes lon,lat, got %d values", len(a.ecliptic))
		}
		if name == "" {
			name = fmt.Sprintf("ecliptic %g,%g", a.ecliptic[0], a.ecliptic[1])
		}
		target = coords.FromEcliptic(name, a.ecliptic[0], a.ecliptic[1])
	} else {
		target, err = a.resolve(cmd.Context(), config.Resolver, name)
		if err != nil {
			return err
		}
		out.resolved(target.Name)
	}

	a.logger.Debug().
		Str("name", target.Name).
		Float64("ra", target.Equatorial.Lon).
		Float64("dec", target.Equatorial.Lat).
		Float64("ecl_lon", target.Ecliptic.Lon).
		Float64("ecl_lat", target.Ecliptic.Lat).
		Float64("gal_l", target.Galactic.Lon).
		Float64("gal_b", target.Galactic.Lat).
		Msg("target coordinates")

	report, err := planner.Plan(target)
	if err != nil {
		return err
	}
	a.logger.Debug().Str("hemisphere", string(report.Hemisphere)).Bool("observable", report.Observable).Msg("observability")

	out.report(report)
	return nil
}

// resolve looks the name up. Resolver warnings are only shown in verbose
// mode; the quieter logger is local to this call.
func (a *app) resolve(ctx context.Context, cfg utils.ResolverConfig, name string) (*coords.Target, error) {
	logger := a.logger
	if !a.verbose {
		logger = logger.Level(zerolog.ErrorLevel)
	}
	res, err := a.newResolver(cfg, logger).Resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	return coords.NewTarget(res)
}
