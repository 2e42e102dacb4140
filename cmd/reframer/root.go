package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/nocturnecity/image-reframer/internal"
	"github.com/nocturnecity/image-reframer/pkg"
)

type app struct {
	cfg *internal.Config
	out io.Writer

	logLVL      string
	presetsFile string
	region      string
	metricsFile string
	jsonOut     bool

	metrics *internal.Metrics
}

func newApp(cfg *internal.Config, out io.Writer) *app {
	return &app{cfg: cfg, out: out, metrics: internal.NewMetrics()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reframer",
		Short: "Resize and reframe images for social media and custom sizes",
		Long: `Reframer resizes a single image to a platform preset, a percentage or explicit
dimensions. When the aspect ratio changes, choose whether to stretch, crop or pad.
Sources and destinations can be local paths or s3://bucket/key locations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.flushMetrics()
		},
	}
	root.PersistentFlags().StringVar(&a.logLVL, "loglvl", a.cfg.LogLevel, "set logging level: 'debug', 'info', 'error'")
	root.PersistentFlags().StringVar(&a.presetsFile, "presets", a.cfg.PresetsFile, "YAML or TOML file replacing the built-in presets")
	root.PersistentFlags().StringVar(&a.region, "region", a.cfg.Region, "AWS region for s3:// locations")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", a.cfg.MetricsFile, "write Prometheus metrics to this textfile")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print the result as JSON")

	root.AddCommand(a.resizeCmd(), a.convertCmd(), a.presetsCmd(), a.versionCmd())
	return root
}

func (a *app) logger() (hclog.Logger, error) {
	lvl, err := internal.ParseLevel(a.logLVL)
	if err != nil {
		return nil, err
	}
	opts := []internal.Option{internal.WithLevel(lvl)}
	if lvl == internal.DBG {
		opts = append(opts, internal.WithLocation())
	}
	return internal.NewStdLog(opts...), nil
}

// env wires logging, presets and storage. S3 is only set up when a location needs it.
func (a *app) env(locations ...string) (internal.Env, error) {
	log, err := a.logger()
	if err != nil {
		return internal.Env{}, err
	}
	presets, err := internal.LoadPresets(a.presetsFile)
	if err != nil {
		return internal.Env{}, err
	}
	store := &internal.RoutingStore{Local: internal.NewLocalStore(log.Named("local"))}
	for _, l := range locations {
		if strings.HasPrefix(l, "s3://") {
			s3, err := internal.NewS3Store(a.region, log.Named("s3"))
			if err != nil {
				return internal.Env{}, err
			}
			store.S3 = s3
			break
		}
	}
	return internal.Env{Log: log, Store: store, Presets: presets, Metrics: a.metrics}, nil
}

func (a *app) flushMetrics() error {
	if a.metricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

type processor interface {
	ProcessRequest(ctx context.Context) (*pkg.Result, error)
}

func (a *app) run(ctx context.Context, p processor) error {
	res, err := p.ProcessRequest(ctx)
	if err != nil {
		// failures are counted too
		_ = a.flushMetrics()
		if a.jsonOut {
			_ = json.NewEncoder(a.out).Encode(pkg.ErrorResponse{Error: err.Error()})
		}
		return err
	}
	return a.printResult(res)
}

func (a *app) printResult(res *pkg.Result) error {
	if a.jsonOut {
		return printJSON(a.out, res)
	}
	fmt.Fprintf(a.out, "Saved %s\n", res.Path)
	fmt.Fprintf(a.out, "  Dimensions: %d x %d pixels\n", res.Width, res.Height)
	fmt.Fprintf(a.out, "  Scale:      %d%%\n", res.Percent)
	if res.Policy != "" {
		fmt.Fprintf(a.out, "  Method:     %s\n", res.Policy)
	}
	fmt.Fprintf(a.out, "  Format:     %s (%d bytes)\n", res.Format, res.Bytes)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
