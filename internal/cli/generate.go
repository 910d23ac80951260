package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/nanogen/internal/config"
	"github.com/mrz1836/nanogen/internal/pipeline"
	"github.com/mrz1836/nanogen/internal/signal"
	"github.com/mrz1836/nanogen/internal/tui"
)

// generateOptions holds flags specific to the generate command.
type generateOptions struct {
	projectRoot string
	schemaDir   string
	schema      string
	outputDir   string
}

// overrides converts the flags into config overrides; empty values are ignored.
func (o *generateOptions) overrides() *config.Config {
	return &config.Config{
		ProjectRoot: o.projectRoot,
		Schema: config.SchemaConfig{
			Dir:  o.schemaDir,
			File: o.schema,
		},
		Output: config.OutputConfig{
			Dir: o.outputDir,
		},
	}
}

// AddGenerateCommand adds the generate command to the root command.
func AddGenerateCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newGenerateCmd(flags))
}

func newGenerateCmd(flags *GlobalFlags) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compile the schema and generate nanopb sources",
		Long: `Compile the protobuf schema to a descriptor, then run the nanopb generator on it.

The run stops at the first failure and reports which stage failed, the exact
command, the tool's own error output and a suggested fix. The exit code is 0
only when both <name>.pb.h and <name>.pb.c were written.

Examples:
  nanogen generate
  nanogen generate --schema-dir proto --schema telemetry.proto --output-dir src
  nanogen generate --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.projectRoot, "project-root", "", "firmware project root (default: current directory)")
	cmd.Flags().StringVar(&opts.schemaDir, "schema-dir", "", "directory holding the schema and options files")
	cmd.Flags().StringVar(&opts.schema, "schema", "", "schema file name inside the schema directory")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for the generated .pb.h and .pb.c")

	return cmd
}

// runGenerate runs the pipeline once and renders its result.
func runGenerate(ctx context.Context, w io.Writer, flags *GlobalFlags, opts *generateOptions) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := loadConfig(ctx, flags, opts.overrides())
	if err != nil {
		return err
	}

	handler := signal.NewHandler(ctx)
	defer handler.Stop()
	ctx = handler.Context()

	executor := pipeline.NewExecutor(pipeline.OptionsFromConfig(cfg))

	var styles *tui.OutputStyles
	if flags.Output != OutputJSON {
		out := tui.NewTTYOutput(w, w == os.Stdout && isInteractive())
		styles = out.Styles()
		executor.SetObserver(tui.NewProgressObserver(ctx, out))
	}

	result := pipeline.Run(ctx, newResolver(cfg), executor)

	if sig := handler.Signal(); sig != nil {
		zerolog.Ctx(ctx).Warn().Str("signal", sig.String()).Msg("run interrupted")
	}

	if flags.Output == OutputJSON {
		if err := tui.NewJSONOutput(w).JSON(result); err != nil {
			return err
		}
	} else {
		tui.RenderResult(w, styles, result)
	}

	return markReported(result.Err())
}
