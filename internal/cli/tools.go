package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/nanogen/internal/config"
	"github.com/mrz1836/nanogen/internal/errors"
	"github.com/mrz1836/nanogen/internal/resolver"
	"github.com/mrz1836/nanogen/internal/tui"
)

// AddToolsCommand adds the tools command to the root command.
func AddToolsCommand(root *cobra.Command, flags *GlobalFlags) {
	root.AddCommand(newToolsCmd(flags))
}

func newToolsCmd(flags *GlobalFlags) *cobra.Command {
	var projectRoot string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Show which code generation tools are installed",
		Long: `Check the schema compiler and every generator location, in the order
'nanogen generate' tries them, and mark the one it would use.

Exits 1 when the compiler or every generator candidate is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTools(cmd.Context(), cmd.OutOrStdout(), flags, projectRoot)
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", "", "firmware project root (default: current directory)")

	return cmd
}

// surveyOutput is the JSON shape of the tools command.
type surveyOutput struct {
	*resolver.SurveyReport

	Ready bool `json:"ready"`
}

// runTools surveys every discovery option and renders the report.
func runTools(ctx context.Context, w io.Writer, flags *GlobalFlags, projectRoot string) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := loadConfig(ctx, flags, &config.Config{ProjectRoot: projectRoot})
	if err != nil {
		return err
	}

	report, err := newResolver(cfg).Survey(ctx, cfg.Compiler.Command)
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		if err := tui.NewJSONOutput(w).JSON(surveyOutput{SurveyReport: report, Ready: report.Ready()}); err != nil {
			return err
		}
	} else {
		tui.CheckNoColor()
		tui.RenderSurvey(w, tui.NewOutputStyles(), report)
	}

	if !report.Ready() {
		return markReported(errors.ErrMissingRequiredTools)
	}
	return nil
}
