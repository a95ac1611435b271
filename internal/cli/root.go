package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/InteliHire/internal/config"
	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

type rootOptions struct {
	configFile string
}

// NewRootCmd builds the scoringctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "scoringctl",
		Short: "Inspect and edit InteliHire scoring configurations",
		Long: `scoringctl works with scoring configuration files offline: print the
default template, validate a configuration, redistribute its weights, compute
its maximum score or export it to Excel.

Configuration files are YAML or JSON maps keyed by criterion. Criteria and
fields left out of a file take their values from the default template.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "service config file (template path, NATS URL)")

	root.AddCommand(
		newDefaultCmd(opts),
		newValidateCmd(),
		newDistributeCmd(),
		newMaxScoreCmd(),
		newExportCmd(),
		newWatchCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// template returns the configured default template, or the built-in one when
// no config file or template path is set.
func (o *rootOptions) template() (scoring.Criteria, error) {
	if o.configFile == "" {
		return scoring.DefaultCriteria(), nil
	}
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if cfg.Scoring.TemplatePath == "" {
		return scoring.DefaultCriteria(), nil
	}
	return scoring.LoadTemplate(cfg.Scoring.TemplatePath)
}
