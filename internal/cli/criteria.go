package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/InteliHire/internal/export"
	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func newDefaultCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print the default scoring template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.template()
			if err != nil {
				return err
			}
			return writeCriteria(cmd.OutOrStdout(), c, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format (yaml or json)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a scoring configuration",
		Long: `Validates a scoring configuration and prints its total weight, maximum
score, errors and warnings. Exits non-zero when the configuration has errors.
Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCriteria(cmd, args[0])
			if err != nil {
				return err
			}
			v := scoring.Validate(c)
			printReport(cmd.OutOrStdout(), c, v)
			return v.Err()
		},
	}
}

func newDistributeCmd() *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "distribute FILE",
		Short: "Spread 100% of the weight evenly across enabled criteria",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCriteria(cmd, args[0])
			if err != nil {
				return err
			}
			scoring.AutoDistribute(c)

			if out == "" {
				return writeCriteria(cmd.OutOrStdout(), c, format)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			if err := writeCriteria(f, c, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format (yaml or json)")
	return cmd
}

func newMaxScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "max-score FILE",
		Short: "Print the maximum raw score of a scoring configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCriteria(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), scoring.MaxScore(c))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a scoring configuration to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readCriteria(cmd, args[0])
			if err != nil {
				return err
			}
			path, err := export.ExportCriteria(c, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "scoring-criteria.xlsx", "workbook path")
	return cmd
}

func readCriteria(cmd *cobra.Command, path string) (scoring.Criteria, error) {
	if path != "-" {
		return scoring.LoadTemplate(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return scoring.ParseCriteria(data)
}

func writeCriteria(w io.Writer, c scoring.Criteria, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printReport(w io.Writer, c scoring.Criteria, v scoring.ValidationResult) {
	status := "valid"
	if !v.Valid {
		status = "invalid"
	}
	fmt.Fprintf(w, "Status:       %s\n", status)
	fmt.Fprintf(w, "Total weight: %.2f%%\n", scoring.EnabledWeightSum(c))
	fmt.Fprintf(w, "Max score:    %d\n", scoring.MaxScore(c))
	fmt.Fprintf(w, "Enabled:      %d of %d\n", len(c.Enabled()), len(scoring.Keys))

	if len(v.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range v.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
	if len(v.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, e := range v.Warnings {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}
