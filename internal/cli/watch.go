package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/InteliHire/internal/config"
	"github.com/MikeSquared-Agency/InteliHire/internal/hermes"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print scoring configuration events as they are published",
		Long: `Subscribes to intelihire.scoring.> on the NATS server from the service
config and prints one line per saved, reset or deleted configuration until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			logger := cfg.Logging.NewLogger(cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			events := make(chan string, 64)
			err = client.Subscribe(hermes.SubjectScoringAll, func(subject string, data []byte) {
				select {
				case events <- formatEvent(subject, data, raw):
				default:
					logger.Warn("dropping scoring event, output is behind", "subject", subject)
				}
			})
			if err != nil {
				return err
			}
			logger.Info("watching scoring events", "url", cfg.Hermes.URL)

			for {
				select {
				case <-ctx.Done():
					return nil
				case line := <-events:
					fmt.Fprintln(out, line)
				}
			}
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print event payloads as JSON")
	return cmd
}

func formatEvent(subject string, data []byte, raw bool) string {
	if raw {
		return subject + " " + string(data)
	}
	var evt hermes.ScoringConfigEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return fmt.Sprintf("%s (undecodable: %v)", subject, err)
	}
	line := fmt.Sprintf("%s %s/%s", evt.Timestamp.Format(time.RFC3339), evt.OwnerType, evt.OwnerID)
	if evt.Version > 0 {
		line += fmt.Sprintf(" v%d max_score=%d", evt.Version, evt.MaxScore)
	}
	if evt.ChangedBy != "" {
		line += " by " + evt.ChangedBy
	}
	return line + " [" + subject + "]"
}
