// Command client runs the Client role of either fair-data-exchange
// protocol: it accepts the Server's (encrypted or symmetrically-encrypted)
// data, builds its half of the Arbiter's verification check, and decrypts
// the data once the Arbiter signals success.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/summitto/fdexchange/config"
	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/metrics"
	"github.com/summitto/fdexchange/protocol/protoone"
	"github.com/summitto/fdexchange/protocol/prottwo"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "client",
		Short: "Run the Client role of a fair-data-exchange session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log := logging.New("client", logging.ParseLevel(cfg.LogLevel))

			metrics.SessionsStarted.WithLabelValues(fmt.Sprint(cfg.Protocol), "client").Inc()

			var status fmt.Stringer
			switch cfg.Protocol {
			case 1:
				c := &protoone.Client{
					HashPath:    cfg.HashFile,
					ListenAddr:  cfg.ClientAddr,
					ArbiterAddr: cfg.ArbiterAddr,
					Log:         log,
				}
				final, err := c.Run()
				if err != nil {
					return err
				}
				status = final
			case 2:
				c := &prottwo.Client{
					HashPath:    cfg.HashFile,
					ListenAddr:  cfg.ClientAddr,
					ArbiterAddr: cfg.ArbiterAddr,
					Log:         log,
				}
				final, err := c.Run()
				if err != nil {
					return err
				}
				status = final
			default:
				return fmt.Errorf("client: unknown protocol %d (want 1 or 2)", cfg.Protocol)
			}

			metrics.SessionsFinished.WithLabelValues(fmt.Sprint(cfg.Protocol), "client", status.String()).Inc()
			return nil
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
