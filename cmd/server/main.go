// Command server runs the Server role of either fair-data-exchange
// protocol: it holds the data, commits (Protocol I) or symmetrically
// encrypts (Protocol II) it, and releases the decryption material only
// once the Arbiter confirms the Client's claim checks out.
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
		Use:   "server",
		Short: "Run the Server role of a fair-data-exchange session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log := logging.New("server", logging.ParseLevel(cfg.LogLevel))

			if cfg.MetricsAddr != "" {
				go func() {
					if err := metrics.Serve(cfg.MetricsAddr); err != nil {
						log.Warnf("metrics server stopped: %v", err)
					}
				}()
			}

			metrics.SessionsStarted.WithLabelValues(fmt.Sprint(cfg.Protocol), "server").Inc()

			var status fmt.Stringer
			switch cfg.Protocol {
			case 1:
				s := &protoone.Server{
					DataPath:   cfg.DataFile,
					ClientAddr: cfg.ClientAddr,
					ListenAddr: cfg.ServerAddr,
					Log:        log,
				}
				final, err := s.Run()
				if err != nil {
					return err
				}
				status = final
			case 2:
				s := &prottwo.Server{
					DataPath:   cfg.DataFile,
					ClientAddr: cfg.ClientAddr,
					ListenAddr: cfg.ServerAddr,
					Log:        log,
				}
				final, err := s.Run()
				if err != nil {
					return err
				}
				status = final
			default:
				return fmt.Errorf("server: unknown protocol %d (want 1 or 2)", cfg.Protocol)
			}

			metrics.SessionsFinished.WithLabelValues(fmt.Sprint(cfg.Protocol), "server", status.String()).Inc()
			return nil
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
