// Command arbiter runs the disinterested third party ("smart contract" in
// original_source) both protocols rely on: it relays the Client's claim to
// the Server, re-checks it, and signs a receipt attesting to the outcome.
package main

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/summitto/fdexchange/config"
	"github.com/summitto/fdexchange/logging"
	"github.com/summitto/fdexchange/metrics"
	"github.com/summitto/fdexchange/protocol/common"
	"github.com/summitto/fdexchange/protocol/protoone"
	"github.com/summitto/fdexchange/protocol/prottwo"
	"github.com/summitto/fdexchange/receipt"
)

func main() {
	var (
		configPath string
		sessionID  string
	)

	root := &cobra.Command{
		Use:   "arbiter",
		Short: "Run the Arbiter role of a fair-data-exchange session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log := logging.New("arbiter", logging.ParseLevel(cfg.LogLevel))

			signer, err := receipt.NewSigningManager(cfg.SigningKeyPath)
			if err != nil {
				log.Warnf("no receipt signing key available, running unsigned: %v", err)
			}
			if signer != nil {
				go func() {
					mux := http.NewServeMux()
					mux.HandleFunc("/arbiter-pubkey.pem", signer.ServePublicKey)
					if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
						log.Warnf("public key server stopped: %v", err)
					}
				}()
			}

			metrics.SessionsStarted.WithLabelValues(fmt.Sprint(cfg.Protocol), "arbiter").Inc()

			var final common.Status
			switch cfg.Protocol {
			case 1:
				a := &protoone.Arbiter{
					ListenAddr: cfg.ArbiterAddr,
					ServerAddr: cfg.ServerAddr,
					Log:        log,
				}
				final, err = a.Run()
			case 2:
				a := &prottwo.Arbiter{
					ListenAddr: cfg.ArbiterAddr,
					ServerAddr: cfg.ServerAddr,
					Log:        log,
				}
				final, err = a.Run()
			default:
				return fmt.Errorf("arbiter: unknown protocol %d (want 1 or 2)", cfg.Protocol)
			}
			if err != nil {
				return err
			}

			metrics.SessionsFinished.WithLabelValues(fmt.Sprint(cfg.Protocol), "arbiter", final.String()).Inc()

			if signer != nil {
				outcome := receipt.Outcome{
					SessionID: sessionID,
					Protocol:  cfg.Protocol,
					Success:   final == common.Success,
					DataHash:  "", // the Arbiter never learns the plaintext hash out of band
					IssuedAt:  time.Now().Unix(),
				}
				sig, err := signer.Sign(outcome)
				if err != nil {
					log.Warnf("failed to sign receipt: %v", err)
				} else {
					log.Infof("signed receipt for session %q: %s", sessionID, hex.EncodeToString(sig))
				}
			}
			return nil
		},
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.Flags().StringVar(&sessionID, "session-id", "default", "identifier recorded in the signed receipt")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
