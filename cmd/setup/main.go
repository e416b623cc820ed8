// Command setup prepares the data and hash files the Server and Client
// CLIs read at startup, the Go analogue of original_source/src/bin/setup.rs.
package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/summitto/fdexchange/config"
	"github.com/summitto/fdexchange/utils"
)

func main() {
	var (
		filename       string
		size           int
		dataFile       string
		hashFile       string
		signingKeyPath string
	)

	root := &cobra.Command{
		Use:   "setup",
		Short: "Generate the data/hash files and the Arbiter's signing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			switch {
			case filename != "":
				raw, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("setup: reading %s: %w", filename, err)
				}
				data = raw
			case size > 0:
				data = utils.GetRandom(size)
			default:
				return fmt.Errorf("setup: one of --filename or --size must be given")
			}

			if err := os.WriteFile(dataFile, data, 0o644); err != nil {
				return fmt.Errorf("setup: writing %s: %w", dataFile, err)
			}
			hash := utils.HexSha3(data)
			if err := os.WriteFile(hashFile, []byte(hash), 0o644); err != nil {
				return fmt.Errorf("setup: writing %s: %w", hashFile, err)
			}
			fmt.Printf("setup: wrote %s (%d bytes) and %s (%s)\n", dataFile, len(data), hashFile, hash)

			if _, err := os.Stat(signingKeyPath); err == nil {
				fmt.Printf("setup: %s already exists, leaving it alone\n", signingKeyPath)
				return nil
			}
			return generateSigningKey(signingKeyPath)
		},
	}

	defaults := config.Default()
	root.Flags().StringVar(&filename, "filename", "", "path to a file to use as the exchanged data")
	root.Flags().IntVar(&size, "size", 0, "generate this many random bytes instead")
	root.Flags().StringVar(&dataFile, "data-file", defaults.DataFile, "where to write the data")
	root.Flags().StringVar(&hashFile, "hash-file", defaults.HashFile, "where to write the hex digest")
	root.Flags().StringVar(&signingKeyPath, "signing-key", defaults.SigningKeyPath, "where to write the Arbiter's receipt-signing key")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generateSigningKey(path string) error {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("setup: generating signing key: %w", err)
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("setup: marshaling signing key: %w", err)
	}
	block := &pem.Block{Type: "EC PRIVATE KEY", Bytes: der}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		return fmt.Errorf("setup: writing signing key: %w", err)
	}
	fmt.Printf("setup: wrote signing key to %s\n", path)
	return nil
}
