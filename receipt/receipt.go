// Package receipt signs and serves the Arbiter's final verdict for a
// protocol session, so either party can later prove to a third party what
// outcome the Arbiter actually reached.
//
// Adapted from aes_tag/signing_manager.go's TagSigningManager: the same
// PEM-load-key / ECDSA-sign / serve-public-key shape, repurposed from
// signing AES-GCM tag ciphertexts to signing protocol session outcomes.
package receipt

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/summitto/fdexchange/utils"
)

// Outcome is the fact the Arbiter attests to: which session, which
// protocol variant, and whether it concluded SUCCESS or ABORT.
type Outcome struct {
	SessionID string
	Protocol  int // 1 or 2
	Success   bool
	DataHash  string // hex SHA3-256 of the exchanged data, as claimed by the Server
	IssuedAt  int64  // unix seconds
}

// canonicalBytes produces a deterministic byte encoding of an Outcome for
// signing; field boundaries are length-prefixed so no delimiter collision
// is possible.
func (o Outcome) canonicalBytes() []byte {
	var buf bytes.Buffer
	writeField := func(s string) {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
		buf.Write(lenBuf[:])
		buf.WriteString(s)
	}
	writeField(o.SessionID)
	var protoBuf [4]byte
	binary.BigEndian.PutUint32(protoBuf[:], uint32(o.Protocol))
	buf.Write(protoBuf[:])
	if o.Success {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	writeField(o.DataHash)
	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], uint64(o.IssuedAt))
	buf.Write(tsBuf[:])
	return buf.Bytes()
}

// SigningManager holds the Arbiter's long-lived signing key and signs
// session outcomes with it.
type SigningManager struct {
	signingKey   *ecdsa.PrivateKey
	lastModified time.Time
}

// NewSigningManager loads a PEM-encoded EC private key from signingKeyPath.
func NewSigningManager(signingKeyPath string) (*SigningManager, error) {
	file, err := os.ReadFile(signingKeyPath)
	if err != nil {
		return nil, fmt.Errorf("receipt: reading signing key: %w", err)
	}

	block, _ := pem.Decode(file)
	if block == nil {
		return nil, fmt.Errorf("receipt: no PEM block found in %s", signingKeyPath)
	}

	ecdsaKey, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("receipt: parsing EC private key: %w", err)
	}

	log.Printf("receipt: loaded signing key from %s (curve %s)", signingKeyPath, ecdsaKey.Params().Name)

	return &SigningManager{signingKey: ecdsaKey, lastModified: time.Now()}, nil
}

// Sign returns an ASN.1-encoded ECDSA-SHA3-256 signature over o.
func (m *SigningManager) Sign(o Outcome) ([]byte, error) {
	return utils.ECDSASign(m.signingKey, o.canonicalBytes())
}

// Verify checks a signature produced by Sign under the Arbiter's public key.
func Verify(pub *ecdsa.PublicKey, o Outcome, sig []byte) bool {
	return utils.ECDSAVerify(pub, sig, o.canonicalBytes())
}

// ServePublicKey serves the Arbiter's public key as a PEM file, so either
// party can fetch it independently to verify a receipt.
func (m *SigningManager) ServePublicKey(w http.ResponseWriter, req *http.Request) {
	pubPEM, err := utils.ECDSAPubkeyToPEM(&m.signingKey.PublicKey)
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/x-pem-file")
	http.ServeContent(w, req, "arbiter-signing-key.pem", m.lastModified, bytes.NewReader(pubPEM))
}
