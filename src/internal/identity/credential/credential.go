// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package credential

import (
	"bytes"
	"crypto"
	"crypto/sha1"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
	pkcs12 "software.sslmate.com/src/go-pkcs12"
)

var (
	// ErrUnsupportedFormat indicates that no supported credential encoding parsed successfully.
	ErrUnsupportedFormat = errors.New("credential: no supported encoding parsed")

	// ErrDecrypt indicates that a private key required a password and decryption failed,
	// either because no password was supplied or because it was wrong.
	ErrDecrypt = errors.New("credential: private key decryption failed")

	// ErrNoCertificate indicates that no certificate block was found in the input.
	ErrNoCertificate = errors.New("credential: no certificate block found")

	// ErrNoPrivateKey indicates that no private key block was found in the input.
	ErrNoPrivateKey = errors.New("credential: no private key block found")

	// ErrUnsupportedKey indicates a private key type that cannot sign client assertions.
	ErrUnsupportedKey = errors.New("credential: unsupported private key type")
)

// PEM delimiters used by the combined-buffer strategy to locate the
// certificate block next to a private key block.
const (
	certBeginMarker = "-----BEGIN CERTIFICATE-----"
	certEndMarker   = "-----END CERTIFICATE-----"
)

// Credential is the normalized client credential produced by a Loader.
// It is immutable after Load and is never persisted.
type Credential struct {
	// Certificate is the parsed leaf certificate.
	Certificate *x509.Certificate

	// Signer is the private key paired with Certificate.
	Signer crypto.Signer

	// PublicCertPEM is the certificate re-encoded as a single PEM block.
	PublicCertPEM string

	// PrivateKeyPEM is the private key re-encoded as an unencrypted PKCS#8 PEM block.
	PrivateKeyPEM string

	// Thumbprint is the lowercase hex SHA-1 digest of the certificate's DER
	// encoding. The token authority matches the assertion's x5t header against
	// this value, so it is SHA-1 regardless of the certificate's own
	// signature algorithm.
	Thumbprint string
}

// Loader parses certificate and key material into a Credential.
// It maintains internal configuration such as the certificate block type.
type Loader struct {
	certBlockType string
}

// NewLoader creates a new Loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		certBlockType: "CERTIFICATE",
	}
}

// strategy is one ordered credential parser. Each strategy either produces a
// complete Credential or reports why it could not; nothing is retained on
// failure.
type strategy struct {
	name  string
	parse func() (*Credential, error)
}

// Load parses certData (and keyData, when the key travels in its own file)
// into a Credential, trying each supported encoding in order. The first
// successful strategy wins.
//
// Parameters:
//   - certData: Certificate file contents (PEM pair member, PFX archive, or combined PEM)
//   - password: Optional password for encrypted keys or PFX archives (empty means none)
//   - keyData: Optional separate private key file contents; when non-empty only
//     the separate-pair strategy applies
//
// Returns:
//   - *Credential: Normalized credential
//   - error: ErrDecrypt when any strategy hit a decryption failure, otherwise
//     ErrUnsupportedFormat wrapping the last strategy failure
//
// A decryption failure is never masked as a format mismatch: if any strategy
// reached an encrypted key and the password did not unlock it, that failure
// is the one surfaced.
func (l *Loader) Load(certData []byte, password string, keyData []byte) (*Credential, error) {
	var strategies []strategy
	if len(keyData) > 0 {
		strategies = []strategy{
			{"separate PEM pair", func() (*Credential, error) { return l.parseSeparatePair(certData, keyData, password) }},
		}
	} else {
		strategies = []strategy{
			{"PKCS#12 archive", func() (*Credential, error) { return l.parsePKCS12(certData, password) }},
			{"combined PEM", func() (*Credential, error) { return l.parseCombinedPEM(certData, password) }},
		}
	}

	var lastErr, decryptErr error
	for _, s := range strategies {
		cred, err := s.parse()
		if err == nil {
			return cred, nil
		}
		if errors.Is(err, ErrDecrypt) && decryptErr == nil {
			decryptErr = fmt.Errorf("%s: %w", s.name, err)
		}
		lastErr = fmt.Errorf("%s: %w", s.name, err)
	}

	if decryptErr != nil {
		return nil, decryptErr
	}
	return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, lastErr)
}

// parseSeparatePair handles a certificate PEM plus a private key in its own buffer.
func (l *Loader) parseSeparatePair(certData, keyData []byte, password string) (*Credential, error) {
	cert, err := l.decodeCertificate(certData)
	if err != nil {
		return nil, err
	}

	key, err := parsePrivateKeyPEM(keyData, password)
	if err != nil {
		return nil, err
	}

	return newCredential(cert, key)
}

// parsePKCS12 handles a PFX/P12 archive. Chain certificates beyond the leaf
// are ignored; an empty password is allowed.
func (l *Loader) parsePKCS12(data []byte, password string) (*Credential, error) {
	key, cert, _, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		if errors.Is(err, pkcs12.ErrIncorrectPassword) {
			return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
		}
		return nil, fmt.Errorf("credential: failed to parse PKCS#12 archive: %w", err)
	}

	return newCredential(cert, key)
}

// parseCombinedPEM handles a single buffer carrying both a private key block
// and a certificate block. The certificate is located by delimiter scan so a
// key block sitting before or after it does not matter.
func (l *Loader) parseCombinedPEM(data []byte, password string) (*Credential, error) {
	key, err := parsePrivateKeyPEM(data, password)
	if err != nil {
		return nil, err
	}

	certBlock, err := extractCertificateBlock(data)
	if err != nil {
		return nil, err
	}

	cert, err := l.decodeCertificate(certBlock)
	if err != nil {
		return nil, err
	}

	return newCredential(cert, key)
}

// decodeCertificate decodes a single certificate from PEM, DER, or PKCS7 data.
func (l *Loader) decodeCertificate(data []byte) (*x509.Certificate, error) {
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != l.certBlockType {
			return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrNoCertificate, block.Type)
		}
		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, fmt.Errorf("%w: not a certificate or PKCS7 bundle", ErrNoCertificate)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, fmt.Errorf("%w: PKCS7 bundle carries no certificates", ErrNoCertificate)
	}

	return p.Content.SignedData.Certificates[0], nil
}

// extractCertificateBlock locates the first certificate block in data by
// scanning for the BEGIN/END CERTIFICATE delimiters.
func extractCertificateBlock(data []byte) ([]byte, error) {
	start := bytes.Index(data, []byte(certBeginMarker))
	if start < 0 {
		return nil, ErrNoCertificate
	}

	end := bytes.Index(data[start:], []byte(certEndMarker))
	if end < 0 {
		return nil, fmt.Errorf("%w: certificate block is not terminated", ErrNoCertificate)
	}

	return data[start : start+end+len(certEndMarker)], nil
}

// newCredential assembles the normalized form from a parsed certificate and key.
// It is the single construction point, so a failed strategy can never leave a
// partial Credential behind.
func newCredential(cert *x509.Certificate, key any) (*Credential, error) {
	signer, ok := key.(crypto.Signer)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKey, key)
	}

	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}

	// SHA-1 is not an integrity choice here: the authority identifies the
	// registered public key by its SHA-1 thumbprint (the assertion's x5t
	// header), so every parse path must fingerprint the same way.
	sum := sha1.Sum(cert.Raw)

	return &Credential{
		Certificate:   cert,
		Signer:        signer,
		PublicCertPEM: string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})),
		PrivateKeyPEM: string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8})),
		Thumbprint:    hex.EncodeToString(sum[:]),
	}, nil
}
