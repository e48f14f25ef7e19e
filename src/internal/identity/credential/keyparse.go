// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package credential

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// parsePrivateKeyPEM scans data for the first private key block and parses it,
// decrypting legacy DEK-Info encrypted blocks with password when present.
// Certificate blocks in the same buffer are skipped.
func parsePrivateKeyPEM(data []byte, password string) (any, error) {
	rest := data
	for len(rest) > 0 {
		block, remaining := pem.Decode(rest)
		if block == nil {
			break
		}
		rest = remaining

		switch block.Type {
		case "RSA PRIVATE KEY", "EC PRIVATE KEY", "PRIVATE KEY", "ENCRYPTED PRIVATE KEY":
			return parseKeyBlock(block, password)
		}
	}

	return nil, ErrNoPrivateKey
}

// parseKeyBlock parses one private key PEM block by type.
func parseKeyBlock(block *pem.Block, password string) (any, error) {
	der := block.Bytes

	//nolint:staticcheck // legacy DEK-Info PEM encryption is exactly what these inputs carry
	if x509.IsEncryptedPEMBlock(block) {
		if password == "" {
			return nil, fmt.Errorf("%w: key is encrypted and no password was supplied", ErrDecrypt)
		}
		decrypted, err := x509.DecryptPEMBlock(block, []byte(password)) //nolint:staticcheck
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
		}
		der = decrypted
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("credential: failed to parse PKCS#1 key: %w", err)
		}
		return key, nil
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("credential: failed to parse EC key: %w", err)
		}
		return key, nil
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("credential: failed to parse PKCS#8 key: %w", err)
		}
		return key, nil
	case "ENCRYPTED PRIVATE KEY":
		// PBES2-encrypted PKCS#8 has no stdlib decrypt path; callers carry
		// these keys inside PFX archives instead.
		return nil, fmt.Errorf("%w: encrypted PKCS#8 keys are not supported, use a PFX archive", ErrUnsupportedFormat)
	}

	return nil, ErrNoPrivateKey
}
