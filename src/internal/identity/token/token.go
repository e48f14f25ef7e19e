// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package token

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/helper/httpclient"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/identity/credential"
)

// assertionType is the client_assertion_type value for JWT proof-of-possession.
const assertionType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// assertionLifetime bounds the validity of a signed client assertion.
// The assertion only needs to survive one token request.
const assertionLifetime = 10 * time.Minute

// Config identifies the confidential client against the token authority.
// It is passed in explicitly so tests can point the provider at a local
// authority; nothing here is read from process-wide state.
type Config struct {
	// TenantID is the directory tenant the client belongs to.
	TenantID string

	// ClientID is the application (client) identifier.
	ClientID string

	// Authority is the token authority base URL, e.g. https://login.microsoftonline.com.
	Authority string

	// Scopes requested for the access token, usually the resource's .default scope.
	Scopes []string
}

// Token is a short-lived bearer token returned by the authority.
// It is consumed read-only by the directory client and never cached across runs.
type Token struct {
	Bearer string
	Expiry time.Time
}

// AuthError carries the authority's rejection verbatim.
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("token: authority rejected the request: %s: %s", e.Code, e.Description)
	}
	return fmt.Sprintf("token: authority rejected the request: %s (HTTP %d)", e.Code, e.StatusCode)
}

// Provider acquires bearer tokens via the OAuth2 client-credentials grant,
// proving possession of the credential's private key with a signed JWT
// client assertion. A single rejected attempt is terminal for the run; there
// is no retry and no cross-process caching.
type Provider struct {
	cfg Config

	// HTTP is the shared HTTP client configuration.
	HTTP *httpclient.Config
}

// NewProvider creates a Provider for the given client configuration.
func NewProvider(cfg Config, hc *httpclient.Config) *Provider {
	return &Provider{cfg: cfg, HTTP: hc}
}

// Endpoint returns the tenant-scoped token endpoint URL.
func (p *Provider) Endpoint() string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(p.cfg.Authority, "/"), p.cfg.TenantID)
}

// Acquire exchanges the credential for a bearer token.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - cred: Normalized client credential to prove possession of
//
// Returns:
//   - *Token: Bearer token with its expiry instant
//   - error: *AuthError when the authority rejects the request, otherwise a
//     transport or encoding failure
func (p *Provider) Acquire(ctx context.Context, cred *credential.Credential) (*Token, error) {
	assertion, err := p.signAssertion(cred)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.cfg.ClientID)
	form.Set("scope", strings.Join(p.cfg.Scopes, " "))
	form.Set("client_assertion_type", assertionType)
	form.Set("client_assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.HTTP.GetUserAgent())

	resp, err := p.HTTP.Client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("token: request to authority failed: %w", err)
	}
	defer resp.Body.Close()

	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("token: reading authority response: %w", err)
	}

	var payload struct {
		AccessToken      string `json:"access_token"`
		ExpiresIn        int64  `json:"expires_in"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("token: decoding authority response (HTTP %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || payload.AccessToken == "" {
		return nil, &AuthError{
			StatusCode:  resp.StatusCode,
			Code:        payload.Error,
			Description: payload.ErrorDescription,
		}
	}

	return &Token{
		Bearer: payload.AccessToken,
		Expiry: time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}

// signAssertion builds and signs the JWT client assertion. The x5t header
// carries the credential's SHA-1 thumbprint so the authority can locate the
// registered public key.
func (p *Provider) signAssertion(cred *credential.Credential) (string, error) {
	method, err := signingMethodFor(cred)
	if err != nil {
		return "", err
	}

	jti, err := randomID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{p.Endpoint()},
		Issuer:    p.cfg.ClientID,
		Subject:   p.cfg.ClientID,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
	}

	tok := jwt.NewWithClaims(method, claims)

	thumb, err := hex.DecodeString(cred.Thumbprint)
	if err != nil {
		return "", fmt.Errorf("token: invalid credential thumbprint: %w", err)
	}
	tok.Header["x5t"] = base64.RawURLEncoding.EncodeToString(thumb)

	signed, err := tok.SignedString(cred.Signer)
	if err != nil {
		return "", fmt.Errorf("token: signing client assertion: %w", err)
	}
	return signed, nil
}

// signingMethodFor maps the credential's key type to a JWS algorithm.
func signingMethodFor(cred *credential.Credential) (jwt.SigningMethod, error) {
	switch key := cred.Signer.(type) {
	case *rsa.PrivateKey:
		return jwt.SigningMethodRS256, nil
	case *ecdsa.PrivateKey:
		switch key.Curve {
		case elliptic.P256():
			return jwt.SigningMethodES256, nil
		case elliptic.P384():
			return jwt.SigningMethodES384, nil
		case elliptic.P521():
			return jwt.SigningMethodES512, nil
		}
		return nil, fmt.Errorf("token: unsupported EC curve %q", key.Curve.Params().Name)
	default:
		return nil, fmt.Errorf("token: cannot sign assertions with key type %T", cred.Signer)
	}
}

// randomID produces a unique jti for one assertion.
func randomID() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("token: generating assertion id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
