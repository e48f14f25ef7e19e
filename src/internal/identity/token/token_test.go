// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package token_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/helper/httpclient"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/identity/credential"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/identity/token"
)

const (
	testTenant = "11111111-2222-3333-4444-555555555555"
	testClient = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
)

// testCredential builds a throwaway self-signed credential for signing assertions.
func testCredential(t *testing.T) *credential.Credential {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "token provider test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPKCS8, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyPKCS8})

	cred, err := credential.NewLoader().Load(certPEM, "", keyPEM)
	require.NoError(t, err)
	return cred
}

func newProvider(authority string) *token.Provider {
	return token.NewProvider(token.Config{
		TenantID:  testTenant,
		ClientID:  testClient,
		Authority: authority,
		Scopes:    []string{"https://graph.microsoft.com/.default"},
	}, httpclient.NewConfig("testing"))
}

func TestAcquireSuccess(t *testing.T) {
	cred := testCredential(t)

	var gotAssertion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "/"+testTenant+"/oauth2/v2.0/token", r.URL.Path)
		assert.Equal(t, "client_credentials", r.PostFormValue("grant_type"))
		assert.Equal(t, testClient, r.PostFormValue("client_id"))
		assert.Equal(t, "https://graph.microsoft.com/.default", r.PostFormValue("scope"))
		assert.Equal(t, "urn:ietf:params:oauth:grant-type:jwt-bearer", r.PostFormValue("client_assertion_type"))
		gotAssertion = r.PostFormValue("client_assertion")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","expires_in":3599,"token_type":"Bearer"}`))
	}))
	defer srv.Close()

	provider := newProvider(srv.URL)
	tok, err := provider.Acquire(context.Background(), cred)
	require.NoError(t, err, "Acquire() error")

	assert.Equal(t, "tok-123", tok.Bearer)
	assert.WithinDuration(t, time.Now().Add(3599*time.Second), tok.Expiry, 5*time.Second)

	// The assertion must verify against the credential's own public key and
	// carry the SHA-1 thumbprint in the x5t header.
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(gotAssertion, claims, func(tk *jwt.Token) (any, error) {
		return cred.Certificate.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err, "client assertion must be a valid RS256 JWT")
	require.True(t, parsed.Valid)

	assert.Equal(t, testClient, claims.Issuer)
	assert.Equal(t, testClient, claims.Subject)
	assert.Contains(t, claims.Audience, provider.Endpoint())
	assert.NotEmpty(t, claims.ID, "assertion must carry a unique jti")

	x5t, _ := parsed.Header["x5t"].(string)
	require.NotEmpty(t, x5t, "assertion must carry an x5t header")
	raw, err := base64.RawURLEncoding.DecodeString(x5t)
	require.NoError(t, err)
	assert.Len(t, raw, 20, "x5t must be a raw SHA-1 digest")
}

func TestAcquireAuthorityRejection(t *testing.T) {
	cred := testCredential(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client","error_description":"AADSTS700027: client assertion contains an invalid signature."}`))
	}))
	defer srv.Close()

	tok, err := newProvider(srv.URL).Acquire(context.Background(), cred)
	require.Error(t, err)
	assert.Nil(t, tok)

	var authErr *token.AuthError
	require.ErrorAs(t, err, &authErr, "rejections must surface as *AuthError")
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Equal(t, "invalid_client", authErr.Code)
	assert.Equal(t, "AADSTS700027: client assertion contains an invalid signature.", authErr.Description)
}

func TestAcquireContextCancellation(t *testing.T) {
	cred := testCredential(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newProvider(srv.URL).Acquire(ctx, cred)
	require.Error(t, err, "cancelled context must abort the request")
}
