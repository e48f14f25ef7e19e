// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package token implements certificate-based (proof-of-possession) client
// authentication against an OAuth2 token authority. The provider signs a JWT
// client assertion with the credential's private key, identifies the
// registered certificate via the SHA-1 thumbprint in the x5t header, and
// exchanges the assertion for a short-lived bearer token using the
// client-credentials grant.
package token
