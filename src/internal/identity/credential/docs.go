// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package credential normalizes an [X.509] client certificate and its private
// key into the single in-memory form the token provider needs: certificate
// PEM, unencrypted [PKCS8] key PEM, and the SHA-1 thumbprint the authority
// uses to match the proof-of-possession assertion to a registered credential.
//
// Three input encodings are supported, tried as an explicit ordered list of
// parser strategies: a separate certificate/key PEM pair, a [PKCS12] (PFX)
// archive, and a combined PEM buffer carrying both a key and a certificate
// block. Certificate blocks may additionally arrive [PKCS7]-wrapped.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS8]: https://grokipedia.com/page/PKCS_8
// [PKCS12]: https://grokipedia.com/page/PKCS_12
// [PKCS7]: https://grokipedia.com/page/PKCS_7
package credential
