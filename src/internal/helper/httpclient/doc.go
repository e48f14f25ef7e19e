// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package httpclient provides a small, lazily-built [net/http] client wrapper
// with a configurable timeout and User-Agent. The token provider and the
// directory client share this configuration so the whole run speaks to remote
// services with one identity and one timeout policy.
package httpclient
