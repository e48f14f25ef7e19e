// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli wires the credential loader, token provider, lookup engine and
// report exporter behind a cobra command. It owns all argument, environment
// and prompt plumbing; the packages it drives never touch process state.
package cli
