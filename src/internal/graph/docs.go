// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package graph is a thin read-only client for the directory's users
// resource. It issues exact-match name queries with a fixed field projection
// and returns the raw match list; interpreting zero, one, or many matches is
// the caller's job.
package graph
