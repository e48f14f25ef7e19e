// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report renders aggregated lookup results: a comma-delimited export
// with a fixed column schema for downstream processing, and a markdown
// summary table for terminal output.
package report
