// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package lookup drives a list of name keys through the directory client,
// classifies each outcome by candidate count, and aggregates results into an
// ordered report. Query failures are folded into the not-found bucket for
// that key so one bad lookup never aborts the batch.
package lookup
