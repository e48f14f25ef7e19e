// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package lookup

import (
	"context"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/graph"
	log "github.com/H0llyW00dzZ/graph-upn-lookup/src/logger"
)

// Classification is the three-way outcome bucket for one key.
type Classification string

const (
	// NotFound means the directory returned no candidates, or the query failed.
	NotFound Classification = "NotFound"

	// Found means the directory returned exactly one candidate.
	Found Classification = "Found"

	// Ambiguous means the directory returned more than one candidate.
	Ambiguous Classification = "Ambiguous"
)

// Result is the outcome for one key. A failed query is recorded with Err set
// and zero candidates.
type Result struct {
	Key        Key
	Candidates []graph.User
	Err        error
}

// Classify derives the outcome bucket from the candidate count.
func (r *Result) Classify() Classification {
	switch len(r.Candidates) {
	case 0:
		return NotFound
	case 1:
		return Found
	default:
		return Ambiguous
	}
}

// Report aggregates results keyed by name, preserving input order.
//
// A duplicate key keeps its first occurrence's position but its last
// occurrence's result. Both lookups still run; only the aggregation
// collapses them.
type Report struct {
	order   []Key
	results map[Key]*Result
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{results: make(map[Key]*Result)}
}

// Set records a result, overwriting any earlier result for the same key.
func (r *Report) Set(res *Result) {
	if _, seen := r.results[res.Key]; !seen {
		r.order = append(r.order, res.Key)
	}
	r.results[res.Key] = res
}

// Get returns the result for a key.
func (r *Report) Get(k Key) (*Result, bool) {
	res, ok := r.results[k]
	return res, ok
}

// Len returns the number of distinct keys.
func (r *Report) Len() int { return len(r.order) }

// Results returns all results in key insertion order.
func (r *Report) Results() []*Result {
	out := make([]*Result, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.results[k])
	}
	return out
}

// Counts returns the number of keys in each classification bucket.
func (r *Report) Counts() (found, ambiguous, notFound int) {
	for _, k := range r.order {
		switch r.results[k].Classify() {
		case Found:
			found++
		case Ambiguous:
			ambiguous++
		default:
			notFound++
		}
	}
	return found, ambiguous, notFound
}

// Directory is the query surface the engine drives. *graph.Client satisfies it.
type Directory interface {
	FindByName(ctx context.Context, bearer, givenName, surname string) ([]graph.User, error)
}

// Engine runs batched lookups strictly sequentially, one directory call per
// key. There is no parallelism and no retry; a hung call is bounded only by
// ctx and the transport timeout.
type Engine struct {
	dir Directory
	log log.Logger
}

// NewEngine creates an Engine over the given directory.
func NewEngine(dir Directory, logger log.Logger) *Engine {
	return &Engine{dir: dir, log: logger}
}

// Run processes every key and returns the aggregated report.
//
// Parameters:
//   - ctx: Context for cancellation; a cancelled context fails the remaining
//     keys but still returns a complete report
//   - bearer: Access token for the directory
//   - keys: Keys in input order, duplicates permitted
//
// Returns:
//   - *Report: One result per distinct key; query failures are recorded as
//     zero candidates with Err set, never propagated
func (e *Engine) Run(ctx context.Context, bearer string, keys []Key) *Report {
	report := NewReport()

	for _, key := range keys {
		e.log.Printf("Searching for: %s", key)

		candidates, err := e.dir.FindByName(ctx, bearer, key.GivenName, key.Surname)
		if err != nil {
			e.log.Printf("  Query failed for %s: %v", key, err)
			report.Set(&Result{Key: key, Err: err})
			continue
		}

		result := &Result{Key: key, Candidates: candidates}
		switch result.Classify() {
		case NotFound:
			e.log.Printf("  No users found")
		default:
			for _, user := range candidates {
				e.log.Printf("  Found: %s", user.UserPrincipalName)
			}
		}
		report.Set(result)
	}

	return report
}
