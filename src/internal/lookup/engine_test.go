// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package lookup_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/graph"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/lookup"
	log "github.com/H0llyW00dzZ/graph-upn-lookup/src/logger"
)

// fakeDirectory returns scripted responses per "Given Surname" key, in call order.
type fakeDirectory struct {
	responses map[string][][]graph.User
	errs      map[string]error
	calls     []string
}

func (f *fakeDirectory) FindByName(_ context.Context, _, givenName, surname string) ([]graph.User, error) {
	name := givenName + " " + surname
	f.calls = append(f.calls, name)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	queue := f.responses[name]
	if len(queue) == 0 {
		return nil, nil
	}
	users := queue[0]
	f.responses[name] = queue[1:]
	return users, nil
}

func newTestLogger() log.Logger {
	l := log.NewCLILogger()
	l.SetOutput(io.Discard)
	return l
}

func TestRunClassifications(t *testing.T) {
	dir := &fakeDirectory{
		responses: map[string][][]graph.User{
			"Jack McClean": {{
				{UserPrincipalName: "jack.mcclean@x.com", Mail: "jack.mcclean@x.com", ID: "1"},
			}},
			"Mark Ryan": {{
				{UserPrincipalName: "mark.ryan@x.com", ID: "2"},
				{UserPrincipalName: "mark.ryan2@x.com", ID: "3"},
			}},
		},
	}

	engine := lookup.NewEngine(dir, newTestLogger())
	report := engine.Run(context.Background(), "tok", []lookup.Key{
		{GivenName: "Jack", Surname: "McClean"},
		{GivenName: "Mark", Surname: "Ryan"},
		{GivenName: "Paul", Surname: "Gray"},
	})

	require.Equal(t, 3, report.Len())

	results := report.Results()
	assert.Equal(t, lookup.Found, results[0].Classify())
	assert.Equal(t, lookup.Ambiguous, results[1].Classify())
	assert.Equal(t, lookup.NotFound, results[2].Classify())

	assert.Equal(t, []string{"Jack McClean", "Mark Ryan", "Paul Gray"}, dir.calls)
}

func TestRunDuplicateKeyLastResultWins(t *testing.T) {
	// The same name twice: the first lookup finds one user, the second finds
	// none. The report must keep one entry at the first position carrying the
	// later outcome, and both lookups must still have been issued.
	dir := &fakeDirectory{
		responses: map[string][][]graph.User{
			"A B": {
				{{UserPrincipalName: "a.b@x.com", ID: "1"}},
				nil,
			},
			"C D": {{
				{UserPrincipalName: "c.d@x.com", ID: "2"},
			}},
		},
	}

	engine := lookup.NewEngine(dir, newTestLogger())
	report := engine.Run(context.Background(), "tok", []lookup.Key{
		{GivenName: "A", Surname: "B"},
		{GivenName: "C", Surname: "D"},
		{GivenName: "A", Surname: "B"},
	})

	require.Equal(t, 2, report.Len())
	assert.Equal(t, []string{"A B", "C D", "A B"}, dir.calls)

	results := report.Results()
	assert.Equal(t, lookup.Key{GivenName: "A", Surname: "B"}, results[0].Key)
	assert.Equal(t, lookup.NotFound, results[0].Classify(), "later outcome must win")
	assert.Equal(t, lookup.Found, results[1].Classify())
}

func TestRunQueryFailureDoesNotAbortBatch(t *testing.T) {
	queryErr := &graph.QueryError{StatusCode: 503, Body: "service unavailable"}
	dir := &fakeDirectory{
		responses: map[string][][]graph.User{
			"Jack McClean": {{
				{UserPrincipalName: "jack.mcclean@x.com", ID: "1"},
			}},
			"Paul Gray": {{
				{UserPrincipalName: "paul.gray@x.com", ID: "2"},
			}},
		},
		errs: map[string]error{
			"Mike Cartwright": queryErr,
		},
	}

	engine := lookup.NewEngine(dir, newTestLogger())
	report := engine.Run(context.Background(), "tok", []lookup.Key{
		{GivenName: "Jack", Surname: "McClean"},
		{GivenName: "Mike", Surname: "Cartwright"},
		{GivenName: "Paul", Surname: "Gray"},
	})

	require.Equal(t, 3, report.Len(), "all keys must be present despite the failure")

	failed, ok := report.Get(lookup.Key{GivenName: "Mike", Surname: "Cartwright"})
	require.True(t, ok)
	assert.Equal(t, lookup.NotFound, failed.Classify())
	assert.True(t, errors.Is(failed.Err, queryErr) || errors.As(failed.Err, new(*graph.QueryError)))

	last, ok := report.Get(lookup.Key{GivenName: "Paul", Surname: "Gray"})
	require.True(t, ok)
	assert.Equal(t, lookup.Found, last.Classify(), "keys after the failure must still run")
}
