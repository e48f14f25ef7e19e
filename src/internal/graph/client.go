// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/graph-upn-lookup/src/internal/helper/httpclient"
)

// selectFields lists the user properties requested from the directory.
// Keeping the projection fixed keeps responses small and the report schema stable.
const selectFields = "userPrincipalName,displayName,givenName,surname,mail,id"

// User is one directory entry as returned by the users resource.
type User struct {
	UserPrincipalName string `json:"userPrincipalName"`
	DisplayName       string `json:"displayName"`
	GivenName         string `json:"givenName"`
	Surname           string `json:"surname"`
	Mail              string `json:"mail"`
	ID                string `json:"id"`
}

// QueryError carries a non-success directory response verbatim so the caller
// can log exactly what the service said.
type QueryError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("graph: query failed with HTTP %d: %s", e.StatusCode, e.Body)
}

// Client queries the directory's users resource over its REST surface.
type Client struct {
	// BaseURL is the versioned API root, e.g. https://graph.microsoft.com/v1.0.
	BaseURL string

	// HTTP is the shared HTTP client configuration.
	HTTP *httpclient.Config
}

// NewClient creates a directory client rooted at baseURL.
func NewClient(baseURL string, hc *httpclient.Config) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    hc,
	}
}

// EscapeFilterLiteral escapes a string literal for use inside an OData
// $filter expression. Single quotes are doubled per the OData grammar; no
// other characters need escaping inside a quoted literal.
func EscapeFilterLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// FindByName returns every user whose givenName and surname both match
// exactly. Match order is whatever the directory returns; the caller decides
// what zero, one, or many matches mean.
//
// Parameters:
//   - ctx: Context for cancellation and timeouts
//   - bearer: Access token for the directory
//   - givenName: Exact given name to match
//   - surname: Exact surname to match
//
// Returns:
//   - []User: Matching directory entries, possibly empty
//   - error: *QueryError for a non-success response, otherwise a transport or
//     decoding failure
func (c *Client) FindByName(ctx context.Context, bearer, givenName, surname string) ([]User, error) {
	filter := fmt.Sprintf("givenName eq '%s' and surname eq '%s'",
		EscapeFilterLiteral(givenName), EscapeFilterLiteral(surname))

	query := url.Values{}
	query.Set("$filter", filter)
	query.Set("$select", selectFields)

	endpoint := fmt.Sprintf("%s/users?%s", c.BaseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.HTTP.GetUserAgent())

	resp, err := c.HTTP.Client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph: request failed: %w", err)
	}
	defer resp.Body.Close()

	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("graph: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &QueryError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(buf.String()),
		}
	}

	var payload struct {
		Value []User `json:"value"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("graph: decoding response: %w", err)
	}

	return payload.Value, nil
}
