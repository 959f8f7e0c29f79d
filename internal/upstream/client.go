// Package upstream talks to the third-party APIs the catalog is seeded from.
//
// Every failure here (transport error, non-2xx status, undecodable or
// incomplete body) comes back as apperror.ErrUpstream. Nothing is retried.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response is copied into the error.
const maxErrorBody = 512

// getJSON issues GET baseURL+path and decodes a 2xx JSON body into out.
func getJSON(ctx context.Context, client *http.Client, baseURL, path string, out any) error {
	url := strings.TrimRight(baseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", url, err)
	}

	return nil
}

// orDefault returns c, or http.DefaultClient when c is nil.
func orDefault(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
