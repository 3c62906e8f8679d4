// Package yahoo fetches market data from the public Yahoo Finance
// endpoints: company snapshot, financial statements, price history and
// news. Responses are cached on disk for an hour.
package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/investilearn"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// ErrUnknownSymbol is returned when Yahoo has no data for a ticker.
var ErrUnknownSymbol = investilearn.ErrUnknownSymbol

// Client queries the Yahoo Finance endpoints.
type Client struct {
	base string
	http *http.Client
}

// New returns a client over the public Yahoo host, caching responses on
// disk under cacheDir ("" for the system temp directory).
func New(cacheDir string) *Client {
	return &Client{base: DefaultBaseURL, http: hourly(cacheDir)}
}

// NewWith returns a client over an arbitrary base URL and HTTP client,
// without caching. Tests point it at a local server.
func NewWith(base string, c *http.Client) *Client {
	if c == nil {
		c = http.DefaultClient
	}
	return &Client{base: base, http: c}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (investilearn)")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrUnknownSymbol
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// addr builds an endpoint URL from a path and query values.
func (c *Client) addr(path string, q url.Values) string {
	if len(q) == 0 {
		return c.base + path
	}
	return c.base + path + "?" + q.Encode()
}

// jsonpath helpers over the loose quoteSummary payloads, where numeric
// fields arrive as {"raw": 1.23, "fmt": "1.23"} objects and any field may
// be absent.

// jget evaluates a jsonpath, unwrapping a single-element list.
func jget(obj any, path string) (any, bool) {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, false
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil, false
		}
		v = list[0]
	}
	return v, v != nil
}

// jstr evaluates a jsonpath to a string, "" when absent.
func jstr(obj any, path string) string {
	v, ok := jget(obj, path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// jraw evaluates a jsonpath to the "raw" number of a {raw, fmt} field.
func jraw(obj any, path string) (float64, bool) {
	v, ok := jget(obj, path+".raw")
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}
