// Package catalog talks to the remote demo catalog API. Every operation
// converts failure into a safe default (empty slice, absent product, fallback
// category list) instead of returning an error: the storefront degrades to an
// empty grid, never to an error page.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/retry"
)

// FallbackCategories is served when the remote category list is unreachable.
var FallbackCategories = []string{"electronics", "jewelery", "men's clothing", "women's clothing"}

type Client struct {
	base    string
	hc      *http.Client
	retry   retry.Policy
	limiter *rate.Limiter
}

// New builds a client for the API at base. rps bounds outbound request rate;
// rps <= 0 disables the limiter (tests).
func New(base string, hc *http.Client, policy retry.Policy, rps float64) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	var lim *rate.Limiter
	if rps > 0 {
		lim = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &Client{base: base, hc: hc, retry: policy, limiter: lim}
}

// DefaultPolicy is the documented retry contract: 3 attempts with a linear
// 1s, 2s backoff between them. Only transport failures are retried; a
// response that arrives with a bad status is the caller's to interpret.
func DefaultPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 3, Backoff: retry.Linear(time.Second)}
}

// get performs one GET with retry. err is non-nil only when every attempt
// failed at the transport level; otherwise body/status describe the response
// that arrived, 2xx or not.
func (c *Client) get(ctx context.Context, path string) (body []byte, status int, err error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}
	attempt := 0
	err = c.retry.Do(ctx, func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.hc.Do(req)
		if err != nil {
			applog.Warn(nil, "catalog.fetch.retry", map[string]any{"path": path, "attempt": attempt, "err": err.Error()})
			return err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body, status = b, resp.StatusCode
		return nil
	})
	return body, status, err
}

// getJSON fetches path and decodes a 2xx body into v. Any failure mode
// (transport after retries, bad status, undecodable body) comes back as one
// error for the defaulting operations above to swallow.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, status, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("catalog: GET %s: status %d", path, status)
	}
	return json.Unmarshal(body, v)
}

// AllProducts returns the full catalog, or an empty slice on any failure.
func (c *Client) AllProducts(ctx context.Context) []domain.Product {
	var out []domain.Product
	if err := c.getJSON(ctx, "/products", &out); err != nil {
		applog.Error(nil, "catalog.products.fail", err, nil)
		return []domain.Product{}
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out
}

// Products returns the contiguous slice [offset, offset+limit) of the full
// catalog. The remote API has no server-side paging, so the slice is local.
func (c *Client) Products(ctx context.Context, limit, offset int) []domain.Product {
	all := c.AllProducts(ctx)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []domain.Product{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// Product looks up a single product. ok is false both for a 404 and for any
// other failure; callers cannot tell "does not exist" from "network down".
// Kept lossy on purpose to match the upstream contract.
func (c *Client) Product(ctx context.Context, id int) (domain.Product, bool) {
	path := fmt.Sprintf("/products/%d", id)
	body, status, err := c.get(ctx, path)
	if err != nil {
		applog.Error(nil, "catalog.product.fail", err, map[string]any{"id": id})
		return domain.Product{}, false
	}
	if status == http.StatusNotFound {
		return domain.Product{}, false
	}
	if status < 200 || status > 299 {
		applog.Error(nil, "catalog.product.fail", fmt.Errorf("status %d", status), map[string]any{"id": id})
		return domain.Product{}, false
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		applog.Error(nil, "catalog.product.fail", err, map[string]any{"id": id})
		return domain.Product{}, false
	}
	return p, true
}

// Categories returns the remote category list, or FallbackCategories when the
// call fails.
func (c *Client) Categories(ctx context.Context) []string {
	var out []string
	if err := c.getJSON(ctx, "/products/categories", &out); err != nil {
		applog.Error(nil, "catalog.categories.fail", err, nil)
		return append([]string(nil), FallbackCategories...)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// ProductsByCategory returns the catalog restricted server-side to one
// category, or an empty slice on failure.
func (c *Client) ProductsByCategory(ctx context.Context, category string) []domain.Product {
	var out []domain.Product
	path := "/products/category/" + url.PathEscape(category)
	if err := c.getJSON(ctx, path, &out); err != nil {
		applog.Error(nil, "catalog.category.fail", err, map[string]any{"category": category})
		return []domain.Product{}
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out
}
