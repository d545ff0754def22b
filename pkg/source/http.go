package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/HerbHall/gutwise/pkg/models"
)

// DefaultTimeout bounds every request made by an HTTP source.
const DefaultTimeout = 10 * time.Second

// Compile-time interface guards.
var (
	_ DataSource    = (*HTTP)(nil)
	_ Creator       = (*HTTP)(nil)
	_ HealthChecker = (*HTTP)(nil)
)

// HTTP reads from the recipe REST API. BaseURL is the server root; requests
// go to BaseURL + "/api/...".
type HTTP struct {
	baseURL string
	client  *http.Client
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the default client (DefaultTimeout, default transport).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTP) { h.client = c }
}

// NewHTTP returns a source for the API rooted at baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HTTP) ListRecipes(ctx context.Context, opts ListOptions) ([]models.Recipe, error) {
	// limit is always sent so limit=0 overrides any server-side default page.
	limit := max(opts.Limit, 0)
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var recipes []models.Recipe
	if err := h.do(ctx, "list recipes", http.MethodGet, "/recipes", q, nil, &recipes); err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return recipes, nil
}

func (h *HTTP) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var r models.Recipe
	if err := h.do(ctx, "get recipe "+id, http.MethodGet, "/recipes/"+url.PathEscape(id), nil, nil, &r); err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

func (h *HTTP) ListDietaryFilters(ctx context.Context) ([]models.DietaryFilter, error) {
	var filters []models.DietaryFilter
	if err := h.do(ctx, "list dietary filters", http.MethodGet, "/dietary-filters", nil, nil, &filters); err != nil {
		return nil, err
	}
	if filters == nil {
		filters = []models.DietaryFilter{}
	}
	return filters, nil
}

func (h *HTTP) GetPersonalStory(ctx context.Context) (*models.PersonalStory, error) {
	var s models.PersonalStory
	if err := h.do(ctx, "get personal story", http.MethodGet, "/personal-story", nil, nil, &s); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (h *HTTP) CreateRecipe(ctx context.Context, req models.RecipeCreate) (*models.Recipe, error) {
	var r models.Recipe
	if err := h.do(ctx, "create recipe", http.MethodPost, "/recipes", nil, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (h *HTTP) Health(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := h.do(ctx, "health check", http.MethodGet, "/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one request and decodes a JSON response into out. Failures,
// including 404, are returned as *FetchError.
func (h *HTTP) do(ctx context.Context, op, method, path string, q url.Values, body, out any) error {
	u := h.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, Status: resp.StatusCode, Err: errors.New(problemDetail(resp))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// notFound maps a 404 from a single-record lookup to ErrNotFound. A 404 from
// a collection endpoint stays a FetchError: it means a wrong base URL, not a
// missing record.
func notFound(err error) error {
	var fe *FetchError
	if errors.As(err, &fe) && fe.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}

// problemDetail extracts the detail of an RFC 7807 body, falling back to the
// status text.
func problemDetail(resp *http.Response) string {
	var p struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &p) == nil {
		if p.Detail != "" {
			return p.Detail
		}
		if p.Title != "" {
			return p.Title
		}
	}
	return http.StatusText(resp.StatusCode)
}
