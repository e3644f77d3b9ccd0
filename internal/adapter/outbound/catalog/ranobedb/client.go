package ranobedb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonny/ranobe-bot/internal/domain/model"
	"github.com/jonny/ranobe-bot/internal/domain/port/outbound"
	"github.com/jonny/ranobe-bot/internal/metrics"
)

const maxResponseBytes = 2 << 20

// Operation names, used in errors and as metric labels.
const (
	opSearch = "search"
	opFetch  = "fetch"
)

// Config holds configuration for the RanobeDB client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Sort    string
}

// Client implements outbound.Catalog against the RanobeDB v0 API. Every call
// is a single attempt bounded by Config.Timeout.
type Client struct {
	config     Config
	httpClient *http.Client
	metrics    *metrics.Metrics
}

var _ outbound.Catalog = (*Client)(nil)

// NewClient creates a new RanobeDB Client.
func NewClient(cfg Config, m *metrics.Metrics) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		metrics:    m,
	}
}

// --- RanobeDB API types ---

type apiImage struct {
	Filename string `json:"filename"`
}

type apiBook struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	TitleOrig    string    `json:"title_orig"`
	Lang         string    `json:"lang"`
	CReleaseDate int       `json:"c_release_date"`
	Description  string    `json:"description"`
	Image        *apiImage `json:"image"`
}

type searchResponse struct {
	Books []apiBook `json:"books"`
}

type bookResponse struct {
	Book *apiBook `json:"book"`
}

// --- Catalog implementation ---

// Search calls GET /books and returns summary records.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]model.Book, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	if c.config.Sort != "" {
		params.Set("sort", c.config.Sort)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, opSearch, "/books?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	books := make([]model.Book, 0, len(resp.Books))
	for _, b := range resp.Books {
		books = append(books, mapBook(b))
	}
	return books, nil
}

// Fetch calls GET /book/{id}.
func (c *Client) Fetch(ctx context.Context, id int) (model.Book, error) {
	var resp bookResponse
	if err := c.getJSON(ctx, opFetch, "/book/"+strconv.Itoa(id), &resp); err != nil {
		return model.Book{}, err
	}
	if resp.Book == nil {
		return model.Book{}, fmt.Errorf("book %d: %w", id, outbound.ErrBookNotFound)
	}
	return mapBook(*resp.Book), nil
}

// HealthCheck performs a one-result search to verify RanobeDB is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/books?limit=1", nil)
	if err != nil {
		return fmt.Errorf("creating health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ranobedb health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ranobedb health check: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// --- Internal helpers ---

func (c *Client) getJSON(ctx context.Context, op, path string, dst interface{}) (err error) {
	start := time.Now()
	status := "error"
	defer func() {
		c.metrics.CatalogDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling ranobedb %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading ranobedb %s response: %w", op, err)
	}

	if resp.StatusCode == http.StatusNotFound && op == opFetch {
		status = "not_found"
		return fmt.Errorf("ranobedb %s: %w", op, outbound.ErrBookNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ranobedb %s: unexpected status %d: %s", op, resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding ranobedb %s response: %w", op, err)
	}
	status = "ok"
	return nil
}

func mapBook(b apiBook) model.Book {
	book := model.Book{
		ID:          b.ID,
		Title:       b.Title,
		TitleOrig:   b.TitleOrig,
		ReleaseDate: b.CReleaseDate,
		Lang:        b.Lang,
		Description: b.Description,
	}
	if b.Image != nil {
		book.ImageFilename = b.Image.Filename
	}
	return book
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
