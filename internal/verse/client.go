// Package verse fetches verse text from the quran.com v4 API.
package verse

import (
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

	"golang.org/x/sync/errgroup"

	"instaquran/internal/logging"
	"instaquran/internal/quran"
)

const (
	// DefaultBaseURL is the public quran.com v4 endpoint.
	DefaultBaseURL = "https://api.quran.com/api/v4"
	// DefaultTranslationID selects the Abdel Haleem English translation.
	DefaultTranslationID = 85
	// DefaultTimeout bounds a whole Fetch.
	DefaultTimeout = 15 * time.Second

	// FetchFailedMessage replaces the verse text in the card when a fetch fails.
	FetchFailedMessage = "Error fetching verse. Please try again."

	maxBodyBytes = 1 << 20
)

// Endpoint names used in FetchError.
const (
	EndpointTranslation = "translation"
	EndpointUthmani     = "uthmani"
)

var (
	// ErrUnexpectedStatus is wrapped when the API answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrEmptyResponse is wrapped when the API answers without the requested text.
	ErrEmptyResponse = errors.New("empty response")
)

// Verse is the fetched content for one reference.
type Verse struct {
	Reference   quran.Reference
	Arabic      string // Uthmani script
	Translation string // plain text, footnote markers removed
}

// FetchError describes a failed request to one of the two endpoints.
type FetchError struct {
	Reference quran.Reference
	Endpoint  string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s: %v", e.Endpoint, e.Reference, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client talks to the quran.com API.
type Client struct {
	baseURL       string
	translationID int
	timeout       time.Duration
	httpClient    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. an httptest server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithTranslation selects the translation resource id.
func WithTranslation(id int) Option {
	return func(c *Client) {
		c.translationID = id
	}
}

// WithTimeout bounds each Fetch. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client with the public defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:       DefaultBaseURL,
		translationID: DefaultTranslationID,
		timeout:       DefaultTimeout,
		httpClient:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type translationResponse struct {
	Verse struct {
		VerseKey     string `json:"verse_key"`
		Translations []struct {
			ResourceID int    `json:"resource_id"`
			Text       string `json:"text"`
		} `json:"translations"`
	} `json:"verse"`
}

type uthmaniResponse struct {
	Verses []struct {
		VerseKey    string `json:"verse_key"`
		TextUthmani string `json:"text_uthmani"`
	} `json:"verses"`
}

// Fetch retrieves the Arabic text and translation of ref. Both requests run
// concurrently; if either fails the whole fetch fails with a *FetchError.
func (c *Client) Fetch(ctx context.Context, ref quran.Reference) (Verse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := logging.FromContext(ctx, logging.CategoryFetch)
	start := time.Now()
	log.Debug("fetching %s (translation %d)", ref, c.translationID)

	v := Verse{Reference: ref}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var resp translationResponse
		if err := c.getJSON(gctx, c.translationURL(ref), &resp); err != nil {
			return &FetchError{Reference: ref, Endpoint: EndpointTranslation, Err: err}
		}
		if len(resp.Verse.Translations) == 0 {
			return &FetchError{Reference: ref, Endpoint: EndpointTranslation, Err: ErrEmptyResponse}
		}
		text, err := PlainText(resp.Verse.Translations[0].Text)
		if err != nil {
			return &FetchError{Reference: ref, Endpoint: EndpointTranslation, Err: err}
		}
		if text == "" {
			return &FetchError{Reference: ref, Endpoint: EndpointTranslation, Err: ErrEmptyResponse}
		}
		v.Translation = text
		return nil
	})

	g.Go(func() error {
		var resp uthmaniResponse
		if err := c.getJSON(gctx, c.uthmaniURL(ref), &resp); err != nil {
			return &FetchError{Reference: ref, Endpoint: EndpointUthmani, Err: err}
		}
		if len(resp.Verses) == 0 || strings.TrimSpace(resp.Verses[0].TextUthmani) == "" {
			return &FetchError{Reference: ref, Endpoint: EndpointUthmani, Err: ErrEmptyResponse}
		}
		v.Arabic = strings.TrimSpace(resp.Verses[0].TextUthmani)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("fetch %s failed after %v: %v", ref, time.Since(start), err)
		return Verse{}, err
	}

	log.Info("fetched %s in %v", ref, time.Since(start))
	return v, nil
}

func (c *Client) translationURL(ref quran.Reference) string {
	q := url.Values{}
	q.Set("translations", strconv.Itoa(c.translationID))
	return fmt.Sprintf("%s/verses/by_key/%s?%s", c.baseURL, ref.Key(), q.Encode())
}

func (c *Client) uthmaniURL(ref quran.Reference) string {
	q := url.Values{}
	q.Set("verse_key", ref.Key())
	return fmt.Sprintf("%s/quran/verses/uthmani?%s", c.baseURL, q.Encode())
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
