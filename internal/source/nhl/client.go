package nhl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	// DefaultBaseURL is the public NHL stats API.
	DefaultBaseURL   = "https://statsapi.web.nhl.com/api/v1"
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "hockeydb/1.0"

	// scheduleDateLayout is the calendar-date format the schedule endpoint keys by.
	scheduleDateLayout = "2006-01-02"

	maxErrorBodyBytes = 512
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ClientConfig configures a Client. Zero values fall back to defaults.
type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
}

// Client reads schedules and game feeds from the NHL stats API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new NHL API client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

// ListCompletedGames returns the ids of games with status "Final" scheduled between
// from and to, both inclusive. The source keys games by the league's local date,
// which can be the UTC date before a game's start, so the request starts one UTC
// day before from. Ids are de-duplicated and sorted ascending.
func (c *Client) ListCompletedGames(ctx context.Context, from, to time.Time) ([]int64, error) {
	query := url.Values{}
	query.Set("startDate", from.UTC().AddDate(0, 0, -1).Format(scheduleDateLayout))
	query.Set("endDate", to.UTC().Format(scheduleDateLayout))

	var schedule Schedule
	if err := c.getJSON(ctx, "/schedule", query, &schedule); err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			// Without a schedule there is nothing to ingest; the run retries later.
			return nil, fmt.Errorf("fetch schedule: %w: %w", ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	scheduled := 0
	for _, date := range schedule.Dates {
		for _, g := range date.Games {
			scheduled++
			if g.Status.DetailedState != StatusFinal {
				continue
			}
			if _, ok := seen[g.GamePk]; ok {
				continue
			}
			seen[g.GamePk] = struct{}{}
			ids = append(ids, g.GamePk)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	slog.Debug("[NHL] Schedule fetched",
		"start_date", query.Get("startDate"),
		"end_date", query.Get("endDate"),
		"scheduled", scheduled,
		"completed", len(ids))

	return ids, nil
}

// GetGame fetches the live feed of one game.
// Returns ErrGameNotFound when the source answers 404 for the id, and an error
// wrapping ErrMalformedResponse when the feed does not decode.
func (c *Client) GetGame(ctx context.Context, id int64) (*GameFeed, error) {
	path := "/game/" + strconv.FormatInt(id, 10) + "/feed/live"

	var feed GameFeed
	if err := c.getJSON(ctx, path, nil, &feed); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("game %d: %w", id, ErrGameNotFound)
		}
		return nil, fmt.Errorf("fetch game %d: %w", id, err)
	}

	return &feed, nil
}

// getJSON performs a GET request and decodes the JSON body into target.
// Transport and status failures wrap ErrSourceUnavailable; a body that does not
// decode wraps ErrMalformedResponse.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: making request: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        fullURL,
			Body:       string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrMalformedResponse, fullURL, err)
	}

	return nil
}
