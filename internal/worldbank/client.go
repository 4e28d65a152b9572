// Package worldbank downloads indicator series from the World Bank API v2.
package worldbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"popdash/internal/domain"
)

const defaultPerPage = 1000

// Client talks to the World Bank indicators API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	perPage    int
}

// NewClient creates a client for baseURL, e.g. https://api.worldbank.org.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		perPage: defaultPerPage,
	}
}

// FetchPopulationSeries downloads indicator values for the given ISO-3
// country codes between start and end inclusive. Each page is requested
// once; any failure is reported as domain.ErrRemoteFetch. Points with a
// null value are dropped. The result is ordered by country name, then year.
func (c *Client) FetchPopulationSeries(ctx context.Context, indicator string, codes []string, start, end int) ([]domain.PopulationSeriesPoint, error) {
	var points []domain.PopulationSeriesPoint

	for page, pages := 1, 1; page <= pages; page++ {
		meta, rows, err := c.fetchPage(ctx, indicator, codes, start, end, page)
		if err != nil {
			return nil, err
		}
		pages = int(meta.Pages)

		for _, row := range rows {
			if row.Value == nil {
				continue
			}
			year, err := strconv.Atoi(row.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: row for %s has non-numeric year %q", domain.ErrRemoteFetch, row.Country.Value, row.Date)
			}
			points = append(points, domain.PopulationSeriesPoint{
				Country: row.Country.Value,
				Year:    year,
				Density: *row.Value,
			})
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Country != points[j].Country {
			return points[i].Country < points[j].Country
		}
		return points[i].Year < points[j].Year
	})

	slog.InfoContext(ctx, "world bank series downloaded",
		"indicator", indicator,
		"countries", len(codes),
		"points", len(points))

	return points, nil
}

func (c *Client) fetchPage(ctx context.Context, indicator string, codes []string, start, end, page int) (pageMeta, []indicatorRow, error) {
	endpoint := fmt.Sprintf("%s/v2/country/%s/indicator/%s",
		c.baseURL, strings.Join(codes, ";"), url.PathEscape(indicator))
	query := url.Values{}
	query.Set("format", "json")
	query.Set("date", fmt.Sprintf("%d:%d", start, end))
	query.Set("per_page", strconv.Itoa(c.perPage))
	query.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: build request: %v", domain.ErrRemoteFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: %v", domain.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: read body: %v", domain.ErrRemoteFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return pageMeta{}, nil, fmt.Errorf("%w: unexpected status %d", domain.ErrRemoteFetch, resp.StatusCode)
	}

	return decodePage(body)
}

// decodePage splits the API's [meta, rows] envelope. An error response is
// a one-element array whose object carries a message list instead.
func decodePage(body []byte) (pageMeta, []indicatorRow, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: decode envelope: %v", domain.ErrRemoteFetch, err)
	}
	if len(envelope) == 0 {
		return pageMeta{}, nil, fmt.Errorf("%w: empty response", domain.ErrRemoteFetch)
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: decode page metadata: %v", domain.ErrRemoteFetch, err)
	}
	if len(meta.Message) > 0 {
		return pageMeta{}, nil, fmt.Errorf("%w: api error: %s", domain.ErrRemoteFetch, meta.Message[0].Value)
	}
	if len(envelope) < 2 || bytes.Equal(bytes.TrimSpace(envelope[1]), []byte("null")) {
		return meta, nil, nil
	}

	var rows []indicatorRow
	if err := json.Unmarshal(envelope[1], &rows); err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: decode rows: %v", domain.ErrRemoteFetch, err)
	}
	return meta, rows, nil
}
