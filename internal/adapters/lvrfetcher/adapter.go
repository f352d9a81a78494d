// Package lvrfetcher is the outgoing adapter for the government disclosure
// portal: it retrieves one region's quarterly CSV export, recovers its text
// encoding and parses it into raw rows.
package lvrfetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"lvr-ingest/internal/constants"
	"lvr-ingest/internal/core/domain"
)

// LVRFetcherAdapter owns all interaction with the disclosure portal. It
// keeps one configured parent collector; every request runs on a clone so
// per-request handlers never leak between calls.
type LVRFetcherAdapter struct {
	collector *colly.Collector
	baseURL   string
	log       zerolog.Logger
}

// NewLVRFetcherAdapter builds the adapter. The portal rejects obviously
// non-browser clients, so the User-Agent matters; the timeout bounds every
// request including redirect hops.
func NewLVRFetcherAdapter(baseURL, userAgent string, timeout time.Duration, log zerolog.Logger) *LVRFetcherAdapter {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		// The same season file is re-requested on every run; the visited-URL
		// cache would otherwise block the second run.
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)

	return &LVRFetcherAdapter{
		collector: c,
		baseURL:   strings.TrimRight(baseURL, "/"),
		log:       log,
	}
}

// FetchRegionRows implements port.SeasonFetcherPort.
func (a *LVRFetcherAdapter) FetchRegionRows(ctx context.Context, region domain.Region, season string) ([]domain.RawRow, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	url := a.seasonURL(region, season)
	body, err := a.fetchBytes(url)
	if err != nil {
		return nil, "", err
	}

	text, encoding, err := decodeText(body)
	if err != nil {
		return nil, "", &FetchError{Kind: KindDecode, URL: url, Err: err}
	}

	rows := parseRows(text, a.log.With().Str("region", region.Code).Logger())
	return rows, encoding, nil
}

func (a *LVRFetcherAdapter) seasonURL(region domain.Region, season string) string {
	return a.baseURL + fmt.Sprintf(constants.DownloadPathTemplate, season, strings.ToLower(region.Code))
}

// fetchBytes retrieves one URL's full body. Redirects are followed by the
// underlying client; a timeout, a transport failure and a non-2xx final
// status each map to their own error kind. No retries here: the orchestrator
// skips a failed region and continues.
func (a *LVRFetcherAdapter) fetchBytes(url string) ([]byte, error) {
	collector := a.collector.Clone()

	var body []byte
	var fetchErr error

	// Clones start with no handlers, so these are registered per request.
	collector.OnRequest(func(r *colly.Request) {
		a.log.Debug().Str("url", r.URL.String()).Msg("requesting season file")
	})
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = classify(url, r, err)
	})

	if err := collector.Visit(url); err != nil && fetchErr == nil {
		fetchErr = classify(url, nil, err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if body == nil {
		return nil, &FetchError{Kind: KindNetwork, URL: url, Err: errors.New("no response body received")}
	}
	return body, nil
}

func classify(url string, r *colly.Response, err error) error {
	if r != nil && r.StatusCode != 0 && (r.StatusCode < 200 || r.StatusCode >= 300) {
		return &FetchError{Kind: KindHTTPStatus, URL: url, Status: r.StatusCode, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: KindTimeout, URL: url, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: KindTimeout, URL: url, Err: err}
	}
	return &FetchError{Kind: KindNetwork, URL: url, Err: err}
}
