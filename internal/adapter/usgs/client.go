// Package usgs implements the HTTP client for the USGS NWIS Instantaneous
// Values service. The untyped feed payload is decoded into typed readings
// in one place; entries missing a site code or a parsable value are
// dropped rather than propagated as partial shapes.
package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// USGS NWIS parameter codes.
const (
	ParamGageHeight = "00065" // feet
	ParamDischarge  = "00060" // cubic feet per second
	ParamWaterTemp  = "00010" // degrees Celsius
)

// Reading is the most recent instantaneous value of one time series: one
// site, one parameter code.
type Reading struct {
	SiteCode     string
	VariableCode string
	Unit         string
	Value        float64
	DateTime     string // observation timestamp as received (ISO 8601)
}

// Client fetches batch readings from the NWIS Instantaneous Values API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a USGS client with the given request timeout and
// request-per-second budget. The service throttles aggressive callers, so
// all requests pass through a shared limiter.
func NewClient(baseURL string, timeout time.Duration, ratePerSec float64, logger *slog.Logger) *Client {
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:  logger,
	}
}

// FetchInstantaneous requests the latest values for the given sites and
// parameter codes in a single batch call.
func (c *Client) FetchInstantaneous(ctx context.Context, siteIDs, paramCodes []string) ([]Reading, error) {
	if len(siteIDs) == 0 {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{
		"format":      {"json"},
		"sites":       {strings.Join(siteIDs, ",")},
		"parameterCd": {strings.Join(paramCodes, ",")},
		"siteStatus":  {"all"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "MissouriFloatTrips/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var feed response
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	readings := feed.readings()
	c.logger.Debug("usgs fetch complete",
		"sites", len(siteIDs),
		"series", len(feed.Value.TimeSeries),
		"readings", len(readings),
		"duration", time.Since(start),
	)
	return readings, nil
}

// NWIS waterml-json response shape. Only the consumed fields are decoded.

type response struct {
	Value struct {
		TimeSeries []timeSeries `json:"timeSeries"`
	} `json:"value"`
}

type timeSeries struct {
	SourceInfo struct {
		SiteCode []codeValue `json:"siteCode"`
	} `json:"sourceInfo"`
	Variable struct {
		VariableCode []codeValue `json:"variableCode"`
		Unit         struct {
			UnitCode string `json:"unitCode"`
		} `json:"unit"`
	} `json:"variable"`
	Values []struct {
		Value []struct {
			Value    string `json:"value"`
			DateTime string `json:"dateTime"`
		} `json:"value"`
	} `json:"values"`
}

type codeValue struct {
	Value string `json:"value"`
}

// readings flattens the time-series list into typed readings, keeping only
// the first (most recent) value entry per series and skipping series with
// missing site codes, variable codes, or unparsable values.
func (r response) readings() []Reading {
	var out []Reading
	for _, ts := range r.Value.TimeSeries {
		if len(ts.SourceInfo.SiteCode) == 0 || len(ts.Variable.VariableCode) == 0 {
			continue
		}
		if len(ts.Values) == 0 || len(ts.Values[0].Value) == 0 {
			continue
		}
		latest := ts.Values[0].Value[0]
		v, err := strconv.ParseFloat(latest.Value, 64)
		if err != nil {
			continue
		}
		out = append(out, Reading{
			SiteCode:     ts.SourceInfo.SiteCode[0].Value,
			VariableCode: ts.Variable.VariableCode[0].Value,
			Unit:         ts.Variable.Unit.UnitCode,
			Value:        v,
			DateTime:     latest.DateTime,
		})
	}
	return out
}
