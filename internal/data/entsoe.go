package data

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"spot-lcoe/internal/model"
)

// Bidding-zone EIC codes for the markets we analyze.
const (
	DomainFrance = "10YFR-RTE------C"
)

// EntsoeClient fetches day-ahead spot prices from the ENTSO-E transparency
// platform (document type A44).
type EntsoeClient struct {
	Token   string
	BaseURL string
	Client  *http.Client
}

// NewEntsoeClient creates a client for the ENTSO-E web API.
// If baseURL is empty, defaults to "https://web-api.tp.entsoe.eu".
func NewEntsoeClient(token string, baseURL string) *EntsoeClient {
	if baseURL == "" {
		baseURL = "https://web-api.tp.entsoe.eu"
	}
	return &EntsoeClient{
		Token:   token,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// EntsoeError represents an error from the ENTSO-E API.
type EntsoeError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *EntsoeError) Error() string {
	return e.Message
}

// QueryDayAheadPrices fetches hourly day-ahead prices for a bidding zone over
// [start, end). Timestamps in the result are Europe/Paris local time, matching
// the processed CSV contract.
func (c *EntsoeClient) QueryDayAheadPrices(domain string, start, end time.Time) ([]model.PriceObservation, error) {
	if err := c.validateToken(); err != nil {
		return nil, err
	}
	if domain == "" {
		return nil, fmt.Errorf("domain is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("start and end are required")
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start must be before end")
	}

	if cache := GetCache(); cache != nil {
		key := GenerateCacheKey(domain, start, end)
		if cached, found := cache.Get(key); found {
			log.Printf("[Entsoe] Cache hit: %d observations (domain=%s, start=%s, end=%s)",
				len(cached), domain, start.Format("2006-01-02"), end.Format("2006-01-02"))
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/api")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("securityToken", c.Token)
	q.Set("documentType", "A44")
	q.Set("in_Domain", domain)
	q.Set("out_Domain", domain)
	q.Set("periodStart", start.UTC().Format("200601021504"))
	q.Set("periodEnd", end.UTC().Format("200601021504"))
	u.RawQuery = q.Encode()

	log.Printf("[Entsoe] Request: GET %s (domain=%s, start=%s, end=%s)",
		u.Path, domain, start.Format("2006-01-02"), end.Format("2006-01-02"))

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	began := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(began)
	if err != nil {
		log.Printf("[Entsoe] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Entsoe] Response: %d %s (duration: %v, domain=%s)",
		resp.StatusCode, resp.Status, duration, domain)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &EntsoeError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_TOKEN",
			Message:    "Invalid or unauthorized security token",
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &EntsoeError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("Rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &EntsoeError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	obs, err := ParsePublicationXML(raw)
	if err != nil {
		return nil, err
	}
	log.Printf("[Entsoe] Success: Received %d observations (domain=%s)", len(obs), domain)

	if cache := GetCache(); cache != nil {
		cache.Set(GenerateCacheKey(domain, start, end), obs)
	}
	return obs, nil
}

func (c *EntsoeClient) validateToken() error {
	if c.Token == "" {
		return &EntsoeError{
			Code:    "MISSING_TOKEN",
			Message: "ENTSO-E security token is required",
		}
	}
	if len(c.Token) < 10 {
		return &EntsoeError{
			Code:    "INVALID_TOKEN_FORMAT",
			Message: "security token appears to be invalid (too short)",
		}
	}
	return nil
}

// publicationDocument mirrors the subset of the A44 Publication_MarketDocument
// we consume: per-period start time, resolution and positioned price points.
type publicationDocument struct {
	XMLName    xml.Name `xml:"Publication_MarketDocument"`
	TimeSeries []struct {
		Period []struct {
			TimeInterval struct {
				Start string `xml:"start"`
				End   string `xml:"end"`
			} `xml:"timeInterval"`
			Resolution string `xml:"resolution"`
			Point      []struct {
				Position int     `xml:"position"`
				Price    float64 `xml:"price.amount"`
			} `xml:"Point"`
		} `xml:"Period"`
	} `xml:"TimeSeries"`
}

// acknowledgementDocument is what the API returns instead of a publication
// when the query matched no data.
type acknowledgementDocument struct {
	XMLName xml.Name `xml:"Acknowledgement_MarketDocument"`
	Reason  struct {
		Code string `xml:"code"`
		Text string `xml:"text"`
	} `xml:"Reason"`
}

var resolutionDurations = map[string]time.Duration{
	"PT15M": 15 * time.Minute,
	"PT30M": 30 * time.Minute,
	"PT60M": time.Hour,
}

// ParsePublicationXML decodes an A44 publication document into observations
// in Europe/Paris local time. Sub-hourly resolutions are kept as-is; monthly
// bucketing downstream does not care about intra-hour spacing.
func ParsePublicationXML(raw []byte) ([]model.PriceObservation, error) {
	var doc publicationDocument
	if err := xml.Unmarshal(raw, &doc); err != nil || len(doc.TimeSeries) == 0 {
		// Either a malformed body or an acknowledgement ("no matching data").
		var ack acknowledgementDocument
		if ackErr := xml.Unmarshal(raw, &ack); ackErr == nil && ack.Reason.Text != "" {
			return nil, &EntsoeError{
				Code:    "NO_DATA",
				Message: fmt.Sprintf("ENTSO-E: %s (code %s)", ack.Reason.Text, ack.Reason.Code),
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return nil, &EntsoeError{Code: "NO_DATA", Message: "ENTSO-E: response contained no time series"}
	}

	loc, err := time.LoadLocation(marketTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %s: %w", marketTimezone, err)
	}

	var obs []model.PriceObservation
	for _, ts := range doc.TimeSeries {
		for _, period := range ts.Period {
			step, ok := resolutionDurations[period.Resolution]
			if !ok {
				return nil, fmt.Errorf("unsupported resolution %q", period.Resolution)
			}
			start, err := time.Parse("2006-01-02T15:04Z", period.TimeInterval.Start)
			if err != nil {
				return nil, fmt.Errorf("bad period start %q: %w", period.TimeInterval.Start, err)
			}
			for _, p := range period.Point {
				at := start.Add(time.Duration(p.Position-1) * step).In(loc)
				obs = append(obs, model.PriceObservation{Timestamp: at, Price: p.Price})
			}
		}
	}
	return obs, nil
}
