package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/world/internal/client/models"
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultUserAgent    = "world/1.0"
)

// Nominatim queries an OpenStreetMap Nominatim server's /reverse endpoint.
type Nominatim struct {
	baseURL   string
	userAgent string
	language  string
	client    *http.Client
}

// NominatimOption configures a Nominatim client.
type NominatimOption func(*Nominatim)

// WithUserAgent sets the User-Agent header. Nominatim rejects requests
// without an identifying agent.
func WithUserAgent(ua string) NominatimOption {
	return func(n *Nominatim) {
		if ua != "" {
			n.userAgent = ua
		}
	}
}

func WithTimeout(d time.Duration) NominatimOption {
	return func(n *Nominatim) {
		if d > 0 {
			n.client.Timeout = d
		}
	}
}

// WithLanguage sets the accept-language parameter, e.g. "en" or "zh-CN".
func WithLanguage(lang string) NominatimOption {
	return func(n *Nominatim) { n.language = lang }
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) NominatimOption {
	return func(n *Nominatim) {
		if c != nil {
			n.client = c
		}
	}
}

func NewNominatim(baseURL string, opts ...NominatimOption) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	n := &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Nominatim) Name() string { return "nominatim" }

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
	Address     struct {
		Road    string `json:"road"`
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

func (n *Nominatim) Reverse(ctx context.Context, c models.Coordinate) (Address, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	if n.language != "" {
		q.Set("accept-language", n.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Address{}, fmt.Errorf("failed to create reverse request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("failed to reverse geocode: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("failed to parse reverse response: %w", err)
	}
	if body.Error != "" || body.DisplayName == "" {
		return Address{}, ErrNoAddress
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}

	return Address{
		Found:       true,
		DisplayName: body.DisplayName,
		Road:        body.Address.Road,
		City:        city,
		Country:     body.Address.Country,
	}, nil
}
