// Package holidays fetches public holidays from the Nager.Date API and
// fills in the Brazilian Carnival gap: the API only lists Carnival
// Tuesday, while the calendar also expects Carnival Monday and Ash
// Wednesday around it.
package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://date.nager.at/api/v3"

// Holiday mirrors the Nager.Date response shape.
type Holiday struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Counties    []string `json:"counties,omitempty"`
	Types       []string `json:"types,omitempty"`
}

// Client queries one Nager.Date endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch returns the public holidays for one year and country. A non-empty
// state code keeps only nationwide holidays plus those scoped to
// "<country>-<state>".
func (c *Client) Fetch(ctx context.Context, year int, country, state string) ([]Holiday, error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		country = "BR"
	}

	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.BaseURL, year, country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holidays: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holidays: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("holidays: read body: %w", err)
	}
	var all []Holiday
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("holidays: decode: %w", err)
	}

	if state = strings.ToUpper(strings.TrimSpace(state)); state != "" {
		code := country + "-" + state
		filtered := make([]Holiday, 0, len(all))
		for _, h := range all {
			if len(h.Counties) == 0 || contains(h.Counties, code) {
				filtered = append(filtered, h)
			}
		}
		all = filtered
	}

	return augmentCarnival(all), nil
}

// augmentCarnival adds Carnival Monday (two days before) and Ash
// Wednesday (one day after) when Carnival Tuesday is present and the
// synthetic dates are not already listed.
func augmentCarnival(hs []Holiday) []Holiday {
	var carnival *Holiday
	for i := range hs {
		if strings.Contains(strings.ToLower(hs[i].LocalName), "carnaval") ||
			strings.Contains(strings.ToLower(hs[i].Name), "carnival") {
			carnival = &hs[i]
			break
		}
	}
	if carnival == nil {
		return hs
	}

	day, err := time.Parse("2006-01-02", carnival.Date)
	if err != nil {
		return hs
	}

	add := func(d time.Time, localName, name string) {
		date := d.Format("2006-01-02")
		for _, h := range hs {
			if h.Date == date {
				return
			}
		}
		hs = append(hs, Holiday{
			Date:        date,
			LocalName:   localName,
			Name:        name,
			CountryCode: carnival.CountryCode,
			Types:       []string{"Public"},
		})
	}
	add(day.AddDate(0, 0, -2), "Segunda de Carnaval", "Carnival Monday")
	add(day.AddDate(0, 0, 1), "Quarta de Cinzas", "Ash Wednesday")
	return hs
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
