package weather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"weatherstatus/internal/config"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// lang controls the language of the provider's textual descriptions.
// Only logged, never parsed, so a constant is enough.
const lang = "ru"

// Client fetches current conditions for one configured city.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	city    string
	country string
	now     func() time.Time
}

func New(cfg config.Config) *Client {
	return &Client{
		http:    resty.New().SetTimeout(cfg.WeatherTimeout),
		baseURL: defaultBaseURL,
		apiKey:  cfg.WeatherAPIKey,
		city:    cfg.CityName,
		country: cfg.CountryCode,
		now:     time.Now,
	}
}

type currentResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Sys struct {
		Sunrise int64 `json:"sunrise"`
		Sunset  int64 `json:"sunset"`
	} `json:"sys"`
}

// Current performs one fresh request to the provider. No caching: the poll
// interval is the only pacing.
func (c *Client) Current(ctx context.Context) (Observation, error) {
	request := c.http.R().SetContext(ctx)
	request.SetQueryParams(map[string]string{
		"q":     fmt.Sprintf("%s,%s", c.city, c.country),
		"appid": c.apiKey,
		"units": "metric",
		"lang":  lang,
	})

	response, err := request.Get(c.baseURL)
	if err != nil {
		return Observation{}, fmt.Errorf("fetch weather: %w", err)
	}

	if response.StatusCode() != 200 {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, response.Body(), "", "  "); err != nil {
			return Observation{}, fmt.Errorf("fetch weather: status code %d", response.StatusCode())
		}
		return Observation{}, fmt.Errorf("fetch weather: status code %d\n%s", response.StatusCode(), buf.String())
	}

	var r currentResponse
	if err := json.Unmarshal(response.Body(), &r); err != nil {
		return Observation{}, fmt.Errorf("parse weather response: %w", err)
	}
	if len(r.Weather) == 0 {
		return Observation{}, fmt.Errorf("parse weather response: no conditions for %q", c.city)
	}

	now := c.now().UTC()
	code := r.Weather[0].ID

	return Observation{
		City:       r.Name,
		Condition:  ConditionFromCode(code),
		Code:       code,
		TempC:      r.Main.Temp,
		IsDaytime:  isDaytime(r.Sys.Sunrise, r.Sys.Sunset, now),
		ObservedAt: now,
	}, nil
}
