// Package weather looks up current conditions for a city from an
// OpenWeatherMap-compatible API.
package weather

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/petasbytes/wardrobe-agent/internal/upstream"
)

const op = "weather"

// Record is the normalised subset of a current-weather response. City is nil
// when the response carries no name.
type Record struct {
	City        *string `json:"city"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Conditions  string  `json:"conditions"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Pressure    int     `json:"pressure"`
}

// CityName returns the city name, or "" when the response had none.
func (r Record) CityName() string {
	if r.City == nil {
		return ""
	}
	return *r.City
}

type Client struct {
	baseURL string
	apiKey  string
	fetcher *upstream.Fetcher
	log     zerolog.Logger
}

func NewClient(baseURL, apiKey string, f *upstream.Fetcher, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		fetcher: f,
		log:     log.With().Str("component", "weather").Logger(),
	}
}

// Lookup fetches current weather for city in metric units. The city is passed
// through unvalidated; unknown names surface as the provider's own error.
// A Record is returned only when every field could be read.
func (c *Client) Lookup(ctx context.Context, city string) (Record, error) {
	c.log.Info().Str("city", city).Msg("fetching weather data")

	body, err := c.fetcher.Get(ctx, op, c.endpoint(city))
	if err != nil {
		c.log.Warn().Err(err).Str("city", city).Msg("weather lookup failed")
		return Record{}, err
	}

	rec, err := parse(body)
	if err != nil {
		c.log.Warn().Err(err).Str("city", city).Msg("weather lookup failed")
		return Record{}, err
	}
	c.log.Info().
		Str("city", rec.CityName()).
		Float64("temperature", rec.Temperature).
		Str("conditions", rec.Conditions).
		Msg("weather data fetched")
	return rec, nil
}

func (c *Client) endpoint(city string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	return c.baseURL + "/data/2.5/weather?" + q.Encode()
}

var required = []string{
	"main.temp",
	"main.feels_like",
	"weather.0.description",
	"main.humidity",
	"wind.speed",
	"main.pressure",
}

func parse(body []byte) (Record, error) {
	if !gjson.ValidBytes(body) {
		return Record{}, upstream.Malformed(op, "response is not valid JSON", nil)
	}
	res := gjson.GetManyBytes(body, append([]string{"name"}, required...)...)
	for i, path := range required {
		if !res[i+1].Exists() {
			return Record{}, upstream.Malformed(op, "missing field "+path, nil)
		}
	}
	var city *string
	if res[0].Exists() && res[0].Type != gjson.Null {
		name := res[0].String()
		city = &name
	}
	return Record{
		City:        city,
		Temperature: res[1].Float(),
		FeelsLike:   res[2].Float(),
		Conditions:  res[3].String(),
		Humidity:    int(res[4].Int()),
		WindSpeed:   res[5].Float(),
		Pressure:    int(res[6].Int()),
	}, nil
}
