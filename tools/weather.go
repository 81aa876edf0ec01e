package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/petasbytes/wardrobe-agent/internal/telemetry"
	"github.com/petasbytes/wardrobe-agent/internal/upstream"
	"github.com/petasbytes/wardrobe-agent/internal/weather"
)

const WeatherErrorLabel = "Error fetching weather data"

type WeatherLooker interface {
	Lookup(ctx context.Context, city string) (weather.Record, error)
}

type GetWeatherInput struct {
	City string `json:"city" jsonschema_description:"The name of the city to get weather for"`
}

var GetWeatherInputSchema = GenerateSchema[GetWeatherInput]()

// NewGetWeather returns the get_weather tool backed by w.
func NewGetWeather(w WeatherLooker, events *telemetry.Sink) ToolDefinition {
	return ToolDefinition{
		Name: "get_weather",
		Description: `Fetches current weather data for a given city.
Use this tool when you need to get weather information.

Returns JSON with city, temperature and feels_like (Celsius), conditions, humidity (%), wind_speed (m/s) and pressure (hPa).`,
		InputSchema: GetWeatherInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in GetWeatherInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", &ToolError{Label: WeatherErrorLabel, Err: fmt.Errorf("invalid input: %w", err)}
			}

			start := time.Now()
			rec, err := w.Lookup(ctx, in.City)
			emitLookup(ctx, events, time.Since(start), err)
			if err != nil {
				return "", &ToolError{Label: WeatherErrorLabel, Err: err}
			}
			return marshalIndent(rec)
		},
	}
}

func emitLookup(ctx context.Context, events *telemetry.Sink, d time.Duration, err error) {
	if !events.Enabled() {
		return
	}
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	fields := map[string]any{
		"turn_id":     turnID,
		"duration_ms": d.Milliseconds(),
		"error_kind":  nil,
	}
	if err != nil {
		fields["error_kind"] = errorKind(err)
	}
	events.Emit("weather_lookup", fields)
}

func errorKind(err error) string {
	if k, ok := upstream.KindOf(err); ok {
		return k.String()
	}
	return "unknown"
}
