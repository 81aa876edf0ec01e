package tools

import "github.com/petasbytes/wardrobe-agent/internal/telemetry"

type Deps struct {
	Weather WeatherLooker
	Catalog CatalogSearcher
	Events  *telemetry.Sink
}

// Registry returns all tool definitions wired for the agent
func Registry(d Deps) []ToolDefinition {
	return []ToolDefinition{
		NewGetWeather(d.Weather, d.Events),
		NewSearchClothings(d.Catalog, d.Events),
	}
}

// Find returns the definition named name.
func Find(defs []ToolDefinition, name string) (*ToolDefinition, bool) {
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i], true
		}
	}
	return nil, false
}
