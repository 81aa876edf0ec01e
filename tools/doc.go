// Package tools defines the tools the model can call and the table the
// runner looks them up in.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - get_weather: current weather for a city.
//   - search_clothings: keyword search over the product catalog.
//
// Handlers return a single string for the model. Failures come back as
// *ToolError, whose text keeps a fixed label ("Error fetching weather data: ...")
// while the underlying *upstream.Error stays reachable through errors.As.
package tools
