package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/petasbytes/wardrobe-agent/internal/catalog"
	"github.com/petasbytes/wardrobe-agent/internal/metrics"
	"github.com/petasbytes/wardrobe-agent/internal/telemetry"
)

const SearchErrorLabel = "Error searching clothing items"

type CatalogSearcher interface {
	Search(ctx context.Context, query string, limit int) (catalog.Result, error)
}

type SearchClothingsInput struct {
	Query      string `json:"query" jsonschema_description:"Search terms (e.g., \"comfortable\", \"cotton\", \"jacket\", \"soft\")"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"default=10,minimum=1" jsonschema_description:"Maximum number of results to return (default: 10)"`
}

var SearchClothingsInputSchema = GenerateSchema[SearchClothingsInput]()

// UnmarshalJSON accepts max_results written as a whole float (5.0) as well as
// an integer.
func (in *SearchClothingsInput) UnmarshalJSON(b []byte) error {
	var raw struct {
		Query      string      `json:"query"`
		MaxResults json.Number `json:"max_results"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	in.Query = raw.Query
	in.MaxResults = 0
	if raw.MaxResults == "" {
		return nil
	}
	f, err := raw.MaxResults.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("max_results must be a whole number, got %s", raw.MaxResults)
	}
	in.MaxResults = int(f)
	return nil
}

// NewSearchClothings returns the search_clothings tool backed by c.
//
// A search with no matches is a successful call whose text is the keyword
// suggestion rather than an empty JSON array.
func NewSearchClothings(c CatalogSearcher, events *telemetry.Sink) ToolDefinition {
	return ToolDefinition{
		Name: "search_clothings",
		Description: `Searches for clothing items based on a query string.
Searches in title, description, and category fields.
Returns up to max_results matching items.

Use this tool when you need to find clothing items. If the first search doesn't
return good results, try again with different keywords or broader/narrower terms.

Returns a JSON array of products, each containing id, title, price, description, category and rating.`,
		InputSchema: SearchClothingsInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in SearchClothingsInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", &ToolError{Label: SearchErrorLabel, Err: fmt.Errorf("invalid input: %w", err)}
			}

			start := time.Now()
			res, err := c.Search(ctx, in.Query, in.MaxResults)
			emitSearch(ctx, events, in, time.Since(start), res, err)
			if err != nil {
				return "", &ToolError{Label: SearchErrorLabel, Err: err}
			}
			if res.NoMatch() {
				return catalog.Suggestion(in.Query), nil
			}
			return marshalIndent(res.Products)
		},
	}
}

func emitSearch(ctx context.Context, events *telemetry.Sink, in SearchClothingsInput, d time.Duration, res catalog.Result, err error) {
	if !events.Enabled() {
		return
	}
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	fields := map[string]any{
		"turn_id":     turnID,
		"duration_ms": d.Milliseconds(),
		"max_results": in.MaxResults,
		"query":       metrics.CountFeatures(in.Query).Map(),
		"matches":     len(res.Products),
		"error_kind":  nil,
	}
	if err != nil {
		fields["error_kind"] = errorKind(err)
	}
	events.Emit("catalog_search", fields)
}
