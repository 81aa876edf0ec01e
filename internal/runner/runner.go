package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/rs/zerolog"

	"github.com/petasbytes/wardrobe-agent/internal/provider"
	"github.com/petasbytes/wardrobe-agent/internal/telemetry"
	"github.com/petasbytes/wardrobe-agent/internal/upstream"
	"github.com/petasbytes/wardrobe-agent/internal/windowing"
	"github.com/petasbytes/wardrobe-agent/tools"
)

// ErrStepLimit is returned by RunTurn when the model is still calling tools
// after MaxSteps requests.
var ErrStepLimit = errors.New("runner: step limit reached before a final answer")

const (
	DefaultMaxTokens   int64   = 1024
	DefaultBudget              = 60_000
	DefaultMaxSteps            = 8
	DefaultTemperature float64 = 0.7
)

type Runner struct {
	Client      *anthropic.Client
	Tools       []tools.ToolDefinition
	Model       anthropic.Model
	MaxTokens   int64
	Temperature float64
	Budget      int // input token budget for the send window
	MaxSteps    int
	System      string
	Counter     windowing.Counter

	Out    io.Writer // assistant text is printed here
	Log    zerolog.Logger
	Events *telemetry.Sink
}

func New(client *anthropic.Client, toolDefs []tools.ToolDefinition) *Runner {
	return &Runner{
		Client:      client,
		Tools:       toolDefs,
		Model:       provider.DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Budget:      DefaultBudget,
		MaxSteps:    DefaultMaxSteps,
		System:      DefaultSystemPrompt,
		Counter:     windowing.RuneCounter{},
		Out:         os.Stdout,
		Log:         zerolog.Nop(),
	}
}

func (r *Runner) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(r.Tools))
	for _, t := range r.Tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// RunOneStep sends the windowed conversation once, prints any text the model
// returns and runs the tools it asks for. The returned results, if any, must
// be sent back as the next user message.
func (r *Runner) RunOneStep(ctx context.Context, conv []anthropic.MessageParam) (*anthropic.Message, []anthropic.ContentBlockParamUnion, error) {
	ctx, turnID := telemetry.EnsureTurnID(ctx)

	window, stats, err := windowing.Fit(conv, r.Budget, r.Counter)
	r.Events.Emit("window_prepared", map[string]any{
		"turn_id":         turnID,
		"model":           string(r.Model),
		"budget":          stats.Budget,
		"total_estimated": stats.Total,
		"included_units":  stats.Included,
		"dropped_units":   stats.Dropped,
		"over_budget":     err != nil,
	})
	r.Log.Debug().
		Str("turn_id", turnID).
		Int("budget", stats.Budget).
		Int("estimated", stats.Total).
		Int("dropped_units", stats.Dropped).
		Msg("window prepared")
	if err != nil {
		return nil, nil, fmt.Errorf("windowing: %w; raise token_budget", err)
	}

	params := anthropic.MessageNewParams{
		Model:       r.Model,
		MaxTokens:   r.MaxTokens,
		Messages:    window,
		Temperature: anthropic.Float(r.Temperature),
		Tools:       r.anthropicTools(),
	}
	if r.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: r.System}}
	}

	msg, err := r.Client.Messages.New(ctx, params)
	if err != nil {
		return nil, nil, err
	}

	var results []anthropic.ContentBlockParamUnion
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			fmt.Fprintf(r.Out, "\u001b[93mClaude\u001b[0m: %s\n", v.Text)
		case anthropic.ToolUseBlock:
			input := json.RawMessage(v.JSON.Input.Raw())
			results = append(results, r.execTool(ctx, v.ID, v.Name, input))
		}
	}
	return msg, results, nil
}

// RunTurn calls RunOneStep until the model replies without tool calls and
// returns conv extended with every message of the turn plus the text of the
// final reply. On error the messages exchanged so far are still returned.
func (r *Runner) RunTurn(ctx context.Context, conv []anthropic.MessageParam) ([]anthropic.MessageParam, string, error) {
	ctx, turnID := telemetry.EnsureTurnID(ctx)
	maxSteps := r.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	for step := 1; step <= maxSteps; step++ {
		msg, results, err := r.RunOneStep(ctx, conv)
		if err != nil {
			return conv, "", err
		}
		conv = append(conv, msg.ToParam())
		r.Log.Debug().Str("turn_id", turnID).Int("step", step).Int("tool_calls", len(results)).Msg("step done")

		if len(results) == 0 {
			return conv, replyText(msg), nil
		}
		conv = append(conv, anthropic.NewUserMessage(results...))
	}
	return conv, "", ErrStepLimit
}

func replyText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && tb.Text != "" {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func (r *Runner) execTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	log := r.Log.With().Str("turn_id", turnID).Str("tool", name).Logger()

	// Only sizes and error classes are recorded; payloads stay out of the event.
	emit := func(d time.Duration, outputSize int, errStr, kind string) {
		fields := map[string]any{
			"turn_id":     turnID,
			"tool_name":   name,
			"duration_ms": d.Milliseconds(),
			"input_size":  len(input),
			"output_size": outputSize,
			"error":       nil,
			"error_kind":  nil,
		}
		if errStr != "" {
			fields["error"] = errStr
		}
		if kind != "" {
			fields["error_kind"] = kind
		}
		r.Events.Emit("tool_exec", fields)
	}

	start := time.Now()
	def, ok := tools.Find(r.Tools, name)
	if !ok {
		log.Warn().Msg("model asked for an unknown tool")
		emit(time.Since(start), 0, "tool not found", "")
		return anthropic.NewToolResultBlock(id, "tool not found", true)
	}

	out, err := def.Function(ctx, input)
	if err != nil {
		kind := ""
		if k, ok := upstream.KindOf(err); ok {
			kind = k.String()
		}
		log.Debug().Err(err).Msg("tool failed")
		emit(time.Since(start), 0, "tool error", kind)
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	emit(time.Since(start), len(out), "", "")
	return anthropic.NewToolResultBlock(id, out, false)
}
