package runner_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/petasbytes/wardrobe-agent/internal/runner"
	"github.com/petasbytes/wardrobe-agent/tools"
)

// fakeTransport answers each request with the next queued body and repeats
// the last one once the queue is exhausted.
type fakeTransport struct {
	bodies   []string
	requests [][]byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	f.requests = append(f.requests, b)

	i := min(len(f.requests), len(f.bodies)) - 1
	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader([]byte(f.bodies[i]))),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func newClientWithTransport(rt http.RoundTripper) *anthropic.Client {
	c := anthropic.NewClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
	)
	return &c
}

func newRunner(fake *fakeTransport, defs []tools.ToolDefinition) (*runner.Runner, *bytes.Buffer) {
	r := runner.New(newClientWithTransport(fake), defs)
	var out bytes.Buffer
	r.Out = &out
	return r, &out
}

const textReply = `{"role":"assistant","content":[{"type":"text","text":"Here you go."}]}`

func toolUseReply(id, name, input string) string {
	return `{"role":"assistant","content":[{"type":"tool_use","id":"` + id + `","name":"` + name + `","input":` + input + `}]}`
}

// echoTool returns its city back, or fails when the city is "fail".
func echoTool() tools.ToolDefinition {
	type in struct {
		City string `json:"city"`
	}
	return tools.ToolDefinition{
		Name:        "get_weather",
		Description: "echo",
		InputSchema: tools.GenerateSchema[in](),
		Function: func(_ context.Context, input json.RawMessage) (string, error) {
			var v in
			if err := json.Unmarshal(input, &v); err != nil {
				return "", err
			}
			if v.City == "fail" {
				return "", &tools.ToolError{Label: tools.WeatherErrorLabel, Err: os.ErrDeadlineExceeded}
			}
			return "sunny in " + v.City, nil
		},
	}
}

type sentContent struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	IsError   bool            `json:"is_error"`
	Content   []sentContent   `json:"content"`
}

type sentRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	System      []struct {
		Text string `json:"text"`
	} `json:"system"`
	Tools []struct {
		Name string `json:"name"`
	} `json:"tools"`
	Messages []struct {
		Role    string        `json:"role"`
		Content []sentContent `json:"content"`
	} `json:"messages"`
}

func decodeRequest(t *testing.T, b []byte) sentRequest {
	t.Helper()
	var req sentRequest
	if err := json.Unmarshal(b, &req); err != nil {
		t.Fatalf("unmarshal body: %v\nbody=%s", err, b)
	}
	return req
}

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open events: %v", err)
	}
	defer f.Close()
	var out []map[string]any
	s := bufio.NewScanner(f)
	for s.Scan() {
		var m map[string]any
		if err := json.Unmarshal(s.Bytes(), &m); err != nil {
			t.Fatalf("invalid JSON line: %v", err)
		}
		out = append(out, m)
	}
	return out
}

func lastEvent(events []map[string]any, name string) map[string]any {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i]["event"] == name {
			return events[i]
		}
	}
	return nil
}
