package windowing

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// Counter estimates the input tokens a message costs.
type Counter interface {
	Count(m anthropic.MessageParam) int
}

// RuneCounter charges one token per rune of text plus a fixed overhead per
// block. tool_use blocks are charged for their name and encoded input.
type RuneCounter struct{}

const blockOverhead = 4

func (RuneCounter) Count(m anthropic.MessageParam) int {
	total := 0
	for _, b := range m.Content {
		total += blockOverhead + blockRunes(b)
	}
	return total
}

func blockRunes(b anthropic.ContentBlockParamUnion) int {
	switch {
	case b.OfText != nil:
		return utf8.RuneCountInString(b.OfText.Text)
	case b.OfToolUse != nil:
		n := utf8.RuneCountInString(b.OfToolUse.Name)
		if b.OfToolUse.Input != nil {
			if raw, err := json.Marshal(b.OfToolUse.Input); err == nil {
				n += utf8.RuneCount(raw)
			}
		}
		return n
	case b.OfToolResult != nil:
		n := 0
		for _, c := range b.OfToolResult.Content {
			if c.OfText != nil {
				n += utf8.RuneCountInString(c.OfText.Text)
			}
		}
		return n
	}
	return 0
}

func unitCost(u Unit, msgs []anthropic.MessageParam, c Counter) int {
	total := 0
	for _, m := range msgs[u.Start:u.End] {
		total += c.Count(m)
	}
	return total
}
