package windowing

import "github.com/anthropics/anthropic-sdk-go"

// Unit is the span msgs[Start:End]. Pair is set for a tool call exchange.
type Unit struct {
	Start int
	End   int
	Pair  bool
}

// Units splits msgs into units, oldest first.
//
// An assistant message with tool_use blocks pairs with the next message when
// that message is from the user, opens with tool_result blocks answering
// exactly the same ids, and has no tool_result after its first other block.
// Everything else is a single-message unit.
func Units(msgs []anthropic.MessageParam) []Unit {
	units := make([]Unit, 0, len(msgs))
	for i := 0; i < len(msgs); i++ {
		if i+1 < len(msgs) && pairs(msgs[i], msgs[i+1]) {
			units = append(units, Unit{Start: i, End: i + 2, Pair: true})
			i++
			continue
		}
		units = append(units, Unit{Start: i, End: i + 1})
	}
	return units
}

func pairs(call, answer anthropic.MessageParam) bool {
	if call.Role != anthropic.MessageParamRoleAssistant || answer.Role != anthropic.MessageParamRoleUser {
		return false
	}
	want := toolUseIDs(call)
	if len(want) == 0 {
		return false
	}
	got, ok := leadingResultIDs(answer)
	if !ok || len(got) != len(want) {
		return false
	}
	for id := range want {
		if _, found := got[id]; !found {
			return false
		}
	}
	return true
}

func toolUseIDs(m anthropic.MessageParam) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, b := range m.Content {
		if tu := b.OfToolUse; tu != nil && tu.ID != "" {
			ids[tu.ID] = struct{}{}
		}
	}
	return ids
}

// leadingResultIDs reports ok=false when a tool_result follows a non-result block.
func leadingResultIDs(m anthropic.MessageParam) (map[string]struct{}, bool) {
	ids := make(map[string]struct{})
	inResults := true
	for _, b := range m.Content {
		tr := b.OfToolResult
		if tr == nil {
			inResults = false
			continue
		}
		if !inResults {
			return nil, false
		}
		if tr.ToolUseID != "" {
			ids[tr.ToolUseID] = struct{}{}
		}
	}
	return ids, true
}
