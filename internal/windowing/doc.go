// Package windowing trims a conversation to the newest messages that fit an
// input-token budget.
//
// Messages are grouped into units before trimming. An assistant message that
// calls tools and the user message answering every call form one unit, so a
// tool_use block is never sent without its tool_result.
package windowing
