// Package runner drives a conversation turn against the Anthropic Messages API
// and dispatches the tool calls the model makes.
//
// Invariant:
//   - every tool_use in an assistant message is answered by a tool_result in
//     the next user message, errors included.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> ... -> assistant(text)
//
// Which tool to call, and how often to retry a search, is left to the model.
// The runner only bounds the number of steps and the size of the window sent.
package runner
