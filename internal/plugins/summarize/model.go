// Package summarize implements the summarization gateway: it gathers the
// authenticated owner's outstanding todos, asks an external text-generation
// API for a short ordered-list summary, and posts the result to a team chat
// webhook.
//
// Both upstream calls are single-attempt and sequential. There is no retry
// policy and no durable record of generated text -- a failed webhook
// delivery surfaces as an upstream error that still carries the text, and
// the caller may simply summarize again.
package summarize

// SummaryResult is the generated summary returned to the caller and
// forwarded to the webhook.
type SummaryResult struct {
	Text string `json:"text"`
}
