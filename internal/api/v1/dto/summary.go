package dto

import "strings"

// SummarizeRequest is the body of POST /summarize
type SummarizeRequest struct {
	Text string `json:"text"`
}

// Blank reports whether there is nothing to summarize
func (r *SummarizeRequest) Blank() bool {
	return strings.TrimSpace(r.Text) == ""
}

// SummaryResponse is returned by POST /summarize
type SummaryResponse struct {
	Summary string `json:"summary"`
}
