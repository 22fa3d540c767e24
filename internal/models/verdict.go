package models

// Verdict is the document-level result of a profanity check.
// Text is only meaningful when IsProfane is true.
type Verdict struct {
	IsProfane bool
	Score     float64
	Text      string
}

// CheckResponse is the JSON shape returned by the check endpoint.
type CheckResponse struct {
	IsProfane bool    `json:"isProfane"`
	Score     float64 `json:"score"`
	Text      *string `json:"text,omitempty"`
}

// MessageResponse carries a human readable message, used for errors and the hello endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewCheckResponse shapes a Verdict for the wire. The matched text is only
// exposed for profane verdicts.
func NewCheckResponse(v Verdict) CheckResponse {
	resp := CheckResponse{
		IsProfane: v.IsProfane,
		Score:     v.Score,
	}
	if v.IsProfane {
		text := v.Text
		resp.Text = &text
	}
	return resp
}
