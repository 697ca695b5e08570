package caption

// Request holds parameters for a captioning call.
type Request struct {
	// Image is the raw image bytes to describe.
	Image []byte `json:"-"`
	// MIMEType is the image content type (defaults to image/png).
	MIMEType string `json:"mime_type,omitempty"`
	// Prompt overrides the default description instruction.
	Prompt string `json:"prompt,omitempty"`
}

// Response holds the result of a captioning call.
type Response struct {
	// Text is the natural-language description of the image.
	Text string `json:"text"`
}
