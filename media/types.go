// Package media converts non-text message content (images, animated-image
// links, voice clips) into textual substitutes. No function in this package
// propagates a failure past its own boundary: every error is recorded and
// rendered as inline text so that one broken attachment never aborts the
// surrounding conversation assembly.
package media

import "github.com/kumalab/kuma/errors"

// Kind discriminates the raw content of one message element.
type Kind int

const (
	// KindText is plain message text, passed through untouched.
	KindText Kind = iota
	// KindImage is a static image, by URL or raw bytes.
	KindImage
	// KindAnimated is a share-page link to an animated image (e.g. a GIF
	// service page), which must be resolved to a direct media URL first.
	KindAnimated
	// KindVoice is a voice clip, by URL or raw bytes.
	KindVoice
)

// String returns the kind's bracketed transcript tag.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "[Image]"
	case KindAnimated:
		return "[GIF]"
	case KindVoice:
		return "[Audio]"
	default:
		return "[Text]"
	}
}

// Element is the raw content of one message part.
type Element struct {
	Kind Kind
	// Text holds the content for KindText elements.
	Text string
	// URL points at the media (or, for KindAnimated, at the share page).
	URL string
	// Data holds raw bytes when the caller already has them; it takes
	// precedence over URL.
	Data []byte
	// Filename is the attachment's declared name, used to pick the audio
	// container for voice clips.
	Filename string
	// MIMEType is the attachment's declared content type, when known.
	MIMEType string
}

// Text returns a plain-text element.
func Text(s string) Element { return Element{Kind: KindText, Text: s} }

// Image returns an image element backed by a URL.
func Image(url string) Element { return Element{Kind: KindImage, URL: url} }

// Animated returns an animated-image element backed by a share-page URL.
func Animated(pageURL string) Element { return Element{Kind: KindAnimated, URL: pageURL} }

// Voice returns a voice-clip element backed by a URL.
func Voice(url, filename string) Element {
	return Element{Kind: KindVoice, URL: url, Filename: filename}
}

// Description is the textual substitute for one element. Text is always
// usable; when the normalization failed, Err records the typed failure and
// Text holds the inline failure marker instead of a real description.
type Description struct {
	Text string
	Err  *errors.AppError
}

// Failed reports whether this description stands in for a failure.
func (d Description) Failed() bool { return d.Err != nil }
