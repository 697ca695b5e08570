package bot

import (
	"context"

	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/media"
	"github.com/kumalab/kuma/ocr"
	"github.com/kumalab/kuma/provider"
	"github.com/kumalab/kuma/transcript"
)

// ScreenshotReader reconstructs a conversation from a chat screenshot: it
// downloads the image, runs text extraction, and attributes the recognized
// lines to speakers by horizontal position.
type ScreenshotReader struct {
	fetcher   *media.Fetcher
	extractor *provider.Lazy[ocr.Extractor]
	engine    *transcript.Engine
	log       *logger.Logger
}

// NewScreenshotReader creates a screenshot reader.
func NewScreenshotReader(fetcher *media.Fetcher, extractor *provider.Lazy[ocr.Extractor], engine *transcript.Engine) *ScreenshotReader {
	return &ScreenshotReader{
		fetcher:   fetcher,
		extractor: extractor,
		engine:    engine,
		log:       logger.WithComponent("screenshot"),
	}
}

// Read downloads the screenshot at url and turns it into a speaker-labeled
// transcript.
func (r *ScreenshotReader) Read(ctx context.Context, url string) (*transcript.Transcript, error) {
	data, _, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	ext, err := r.extractor.Get()
	if err != nil {
		return nil, err
	}
	doc, err := ocr.ExtractDocument(ctx, ext, data)
	if err != nil {
		return nil, err
	}

	lines := doc.Lines()
	r.log.Debug("screenshot extracted", logger.Fields("lines", len(lines)))
	return r.engine.Attribute(lines), nil
}
