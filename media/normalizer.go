package media

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kumalab/kuma/caption"
	"github.com/kumalab/kuma/errors"
	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/provider"
	"github.com/kumalab/kuma/transcription"
	"github.com/kumalab/kuma/workpool"
)

// Markers used when a normalization step yields nothing usable.
const (
	// EmptyTranscriptionMarker replaces a transcription that came back blank.
	EmptyTranscriptionMarker = "(empty)"
	// AnimatedUnavailableMarker replaces a share page that could not be
	// resolved to a direct media URL. Captioning is skipped in that case.
	AnimatedUnavailableMarker = "(unable to retrieve the GIF)"
)

// Config holds the normalizer settings.
type Config struct {
	// Language is the expected spoken language of voice clips.
	Language string
	// FFmpegPath locates the transcoder used for non-native audio containers.
	FFmpegPath string
}

// Normalizer converts non-text elements into textual substitutes. The
// captioning and transcription backends are injected lazily: they are
// constructed on first use and then shared read-only by every in-flight
// invocation. Inference calls run on the bounded pool.
type Normalizer struct {
	captioner   *provider.Lazy[caption.Provider]
	transcriber *provider.Lazy[transcription.Provider]
	fetcher     *Fetcher
	pool        *workpool.Pool
	cfg         Config
	log         *logger.Logger
}

// NewNormalizer creates a media normalizer.
func NewNormalizer(
	captioner *provider.Lazy[caption.Provider],
	transcriber *provider.Lazy[transcription.Provider],
	fetcher *Fetcher,
	pool *workpool.Pool,
	cfg Config,
) *Normalizer {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	return &Normalizer{
		captioner:   captioner,
		transcriber: transcriber,
		fetcher:     fetcher,
		pool:        pool,
		cfg:         cfg,
		log:         logger.WithComponent("media"),
	}
}

// Normalize converts one element into its textual substitute. It never
// returns an unusable result: any failure becomes an inline marker with the
// typed error recorded alongside.
func (n *Normalizer) Normalize(ctx context.Context, el Element) Description {
	switch el.Kind {
	case KindText:
		return Description{Text: el.Text}
	case KindImage:
		return n.describeImage(ctx, el)
	case KindAnimated:
		return n.describeAnimated(ctx, el)
	case KindVoice:
		return n.transcribeVoice(ctx, el)
	default:
		return Description{Text: el.Text}
	}
}

// NormalizeAll converts a message's elements concurrently. Text elements
// pass through inline; sibling attachments run as independent tasks with no
// ordering guarantee between them, but the returned descriptions are in the
// order the elements were declared.
func (n *Normalizer) NormalizeAll(ctx context.Context, els []Element) []Description {
	out := make([]Description, len(els))

	var wg sync.WaitGroup
	for i, el := range els {
		if el.Kind == KindText {
			out[i] = Description{Text: el.Text}
			continue
		}
		wg.Add(1)
		go func(i int, el Element) {
			defer wg.Done()
			out[i] = n.Normalize(ctx, el)
		}(i, el)
	}
	wg.Wait()

	return out
}

func (n *Normalizer) describeImage(ctx context.Context, el Element) Description {
	data, mimeType := el.Data, el.MIMEType
	if data == nil {
		var err error
		data, mimeType, err = n.fetcher.Fetch(ctx, el.URL)
		if err != nil {
			return n.failure(el.Kind, errors.MediaFetch(el.URL, err))
		}
	}
	return n.captionBytes(ctx, el.Kind, data, mimeType)
}

func (n *Normalizer) describeAnimated(ctx context.Context, el Element) Description {
	directURL, err := n.fetcher.ResolveAnimated(ctx, el.URL)
	if err != nil {
		appErr := errors.MediaResolve(el.URL, err)
		n.log.Warn("share page resolution failed", logger.ErrorFields("resolve", appErr))
		return Description{
			Text: fmt.Sprintf("%s %s", el.Kind, AnimatedUnavailableMarker),
			Err:  appErr,
		}
	}

	data, mimeType, err := n.fetcher.Fetch(ctx, directURL)
	if err != nil {
		return n.failure(el.Kind, errors.MediaFetch(directURL, err))
	}
	return n.captionBytes(ctx, el.Kind, data, mimeType)
}

func (n *Normalizer) captionBytes(ctx context.Context, kind Kind, data []byte, mimeType string) Description {
	captioner, err := n.captioner.Get()
	if err != nil {
		return n.failure(kind, errors.Caption(err))
	}

	future := workpool.Submit(ctx, n.pool, func(ctx context.Context) (*caption.Response, error) {
		return captioner.Caption(ctx, caption.Request{Image: data, MIMEType: mimeType})
	})
	resp, err := future.Wait(ctx)
	if err != nil {
		return n.failure(kind, errors.Caption(err))
	}

	return Description{Text: fmt.Sprintf("%s Description: %s", kind, strings.TrimSpace(resp.Text))}
}

func (n *Normalizer) transcribeVoice(ctx context.Context, el Element) Description {
	data := el.Data
	if data == nil {
		var err error
		data, _, err = n.fetcher.Fetch(ctx, el.URL)
		if err != nil {
			return n.failure(el.Kind, errors.MediaFetch(el.URL, err))
		}
	}

	path, cleanup, err := scratch(data, el.Filename)
	if err != nil {
		return n.failure(el.Kind, errors.Transcription(err))
	}
	defer cleanup()

	audioPath, cleanupWav, err := transcodeIfNeeded(ctx, n.cfg.FFmpegPath, path)
	if err != nil {
		return n.failure(el.Kind, errors.Transcription(err))
	}
	defer cleanupWav()

	transcriber, err := n.transcriber.Get()
	if err != nil {
		return n.failure(el.Kind, errors.Transcription(err))
	}

	future := workpool.Submit(ctx, n.pool, func(ctx context.Context) (*transcription.Response, error) {
		return transcriber.Transcribe(ctx, transcription.Request{
			AudioPath: audioPath,
			Language:  n.cfg.Language,
		})
	})
	resp, err := future.Wait(ctx)
	if err != nil {
		return n.failure(el.Kind, errors.Transcription(err))
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		text = EmptyTranscriptionMarker
	}
	return Description{Text: fmt.Sprintf("%s Transcription: %s", el.Kind, text)}
}

// failure logs a normalization error and converts it to an inline marker.
func (n *Normalizer) failure(kind Kind, appErr *errors.AppError) Description {
	n.log.Warn("media normalization failed",
		logger.Fields(logger.FieldMediaKind, kind.String(), logger.FieldError, appErr.Error()))

	reason := appErr.Message
	if appErr.Cause != nil {
		reason = appErr.Cause.Error()
	}
	return Description{
		Text: fmt.Sprintf("%s (error: %s)", kind, reason),
		Err:  appErr,
	}
}
