// Command kuma runs the Discord reply-suggestion bot: it reconstructs the
// recent conversation of a channel, normalizes media into text, and offers
// three generated reply candidates.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kumalab/kuma/answer"
	"github.com/kumalab/kuma/bot"
	"github.com/kumalab/kuma/caption"
	captionopenai "github.com/kumalab/kuma/caption/openai"
	"github.com/kumalab/kuma/config"
	"github.com/kumalab/kuma/llm"
	"github.com/kumalab/kuma/llm/bedrock"
	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/media"
	"github.com/kumalab/kuma/ocr"
	"github.com/kumalab/kuma/ocr/textract"
	"github.com/kumalab/kuma/provider"
	"github.com/kumalab/kuma/transcript"
	"github.com/kumalab/kuma/transcription"
	transcriptionopenai "github.com/kumalab/kuma/transcription/openai"
	"github.com/kumalab/kuma/version"
	"github.com/kumalab/kuma/workpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("kuma").Fatal("configuration error", logger.ErrorFields("load", err))
	}
	logger.Init(cfg.Logging)
	log := logger.WithComponent("main")
	log.Info("starting", map[string]any{"name": cfg.Name, "version": version.Short()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := workpool.New(cfg.Media.Workers)
	fetcher := media.NewFetcher(cfg.Media.FetchTimeout)

	// Each backend kind gets a registry of named factories; the
	// configuration picks which one serves. Construction is lazy: a backend
	// is built on first use and then shared read-only across all in-flight
	// invocations.
	captioners := provider.NewRegistry[caption.Provider]()
	captioners.Register(captionopenai.ProviderName, func() (caption.Provider, error) {
		return captionopenai.NewProvider(captionopenai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.CaptionModel,
		}), nil
	})
	transcribers := provider.NewRegistry[transcription.Provider]()
	transcribers.Register(transcriptionopenai.ProviderName, func() (transcription.Provider, error) {
		return transcriptionopenai.NewProvider(transcriptionopenai.Config{
			APIKey:   cfg.OpenAI.APIKey,
			BaseURL:  cfg.OpenAI.BaseURL,
			Model:    cfg.OpenAI.TranscriptionModel,
			Language: cfg.Media.Language,
		}), nil
	})
	generators := provider.NewRegistry[llm.Provider]()
	generators.Register(bedrock.ProviderName, func() (llm.Provider, error) {
		return bedrock.NewProvider(context.Background(), bedrock.Config{
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
			ModelID:   cfg.Generation.ModelID,
			Params: llm.InferenceParams{
				MaxNewTokens: cfg.Generation.MaxNewTokens,
				TopP:         cfg.Generation.TopP,
				TopK:         cfg.Generation.TopK,
				Temperature:  cfg.Generation.Temperature,
			},
		})
	})
	extractors := provider.NewRegistry[ocr.Extractor]()
	extractors.Register(textract.ProviderName, func() (ocr.Extractor, error) {
		return textract.NewExtractor(context.Background(), textract.Config{
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		})
	})

	captioner, err := captioners.Resolve(cfg.Backends.Caption)
	if err != nil {
		log.Fatal("backend wiring failed", logger.ErrorFields("caption", err))
	}
	transcriber, err := transcribers.Resolve(cfg.Backends.Transcription)
	if err != nil {
		log.Fatal("backend wiring failed", logger.ErrorFields("transcription", err))
	}
	generation, err := generators.Resolve(cfg.Backends.Generation)
	if err != nil {
		log.Fatal("backend wiring failed", logger.ErrorFields("generation", err))
	}
	extractor, err := extractors.Resolve(cfg.Backends.Extraction)
	if err != nil {
		log.Fatal("backend wiring failed", logger.ErrorFields("extraction", err))
	}

	normalizer := media.NewNormalizer(captioner, transcriber, fetcher, pool, media.Config{
		Language:   cfg.Media.Language,
		FFmpegPath: cfg.Media.FFmpegPath,
	})
	// The assembler learns the session's own user ID at gateway ready.
	assembler := transcript.NewAssembler(normalizer, transcript.AssemblerConfig{
		DropLeadingSelf: cfg.Transcript.DropLeadingSelf,
	})
	generator := answer.NewGenerator(generation)
	screenshots := bot.NewScreenshotReader(fetcher, extractor,
		transcript.NewEngine(cfg.Transcript.LeftThreshold))

	b, err := bot.New(bot.Config{
		Token:            cfg.Discord.Token,
		DisplayUTCOffset: cfg.Discord.DisplayUTCOffset,
		SelectTimeout:    cfg.Discord.SelectTimeout,
		DropLeadingSelf:  cfg.Transcript.DropLeadingSelf,
	}, assembler, generator, screenshots)
	if err != nil {
		log.Fatal("bot setup failed", logger.ErrorFields("setup", err))
	}

	if err := b.Start(ctx); err != nil {
		log.Fatal("bot start failed", logger.ErrorFields("start", err))
	}
	log.Info("bot running, press ctrl+c to stop")

	<-ctx.Done()
	log.Info("shutting down")
	if err := b.Stop(); err != nil {
		log.Warn("shutdown error", logger.ErrorFields("stop", err))
	}
}
