package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kumalab/kuma/process"
)

// nativeAudioExts are containers the transcription backend accepts directly;
// anything else is transcoded to wav first.
var nativeAudioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".mpga": true,
	".mpeg": true,
	".ogg":  true,
	".oga":  true,
	".webm": true,
	".flac": true,
}

// scratch persists a voice attachment to a transient file and returns its
// path together with a cleanup function. The file name keeps the original
// extension so the container format stays recognizable.
func scratch(data []byte, filename string) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".ogg"
	}

	path := filepath.Join(os.TempDir(), "kuma-voice-"+uuid.NewString()+ext)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, fmt.Errorf("write scratch file: %w", err)
	}

	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}

// transcodeIfNeeded converts the scratch file to wav when its container is
// not natively accepted. The returned cleanup removes the transcoded file;
// it is a no-op when no transcode happened.
func transcodeIfNeeded(ctx context.Context, ffmpegPath, path string) (string, func(), error) {
	if nativeAudioExts[strings.ToLower(filepath.Ext(path))] {
		return path, func() {}, nil
	}

	wavPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
	result, err := process.Run(ctx, process.Command{
		Binary: ffmpegPath,
		Args: []string{
			"-i", path,
			"-ar", "16000",
			"-ac", "1",
			"-y",
			wavPath,
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("ffmpeg transcode: %w\n%s", err, result.Output())
	}

	return wavPath, func() { _ = os.Remove(wavPath) }, nil
}
