package ocr

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/kumalab/kuma/errors"
)

// acceptedImageFormats are the screenshot formats the loader accepts.
var acceptedImageFormats = []string{"png", "jpeg", "jpg"}

// LoadDocument produces a Document from a file path. A .json file is
// treated as a pre-extracted document and parsed directly; an accepted
// image format is read and sent through the extractor. Anything else is a
// malformed-input error raised to the caller.
func LoadDocument(ctx context.Context, extractor Extractor, path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.FileNotFound(path)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	if ext == "json" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.FileNotFound(path).WithCause(err)
		}
		return ParseDocument(data)
	}

	if !isAcceptedImage(ext) {
		return nil, errors.WrongFormat(ext, acceptedImageFormats)
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileNotFound(path).WithCause(err)
	}
	return ExtractDocument(ctx, extractor, image)
}

// ExtractDocument runs extraction on raw image bytes.
func ExtractDocument(ctx context.Context, extractor Extractor, image []byte) (*Document, error) {
	doc, err := extractor.Extract(ctx, image)
	if err != nil {
		return nil, errors.ExternalServiceError(extractor.Name(), err)
	}
	return doc, nil
}

// ParseDocument parses a pre-extracted JSON document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrongFormat("json", acceptedImageFormats).WithCause(err)
	}
	return &doc, nil
}

func isAcceptedImage(ext string) bool {
	for _, f := range acceptedImageFormats {
		if ext == f {
			return true
		}
	}
	return false
}
