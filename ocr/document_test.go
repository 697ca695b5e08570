package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/kumalab/kuma/errors"
)

type stubExtractor struct {
	doc *Document
	err error
}

func (s *stubExtractor) Name() string                       { return "stub" }
func (s *stubExtractor) IsAvailable(_ context.Context) bool { return true }
func (s *stubExtractor) Extract(_ context.Context, _ []byte) (*Document, error) {
	return s.doc, s.err
}

const sampleDoc = `{
	"Blocks": [
		{"BlockType": "PAGE"},
		{"BlockType": "LINE", "Text": "Hi", "Geometry": {"BoundingBox": {"Left": 0.05}}},
		{"BlockType": "WORD", "Text": "Hi", "Geometry": {"BoundingBox": {"Left": 0.05}}},
		{"BlockType": "LINE", "Text": "Hey!", "Geometry": {"BoundingBox": {"Left": 0.5}}}
	]
}`

func TestParseDocument_LinesOnly(t *testing.T) {
	doc, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := doc.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "Hi" || lines[0].Left != 0.05 {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].Text != "Hey!" || lines[1].Left != 0.5 {
		t.Errorf("unexpected second line: %+v", lines[1])
	}
}

func TestParseDocument_Malformed(t *testing.T) {
	_, err := ParseDocument([]byte("not json"))
	if !errors.HasCode(err, errors.ErrCodeWrongFormat) {
		t.Fatalf("expected WRONG_FORMAT, got %v", err)
	}
}

func TestLoadDocument_MissingFile(t *testing.T) {
	_, err := LoadDocument(context.Background(), &stubExtractor{}, "nope.png")
	if !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadDocument_WrongFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.gif")
	if err := os.WriteFile(path, []byte("gif bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDocument(context.Background(), &stubExtractor{}, path)
	if !errors.HasCode(err, errors.ErrCodeWrongFormat) {
		t.Fatalf("expected WRONG_FORMAT, got %v", err)
	}
}

func TestLoadDocument_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := LoadDocument(context.Background(), &stubExtractor{}, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines()) != 2 {
		t.Errorf("expected 2 lines, got %d", len(doc.Lines()))
	}
}

func TestLoadDocument_Image(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("png bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	want := &Document{Blocks: []Block{{BlockType: BlockTypeLine, Text: "hello"}}}
	doc, err := LoadDocument(context.Background(), &stubExtractor{doc: want}, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Lines()) != 1 || doc.Lines()[0].Text != "hello" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestLoadDocument_ExtractorFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.jpg")
	if err := os.WriteFile(path, []byte("jpg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDocument(context.Background(), &stubExtractor{err: fmt.Errorf("throttled")}, path)
	if !errors.HasCode(err, errors.ErrCodeExternalService) {
		t.Fatalf("expected EXTERNAL_SERVICE_ERROR, got %v", err)
	}
}
