package ocr

// BlockTypeLine is the only block kind consumed by the pipeline.
const BlockTypeLine = "LINE"

// BoundingBox is a block's geometry relative to the image dimensions.
// All values are ratios in [0,1].
type BoundingBox struct {
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
}

// Geometry wraps a block's bounding box.
type Geometry struct {
	BoundingBox BoundingBox `json:"BoundingBox"`
}

// Block is one recognized element of the source image.
type Block struct {
	BlockType string   `json:"BlockType"`
	Text      string   `json:"Text"`
	Geometry  Geometry `json:"Geometry"`
}

// Document is the extraction result: an ordered set of blocks in
// top-to-bottom reading order. The field name matches the wire format so
// pre-extracted JSON documents unmarshal directly.
type Document struct {
	Blocks []Block `json:"Blocks"`
}

// PositionedLine is one recognized line of text and its horizontal offset
// relative to the image width.
type PositionedLine struct {
	Text string
	Left float64
}

// Lines returns the document's LINE blocks as positioned lines, preserving
// reading order.
func (d *Document) Lines() []PositionedLine {
	lines := make([]PositionedLine, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.BlockType != BlockTypeLine {
			continue
		}
		lines = append(lines, PositionedLine{
			Text: b.Text,
			Left: b.Geometry.BoundingBox.Left,
		})
	}
	return lines
}
