// Package ocr defines the optical text extraction contract and the
// positioned-line document consumed by speaker attribution.
//
// The extraction backend is a black box: it receives image bytes and
// returns blocks with bounding geometry. Only LINE blocks are consumed,
// and only the horizontal offset of their bounding box is used as a
// signal downstream.
package ocr
