// Package ocr reads text out of rendered raw previews with Tesseract.
//
// Raw files of documents, whiteboards or labels carry legible text long
// before any demosaicing. This package runs Tesseract (via gosseract/v2) on
// the 8-bit previews produced by package rawimage, entirely in memory.
//
// # Prerequisites
//
// Tesseract and its language data must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Set RAW_MCP_TESSDATA to point at a tessdata directory other than the
// system default.
//
// # Functions
//
//   - ExtractText: full-image OCR with word bounding boxes
//   - ExtractTextFromRegion: OCR on a rectangle, boxes reported in full-image
//     coordinates
//   - DetectTextRegions: block-level text locations without the text
//
// Without cgo every function returns ErrUnavailable.
package ocr
