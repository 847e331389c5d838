// Package server implements the MCP (Model Context Protocol) server for raw
// camera file tools.
//
// The server exposes LibRaw-backed decoding and analysis of raw sensor data
// to MCP clients, so an assistant can inspect what a camera actually recorded
// before any demosaicing or color processing.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Raw File Information:
//   - raw_load: Decode a file and report size, layout and camera
//   - raw_dimensions: Raw buffer width and height
//   - raw_pixel_type: raw, color3 or color4
//   - raw_unload: Drop one or all files from the cache
//
// Analysis:
//   - raw_stats: Per-channel statistics and histograms
//   - raw_sample: Channel values at one or more pixels
//   - raw_compare_regions: Means and sample differences of two regions
//   - raw_checksum: Per-channel sample sums
//
// Rendering:
//   - raw_crop: Normalised PNG of a region
//   - raw_preview: Gamma-corrected PNG of the whole buffer
//   - raw_grid_overlay: Full-size preview with a coordinate grid
//   - raw_export_tiff: 16-bit TIFF of the unscaled buffer
//
// OCR:
//   - raw_ocr: Tesseract over the rendered preview
//
// Library:
//   - libraw_version: Linked LibRaw version and OCR availability
//   - libraw_cameras: Supported camera list
//
// # Caching
//
// Decoded buffers are cached by path for the lifetime of the process, or
// until raw_unload. LibRaw itself is only held open while a file is being
// decoded.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000, message "Tool execution failed" and the error text as data. When
// LibRaw rejects a file the data is exactly LibRaw's message (or the
// operating system's, for I/O failures), with no prefix added.
//
// # Usage
//
//	srv := server.New(version)
//	if err := srv.Run(); err != nil {
//	    slog.Error("server error", "error", err)
//	    os.Exit(1)
//	}
package server
