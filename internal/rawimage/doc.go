// Package rawimage turns unpacked LibRaw buffers into data the MCP tools can
// report on: per-channel statistics, pixel samples, PNG previews and 16-bit
// TIFF exports.
//
// # Ownership
//
// LibRaw views are only valid while their Image is open. Decode copies the
// active buffer into Go-owned planes before the Image is closed, so a Decoded
// value can be cached and shared freely. Nothing in this package holds a
// libraw.Pixmap after Decode returns.
//
// # Coordinate System
//
// Planes are row-major. Tools speak in image terms:
//   - X: column (0 = leftmost sample)
//   - Y: row (0 = topmost sample)
//   - For regions, (x1,y1) is inclusive and (x2,y2) is exclusive
//
// # Channels
//
// The channel count follows the layout LibRaw populated:
//   - raw: one plane holding the Bayer mosaic as recorded
//   - color3: three planes
//   - color4: four planes; previews treat them as R, G, B, G2 and average the
//     two greens
//
// # Previews
//
// Previews are normalised against the brightest sample in the frame, scaled
// to 8 bits and optionally gamma-corrected. They are meant for looking at the
// data, not as a substitute for demosaicing.
//
// # Thread Safety
//
// Cache is safe for concurrent use. Decoded values are immutable after
// Decode returns.
package rawimage
