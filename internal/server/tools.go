package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the "path" argument every raw_* tool takes.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the raw file (NEF, CR2, ARW, DNG, ...)",
}

func pathOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": pathProperty,
		},
		"required": []string{"path"},
	}
}

func integerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func regionProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Raw File Information
		{
			Name:        "raw_load",
			Description: "Decode a raw camera file with LibRaw and return its buffer dimensions, pixel layout, camera make/model and frame geometry. The decoded buffer is cached for later calls.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "raw_dimensions",
			Description: "Get the width and height of the unpacked raw buffer.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "raw_pixel_type",
			Description: "Report which buffer layout LibRaw unpacked: raw (one value per photosite), color3 or color4.",
			InputSchema: pathOnlySchema(),
		},
		{
			Name:        "raw_unload",
			Description: "Drop a decoded raw file from the cache, or every file when path is omitted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
			},
		},

		// Analysis
		{
			Name:        "raw_stats",
			Description: "Per-channel min, max, mean, sum and a 16-bucket histogram over every sample of the raw buffer.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"preview_histogram": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return a 256-bin RGB histogram of the 8-bit preview. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raw_sample",
			Description: "Read the raw channel values at one pixel, or at several labelled points, with the preview color as hex, RGB and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x":    integerProperty("Column (0-based, from left)"),
					"y":    integerProperty("Row (0-based, from top)"),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Optional list of points; when given, x and y are ignored",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raw_compare_regions",
			Description: "Compare two regions of the raw buffer: per-channel means and the share of samples that differ by more than a tolerance. Useful for flat-field uniformity or masked border versus active area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty,
					"region1": regionProperty("First region"),
					"region2": regionProperty("Second region"),
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Raw value difference above which two samples count as different. Default 1% of the white level",
					},
				},
				"required": []string{"path", "region1", "region2"},
			},
		},
		{
			Name:        "raw_checksum",
			Description: "Sum every sample of the raw buffer per channel. Useful to verify that two decodes produced identical data.",
			InputSchema: pathOnlySchema(),
		},

		// Rendering
		{
			Name:        "raw_crop",
			Description: "Render a rectangular region (or a named region) of the raw buffer as a normalised base64 PNG. Use this to zoom into areas that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x1":   integerProperty("Left edge X coordinate (0-based)"),
					"y1":   integerProperty("Top edge Y coordinate (0-based)"),
					"x2":   integerProperty("Right edge X coordinate (exclusive)"),
					"y2":   integerProperty("Bottom edge Y coordinate (exclusive)"),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region; overrides x1/y1/x2/y2 when set",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raw_preview",
			Description: "Render the whole raw buffer as a gamma-corrected base64 PNG that fits within max_dim pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"max_dim": map[string]interface{}{
						"type":        "integer",
						"description": "Longest edge of the preview in pixels. Default 1024",
						"default":     defaultMaxDim,
					},
					"gamma": map[string]interface{}{
						"type":        "number",
						"description": "Gamma applied to the linear sensor data. Default 2.2",
						"default":     defaultGamma,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raw_grid_overlay",
			Description: "Render the full-resolution preview with a coordinate grid, to read off raw x,y positions for raw_crop and raw_sample.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines. Default 100",
						"default":     100,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Label each intersection with its x,y. Default true",
						"default":     true,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as #rrggbb. Default #ff0000",
						"default":     "#ff0000",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raw_export_tiff",
			Description: "Write the unscaled 16-bit raw buffer to a Deflate-compressed TIFF file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the TIFF file to write",
					},
				},
				"required": []string{"path", "output"},
			},
		},

		// OCR
		{
			Name:        "raw_ocr",
			Description: "Extract text from the gamma-corrected preview of a raw file with Tesseract, optionally restricted to a region. Returns text with word bounding boxes in raw buffer coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default eng",
						"default":     "eng",
					},
					"x1": integerProperty("Optional region left edge"),
					"y1": integerProperty("Optional region top edge"),
					"x2": integerProperty("Optional region right edge (exclusive)"),
					"y2": integerProperty("Optional region bottom edge (exclusive)"),
					"regions_only": map[string]interface{}{
						"type":        "boolean",
						"description": "Return text block locations without recognising the text. Default false",
						"default":     false,
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum confidence (0-1) for regions_only mode. Default 0.5",
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},

		// Library
		{
			Name:        "libraw_version",
			Description: "Report the version of the linked LibRaw library and whether OCR is available.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "libraw_cameras",
			Description: "List the camera models the linked LibRaw supports, optionally filtered by a case-insensitive substring.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filter": map[string]interface{}{
						"type":        "string",
						"description": "Only return cameras whose name contains this text",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
