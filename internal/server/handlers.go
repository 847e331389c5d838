package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/ironsheep/raw-tools-mcp/internal/libraw"
	"github.com/ironsheep/raw-tools-mcp/internal/ocr"
	"github.com/ironsheep/raw-tools-mcp/internal/rawimage"
)

const (
	defaultMaxDim = 1024
	defaultGamma  = 2.2
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "raw_load", "raw_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// whose data is the error's message, unchanged. For LibRaw failures that is
// the engine or OS message and nothing else.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		slog.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Raw File Information
	case "raw_load":
		return s.handleRawLoad(args)
	case "raw_dimensions":
		return s.handleRawDimensions(args)
	case "raw_pixel_type":
		return s.handleRawPixelType(args)
	case "raw_unload":
		return s.handleRawUnload(args)

	// Analysis
	case "raw_stats":
		return s.handleRawStats(args)
	case "raw_sample":
		return s.handleRawSample(args)
	case "raw_compare_regions":
		return s.handleRawCompareRegions(args)
	case "raw_checksum":
		return s.handleRawChecksum(args)

	// Rendering
	case "raw_crop":
		return s.handleRawCrop(args)
	case "raw_preview":
		return s.handleRawPreview(args)
	case "raw_grid_overlay":
		return s.handleRawGridOverlay(args)
	case "raw_export_tiff":
		return s.handleRawExportTIFF(args)

	// OCR
	case "raw_ocr":
		return s.handleRawOCR(args)

	// Library
	case "libraw_version":
		return s.handleLibRawVersion(args)
	case "libraw_cameras":
		return s.handleLibRawCameras(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// load returns the decoded file at path, decoding it on first use.
func (s *Server) load(path string) (*rawimage.Decoded, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return s.cache.Load(path)
}

// === Raw File Information Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleRawLoad(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return rawimage.LoadInfo(s.cache, a.Path)
}

func (s *Server) handleRawDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return rawimage.GetDimensions(s.cache, a.Path)
}

// PixelTypeResult names the buffer layout of a decoded file.
type PixelTypeResult struct {
	PixelType string `json:"pixel_type"`
	Channels  int    `json:"channels"`
}

func (s *Server) handleRawPixelType(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return &PixelTypeResult{PixelType: d.Type.String(), Channels: d.Channels()}, nil
}

// UnloadResult reports what was dropped from the cache.
type UnloadResult struct {
	Unloaded string `json:"unloaded"`
	Cached   int    `json:"cached"`
}

func (s *Server) handleRawUnload(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		s.cache.Clear()
		return &UnloadResult{Unloaded: "all", Cached: 0}, nil
	}
	s.cache.Evict(a.Path)
	return &UnloadResult{Unloaded: a.Path, Cached: s.cache.Len()}, nil
}

// === Analysis Handlers ===

type rawStatsArgs struct {
	Path             string `json:"path"`
	PreviewHistogram bool   `json:"preview_histogram"`
}

// StatsWithHistogram adds the preview histogram to the per-channel stats.
type StatsWithHistogram struct {
	*rawimage.StatsResult
	PreviewHistogram *rawimage.PreviewHistogram `json:"preview_histogram,omitempty"`
}

func (s *Server) handleRawStats(args json.RawMessage) (interface{}, error) {
	var a rawStatsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	result := &StatsWithHistogram{StatsResult: rawimage.Stats(d)}
	if a.PreviewHistogram {
		result.PreviewHistogram = rawimage.HistogramOfPreview(d)
	}
	return result, nil
}

type rawSampleArgs struct {
	Path   string                  `json:"path"`
	X      int                     `json:"x"`
	Y      int                     `json:"y"`
	Points []rawimage.LabeledPoint `json:"points"`
}

func (s *Server) handleRawSample(args json.RawMessage) (interface{}, error) {
	var a rawSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if len(a.Points) > 0 {
		return rawimage.SampleMulti(d, a.Points)
	}
	return rawimage.Sample(d, a.X, a.Y)
}

type rawCompareRegionsArgs struct {
	Path      string          `json:"path"`
	Region1   rawimage.Region `json:"region1"`
	Region2   rawimage.Region `json:"region2"`
	Tolerance int             `json:"tolerance"`
}

func (s *Server) handleRawCompareRegions(args json.RawMessage) (interface{}, error) {
	var a rawCompareRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return rawimage.CompareRegions(d, a.Region1, a.Region2, a.Tolerance)
}

func (s *Server) handleRawChecksum(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return rawimage.Checksum(d), nil
}

// === Rendering Handlers ===

type rawCropArgs struct {
	Path   string  `json:"path"`
	X1     int     `json:"x1"`
	Y1     int     `json:"y1"`
	X2     int     `json:"x2"`
	Y2     int     `json:"y2"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleRawCrop(args json.RawMessage) (interface{}, error) {
	var a rawCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Region != "" {
		return rawimage.CropQuadrant(d, a.Region, a.Scale)
	}
	return rawimage.Crop(d, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type rawPreviewArgs struct {
	Path   string   `json:"path"`
	MaxDim int      `json:"max_dim"`
	Gamma  *float64 `json:"gamma"`
}

func (s *Server) handleRawPreview(args json.RawMessage) (interface{}, error) {
	var a rawPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxDim == 0 {
		a.MaxDim = defaultMaxDim
	}
	gamma := defaultGamma
	if a.Gamma != nil {
		gamma = *a.Gamma
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return rawimage.Preview(d, a.MaxDim, gamma)
}

type rawGridOverlayArgs struct {
	Path            string `json:"path"`
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
}

func (s *Server) handleRawGridOverlay(args json.RawMessage) (interface{}, error) {
	var a rawGridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 100
	}
	showCoordinates := true
	if a.ShowCoordinates != nil {
		showCoordinates = *a.ShowCoordinates
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return rawimage.GridOverlay(d, a.GridSpacing, defaultGamma, showCoordinates, a.GridColor)
}

type rawExportTIFFArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

func (s *Server) handleRawExportTIFF(args json.RawMessage) (interface{}, error) {
	var a rawExportTIFFArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required")
	}
	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	return rawimage.ExportTIFF(d, a.Output)
}

// === OCR Handlers ===

type rawOCRArgs struct {
	Path          string  `json:"path"`
	Language      string  `json:"language"`
	X1            *int    `json:"x1"`
	Y1            *int    `json:"y1"`
	X2            *int    `json:"x2"`
	Y2            *int    `json:"y2"`
	RegionsOnly   bool    `json:"regions_only"`
	MinConfidence float64 `json:"min_confidence"`
}

// region returns the requested rectangle, or ok=false when none was given.
// A partially specified rectangle is an error.
func (a *rawOCRArgs) region() (r image.Rectangle, ok bool, err error) {
	set := 0
	for _, p := range []*int{a.X1, a.Y1, a.X2, a.Y2} {
		if p != nil {
			set++
		}
	}
	switch set {
	case 0:
		return image.Rectangle{}, false, nil
	case 4:
		return image.Rect(*a.X1, *a.Y1, *a.X2, *a.Y2), true, nil
	default:
		return image.Rectangle{}, false, fmt.Errorf("region requires all of x1, y1, x2, y2")
	}
}

func (s *Server) handleRawOCR(args json.RawMessage) (interface{}, error) {
	var a rawOCRArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = "eng"
	}
	if a.MinConfidence == 0 {
		a.MinConfidence = 0.5
	}
	rect, hasRegion, err := a.region()
	if err != nil {
		return nil, err
	}

	d, err := s.load(a.Path)
	if err != nil {
		return nil, err
	}
	img := rawimage.Render(d, defaultGamma)

	if a.RegionsOnly {
		return ocr.DetectTextRegions(img, a.MinConfidence)
	}
	if hasRegion {
		return ocr.ExtractTextFromRegion(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, a.Language)
	}
	return ocr.ExtractText(img, a.Language)
}

// === Library Handlers ===

// VersionResult describes the linked LibRaw and the OCR backend.
type VersionResult struct {
	Version string   `json:"version"`
	Major   uint8    `json:"major"`
	Minor   uint8    `json:"minor"`
	Patch   uint8    `json:"patch"`
	Number  uint32   `json:"number"`
	OCR     ocr.Info `json:"ocr"`
}

func (s *Server) handleLibRawVersion(json.RawMessage) (interface{}, error) {
	v := libraw.LibraryVersion()
	return &VersionResult{
		Version: libraw.LibraryVersionString(),
		Major:   v.Major(),
		Minor:   v.Minor(),
		Patch:   v.Patch(),
		Number:  uint32(v),
		OCR:     ocr.GetInfo(),
	}, nil
}

type libRawCamerasArgs struct {
	Filter string `json:"filter"`
}

// CamerasResult lists supported cameras.
type CamerasResult struct {
	Total   int      `json:"total"`
	Count   int      `json:"count"`
	Cameras []string `json:"cameras"`
}

func (s *Server) handleLibRawCameras(args json.RawMessage) (interface{}, error) {
	var a libRawCamerasArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return filterCameras(libraw.CameraList(), a.Filter), nil
}

func filterCameras(all []string, filter string) *CamerasResult {
	cameras := all
	if cameras == nil {
		cameras = []string{}
	}
	if filter != "" {
		needle := strings.ToLower(filter)
		cameras = make([]string, 0)
		for _, name := range all {
			if strings.Contains(strings.ToLower(name), needle) {
				cameras = append(cameras, name)
			}
		}
	}
	return &CamerasResult{Total: len(all), Count: len(cameras), Cameras: cameras}
}
