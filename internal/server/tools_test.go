package server

import "testing"

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{
		"raw_load", "raw_dimensions", "raw_pixel_type", "raw_unload",
		"raw_stats", "raw_sample", "raw_compare_regions", "raw_checksum",
		"raw_crop", "raw_preview", "raw_grid_overlay", "raw_export_tiff",
		"raw_ocr", "libraw_version", "libraw_cameras",
	}
	if len(tools) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(tools))
	}

	byName := make(map[string]Tool, len(tools))
	for _, tool := range tools {
		if _, dup := byName[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		byName[tool.Name] = tool
	}
	for _, name := range want {
		if _, ok := byName[name]; !ok {
			t.Errorf("missing tool %s", name)
		}
	}
}

func TestToolDefinitions_Schemas(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("empty description")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("schema type = %v, want object", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("schema has no properties map")
			}
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required argument %q not in properties", r)
				}
			}
		})
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 3})

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools has type %T", result["tools"])
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tools/list returned %d tools", len(tools))
	}
}
