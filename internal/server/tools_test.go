package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"colordiff_image",
		"colordiff_sample",
		"colordiff_frame",
		"colordiff_value",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be declared.
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s not in properties", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"image_load":       {"path"},
		"image_dimensions": {"path"},
		"colordiff_image":  {"path"},
		"colordiff_sample": {"path", "points"},
		"colordiff_frame":  {"data", "width", "height"},
		"colordiff_value":  {"r", "b"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			tool, ok := toolMap[name]
			if !ok {
				t.Fatalf("tool %s not found", name)
			}
			required, _ := tool.InputSchema["required"].([]string)
			got := make(map[string]bool)
			for _, r := range required {
				got[r] = true
			}
			for _, w := range want {
				if !got[w] {
					t.Errorf("%s should require '%s'", name, w)
				}
			}
			if len(required) != len(want) {
				t.Errorf("%s required: got %v, want %v", name, required, want)
			}
		})
	}
}

func TestToolDefinitions_ColordiffImageRegion(t *testing.T) {
	var tool Tool
	for _, tt := range GetToolDefinitions() {
		if tt.Name == "colordiff_image" {
			tool = tt
			break
		}
	}

	props, ok := tool.InputSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("properties should be a map")
	}

	region, ok := props["region"].(map[string]interface{})
	if !ok {
		t.Fatal("region property should exist and be a map")
	}
	regionProps, ok := region["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("region should declare properties")
	}
	for _, k := range []string{"x1", "y1", "x2", "y2"} {
		if _, ok := regionProps[k]; !ok {
			t.Errorf("region missing %s", k)
		}
	}

	scale, ok := props["scale"].(map[string]interface{})
	if !ok {
		t.Fatal("scale property should exist")
	}
	if scale["default"] != 1.0 {
		t.Errorf("scale default: got %v, want 1.0", scale["default"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
