package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema describes an optional x1/y1/x2/y2 rectangle argument.
func regionSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and the size of its packed BGR24 frame.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Channel Difference
		{
			Name: "colordiff_image",
			Description: "Apply the red-minus-blue channel difference transform to an image. " +
				"Each pixel becomes gray level clamp(R/2 - B/2 + 128, 0, 254). " +
				"Returns the result as base64 PNG and/or saves it, plus min/max/mean statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"region": regionSchema("Optional region to transform instead of the whole image"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor applied before the transform. Default 1.0",
						"default":     1.0,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to save the result; format follows the extension (png, jpg, gif, bmp, tif)",
					},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the result as base64 PNG. Default true",
						"default":     true,
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Number of goroutines used for the transform. Default from server configuration",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "colordiff_sample",
			Description: "Report the source color and the channel difference value at one or more pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
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
				"required": []string{"path", "points"},
			},
		},
		{
			Name: "colordiff_frame",
			Description: "Transform a raw video frame in place: base64 of packed 3-byte pixels " +
				"(blue, green, red), row-major, no row padding. Fails with 'invalid argument' if the " +
				"buffer length is not width*height*3.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded BGR24 frame",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Frame width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Frame height in pixels",
					},
				},
				"required": []string{"data", "width", "height"},
			},
		},
		{
			Name:        "colordiff_value",
			Description: "Compute the channel difference gray level for a single red/blue pair.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"r": map[string]interface{}{
						"type":        "integer",
						"description": "Red channel (0-255)",
					},
					"b": map[string]interface{}{
						"type":        "integer",
						"description": "Blue channel (0-255)",
					},
				},
				"required": []string{"r", "b"},
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
