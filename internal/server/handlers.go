package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/colordiff-mcp/internal/colordiff"
	"github.com/ironsheep/colordiff-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "colordiff_image").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	return s.handleToolsCallContext(context.Background(), req)
}

func (s *Server) handleToolsCallContext(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if s.debug {
		s.logger.Printf("tools/call %s", params.Name)
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			s.logger.Printf("tools/call %s failed: %v", params.Name, err)
		}
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Channel Difference
	case "colordiff_image":
		return s.handleColordiffImage(ctx, args)
	case "colordiff_sample":
		return s.handleColordiffSample(args)
	case "colordiff_frame":
		return s.handleColordiffFrame(args)
	case "colordiff_value":
		return s.handleColordiffValue(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Channel Difference Handlers ===

type colordiffImageArgs struct {
	Path         string          `json:"path"`
	Region       *imaging.Region `json:"region,omitempty"`
	Scale        float64         `json:"scale"`
	OutputPath   string          `json:"output_path"`
	IncludeImage *bool           `json:"include_image,omitempty"`
	Workers      int             `json:"workers"`
}

func (s *Server) handleColordiffImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colordiffImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Workers == 0 {
		a.Workers = s.workers
	}
	includeImage := a.IncludeImage == nil || *a.IncludeImage
	if !includeImage && a.OutputPath == "" {
		return nil, fmt.Errorf("include_image=false requires output_path")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DiffImage(ctx, img, imaging.DiffOptions{
		Region:     a.Region,
		Scale:      a.Scale,
		Workers:    a.Workers,
		OutputPath: a.OutputPath,
		OmitImage:  !includeImage,
	})
}

type colordiffSampleArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleColordiffSample(args json.RawMessage) (interface{}, error) {
	var a colordiffSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleDiffMulti(img, points)
}

type colordiffFrameArgs struct {
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// colordiffFrameResult is the transformed frame plus the counters of the
// filter for the current frame size.
type colordiffFrameResult struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Data   string          `json:"data"`
	Stats  colordiff.Stats `json:"filter_stats"`
}

func (s *Server) handleColordiffFrame(args json.RawMessage) (interface{}, error) {
	var a colordiffFrameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	frame, err := imaging.DecodeFrameBase64(a.Data, a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	filter, err := s.filterFor(frame.Width, frame.Height)
	if err != nil {
		return nil, err
	}
	if err := filter.Process(frame); err != nil {
		return nil, err
	}

	return &colordiffFrameResult{
		Width:  frame.Width,
		Height: frame.Height,
		Data:   imaging.EncodeFrameBase64(frame),
		Stats:  filter.Stats(),
	}, nil
}

type colordiffValueArgs struct {
	R int `json:"r"`
	B int `json:"b"`
}

type colordiffValueResult struct {
	R    int   `json:"r"`
	B    int   `json:"b"`
	Diff uint8 `json:"diff"`
}

func (s *Server) handleColordiffValue(args json.RawMessage) (interface{}, error) {
	var a colordiffValueArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.R < 0 || a.R > 255 || a.B < 0 || a.B > 255 {
		return nil, fmt.Errorf("%w: channel values must be 0-255, got r=%d b=%d",
			colordiff.ErrInvalidArgument, a.R, a.B)
	}
	return &colordiffValueResult{
		R:    a.R,
		B:    a.B,
		Diff: colordiff.Diff(uint8(a.R), uint8(a.B)),
	}, nil
}
