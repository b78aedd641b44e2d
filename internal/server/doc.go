// Package server implements the MCP (Model Context Protocol) server that exposes
// the red-minus-blue channel difference transform.
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
// Basic Image Information:
//   - image_load: Load image and get metadata, including its BGR24 frame size
//   - image_dimensions: Get width and height
//
// Channel Difference:
//   - colordiff_image: Transform a whole image or a region, return/save the gray result
//   - colordiff_sample: Source color and transform value at given points
//   - colordiff_frame: Transform a raw base64 BGR24 frame, as a video host would
//   - colordiff_value: Transform value for one red/blue pair
//
// # Frames
//
// colordiff_frame keeps a single colordiff.Filter for the most recent frame
// size. Frames are validated before the filter is looked up, so malformed
// frames never create one. The returned filter_stats accumulate while the
// size stays the same; a new size starts a fresh filter. Requests are handled
// one at a time, which the filter relies on.
//
// A request line may be at most 64 MiB. Longer lines are discarded and
// answered with a -32700 error carrying a null id.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string; malformed frames contain "invalid argument"
package server
