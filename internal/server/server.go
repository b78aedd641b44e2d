package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/colordiff-mcp/internal/colordiff"
	"github.com/ironsheep/colordiff-mcp/internal/imaging"
)

// Version is reported in the initialize handshake.
var Version = "0.1.0"

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	workers int
	debug   bool
	logger  *log.Logger

	// maxRequestBytes bounds one request line. Raw frames arrive base64
	// encoded on a single line.
	maxRequestBytes int

	mu     sync.Mutex
	filter *colordiff.Filter // filter for the current colordiff_frame geometry
}

// defaultMaxRequestBytes is the default bound on one request line.
const defaultMaxRequestBytes = 64 * 1024 * 1024

var errRequestTooLarge = errors.New("request exceeds maximum size")

// Option configures a Server.
type Option func(*Server)

// WithWorkers sets the default worker count for image transforms.
// Values <= 1 run sequentially.
func WithWorkers(n int) Option {
	return func(s *Server) { s.workers = n }
}

// WithDebug enables debug logging of tool calls and rejected frames.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// WithLogger replaces the default logger (the standard logger).
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance
func New(opts ...Option) *Server {
	s := &Server{
		cache:           imaging.NewImageCache(),
		logger:          log.Default(),
		maxRequestBytes: defaultMaxRequestBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(context.Background(), os.Stdin, os.Stdout)
}

// Serve processes newline-delimited JSON-RPC requests from r until EOF or
// until ctx is cancelled, writing responses to w.
//
// Cancellation is observed between requests: a Serve blocked reading r
// returns only once r yields a line or is closed. A line longer than the
// request limit is discarded and answered with a -32700 error.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	encoder := json.NewEncoder(w)

	for {
		line, err := readLine(reader, s.maxRequestBytes)
		if err == io.EOF {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if errors.Is(err, errRequestTooLarge) {
			s.logger.Printf("Dropping request: %v", err)
			s.writeResponse(encoder, s.errorResponse(nil, -32700, "Parse error", err.Error()))
			continue
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Printf("Failed to parse request: %v", err)
			continue
		}

		s.writeResponse(encoder, s.handleRequestContext(ctx, &req))
	}
}

func (s *Server) writeResponse(encoder *json.Encoder, resp *MCPResponse) {
	if resp == nil {
		return
	}
	if err := encoder.Encode(resp); err != nil {
		s.logger.Printf("Failed to encode response: %v", err)
	}
}

// readLine returns the next line without its terminator. Lines longer than
// limit are consumed and reported as errRequestTooLarge. A final line
// without a newline is returned before io.EOF.
func readLine(r *bufio.Reader, limit int) ([]byte, error) {
	var line []byte
	n := 0
	for {
		chunk, err := r.ReadSlice('\n')
		n += len(chunk)
		if n <= limit {
			line = append(line, chunk...)
		}
		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && n > 0:
		case err != nil:
			return nil, err
		}
		if n > limit {
			return nil, fmt.Errorf("%w: more than %d bytes", errRequestTooLarge, limit)
		}
		return bytes.TrimRight(line, "\r\n"), nil
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	return s.handleRequestContext(context.Background(), req)
}

func (s *Server) handleRequestContext(ctx context.Context, req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCallContext(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "colordiff-mcp",
				"version": Version,
			},
		},
	}
}

// filterFor returns the filter for a frame size. A host negotiates one
// format per connection, so a new geometry replaces the current filter and
// its counters.
func (s *Server) filterFor(width, height int) (*colordiff.Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filter != nil {
		if ft := s.filter.Format(); ft.Width == width && ft.Height == height {
			return s.filter, nil
		}
	}

	ft := colordiff.Format{
		Subtype:  colordiff.SubtypeRGB24,
		BitCount: 24,
		Width:    width,
		Height:   height,
	}
	f, err := colordiff.NewFilter(ft, ft, colordiff.WithLogger(s.logger, s.debug))
	if err != nil {
		return nil, err
	}
	if s.filter != nil && s.debug {
		old := s.filter.Format()
		s.logger.Printf("frame geometry changed from %dx%d to %dx%d", old.Width, old.Height, width, height)
	}
	s.filter = f
	return f, nil
}
