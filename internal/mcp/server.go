/*
Package mcp implements the MCP server that exposes the reasoning tools.

The server uses stdio transport. Every tools/call runs the tool's
primary operation, measures its duration, and asks the metadata builder
for the auxiliary metadata (timing prediction, next-tool suggestions,
workflow presets) attached to the response. The metadata path never
fails a tool call.
*/
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/khanglvm/reason-hub-mcp/internal/metadata"
	"github.com/khanglvm/reason-hub-mcp/internal/reasoning"
	"github.com/khanglvm/reason-hub-mcp/internal/session"
	"github.com/khanglvm/reason-hub-mcp/internal/version"
)

// protocolVersion is the MCP protocol revision the server speaks.
const protocolVersion = "2024-11-05"

// Server represents the reason-hub-mcp MCP server.
type Server struct {
	processors []reasoning.Processor
	byName     map[string]reasoning.Processor
	builder    *metadata.Builder
	sessionID  string
	logger     *zap.Logger

	in  io.Reader
	out io.Writer
}

// NewServer creates an MCP server over the given processors and
// metadata builder. The stdio transport serves one client per process,
// so a single session identifier covers the connection's history.
func NewServer(processors []reasoning.Processor, builder *metadata.Builder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]reasoning.Processor, len(processors))
	for _, p := range processors {
		byName[p.Name] = p
	}
	return &Server{
		processors: processors,
		byName:     byName,
		builder:    builder,
		sessionID:  session.NewSessionID(),
		logger:     logger,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// Run starts the MCP server loop. Blocks until stdin is closed.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response, err := s.handleRequest(line)
		if err != nil {
			s.sendError(err)
			continue
		}
		if response != nil {
			s.sendResponse(response)
		}
	}

	return scanner.Err()
}

// Request represents an incoming MCP JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents an outgoing MCP JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents an MCP error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleRequest processes an incoming MCP request.
func (s *Server) handleRequest(data []byte) (*Response, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req), nil
	case "tools/list":
		return s.handleToolsList(&req), nil
	case "tools/call":
		return s.handleToolsCall(&req)
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32601, Message: "Method not found"},
		}, nil
	}
}

// handleInitialize handles the MCP initialize request.
func (s *Server) handleInitialize(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "reason-hub-mcp",
				"version": version.Version,
			},
		},
	}
}

// handleToolsList returns the reasoning tool definitions.
func (s *Server) handleToolsList(req *Request) *Response {
	tools := make([]map[string]interface{}, 0, len(s.processors))
	for _, p := range s.processors {
		tools = append(tools, map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"inputSchema": p.InputSchema,
		})
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{"tools": tools},
	}
}

// handleToolsCall executes a reasoning tool and attaches the metadata.
func (s *Server) handleToolsCall(req *Request) (*Response, error) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	proc, ok := s.byName[params.Name]
	if !ok {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32602, Message: fmt.Sprintf("Unknown tool: %s", params.Name)},
		}, nil
	}
	if params.Arguments == nil {
		params.Arguments = map[string]interface{}{}
	}

	start := time.Now()
	result, features, err := proc.Run(params.Arguments)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		// Primary-operation failure: no metadata is produced at all.
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: -32000, Message: err.Error()},
		}, nil
	}

	md := s.builder.Build(metadata.ExecutionContext{
		SessionID:       s.sessionID,
		Tool:            proc.Name,
		Features:        features,
		ElapsedMS:       elapsed,
		TimeoutBudgetMS: timeoutBudget(params.Arguments),
	})

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{"type": "text", "text": result},
			},
			"metadata": md,
		},
	}, nil
}

// timeoutBudget reads the caller-imposed budget from the arguments, if
// any. Zero means "use the configured default".
func timeoutBudget(args map[string]interface{}) int64 {
	if v, ok := args["timeout_ms"].(float64); ok && v > 0 {
		return int64(v)
	}
	return 0
}

// sendResponse writes a JSON-RPC response to the transport.
func (s *Server) sendResponse(resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("failed to marshal response", zap.Error(err))
		return
	}
	fmt.Fprintln(s.out, string(data))
}

// sendError writes an error response to the transport.
func (s *Server) sendError(err error) {
	s.sendResponse(&Response{
		JSONRPC: "2.0",
		ID:      nil,
		Error:   &Error{Code: -32700, Message: err.Error()},
	})
}
