package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vijay-prabhu/voiceprofile/internal/pipeline"
	"github.com/vijay-prabhu/voiceprofile/internal/taxonomy"
	"github.com/vijay-prabhu/voiceprofile/internal/transcribe"
)

// Server implements an MCP server over stdio
type Server struct {
	analyzer *pipeline.Analyzer
	taxonomy *taxonomy.Taxonomy
	options  transcribe.Options
	version  string
	handlers map[string]ToolHandler
}

// ToolHandler is a function that handles a tool call
type ToolHandler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// JSON-RPC 2.0 types
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *rpcError   `json:"error,omitempty"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type initializeResult struct {
	ProtocolVersion string `json:"protocolVersion"`
	Capabilities    struct {
		Tools     struct{} `json:"tools"`
		Resources struct{} `json:"resources"`
	} `json:"capabilities"`
	ServerInfo struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"serverInfo"`
}

type toolsListResult struct {
	Tools []Tool `json:"tools"`
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type callToolResult struct {
	Content []contentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// New creates a new MCP server. opts are the transcription settings used by
// analyze_audio_file when the caller does not override them.
func New(analyzer *pipeline.Analyzer, tax *taxonomy.Taxonomy, opts transcribe.Options, version string) *Server {
	s := &Server{
		analyzer: analyzer,
		taxonomy: tax,
		options:  opts,
		version:  version,
		handlers: make(map[string]ToolHandler),
	}
	s.registerHandlers()
	return s
}

// Start runs the MCP server on stdio
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes responses
// to w until r is exhausted or ctx is cancelled
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if response := s.handleMessage(ctx, line); response != nil {
				output, merr := json.Marshal(response)
				if merr != nil {
					slog.Warn("failed to encode mcp response", "error", merr)
				} else if _, werr := fmt.Fprintln(w, string(output)); werr != nil {
					return fmt.Errorf("write error: %w", werr)
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, msg string) *jsonRPCResponse {
	var req jsonRPCRequest
	if err := json.Unmarshal([]byte(msg), &req); err != nil {
		return errorResponse(nil, codeParseError, "Parse error")
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "initialized", "notifications/initialized":
		// Notification, no response
		return nil
	case "ping":
		return &jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: struct{}{}}
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, "Method not found")
	}
}

func errorResponse(id interface{}, code int, msg string) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &rpcError{Code: code, Message: msg},
	}
}

func (s *Server) handleInitialize(req jsonRPCRequest) *jsonRPCResponse {
	result := initializeResult{
		ProtocolVersion: "2024-11-05",
	}
	result.ServerInfo.Name = "voiceprofile"
	result.ServerInfo.Version = s.version

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func (s *Server) handleToolsList(req jsonRPCRequest) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  toolsListResult{Tools: ToolDefinitions},
	}
}

func (s *Server) handleToolsCall(ctx context.Context, req jsonRPCRequest) *jsonRPCResponse {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}

	handler, ok := s.handlers[params.Name]
	if !ok {
		return errorResponse(req.ID, codeInvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name))
	}

	result, err := handler(ctx, params.Arguments)
	if err != nil {
		return &jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: callToolResult{
				Content: []contentItem{{Type: "text", Text: err.Error()}},
				IsError: true,
			},
		}
	}

	var text string
	if str, ok := result.(string); ok {
		text = str
	} else {
		jsonBytes, _ := json.MarshalIndent(result, "", "  ")
		text = string(jsonBytes)
	}

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: callToolResult{
			Content: []contentItem{{Type: "text", Text: text}},
		},
	}
}

func (s *Server) handleResourcesList(req jsonRPCRequest) *jsonRPCResponse {
	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  resourcesListResult{Resources: ResourceDefinitions},
	}
}

func (s *Server) handleResourcesRead(req jsonRPCRequest) *jsonRPCResponse {
	var params readResourceParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params")
	}

	text, err := s.readResource(params.URI)
	if err != nil {
		return errorResponse(req.ID, codeInvalidParams, err.Error())
	}

	return &jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: readResourceResult{
			Contents: []resourceContent{
				{
					URI:      params.URI,
					MimeType: "text/plain",
					Text:     text,
				},
			},
		},
	}
}
