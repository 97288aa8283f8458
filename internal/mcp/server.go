package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mcpswag/mcpswag/internal/config"
	"github.com/mcpswag/mcpswag/internal/spec"
)

// Server exposes canonical operations as live MCP tools that proxy requests
// to the target API.
type Server struct {
	logger      *zap.Logger
	summary     spec.Summary
	operations  []spec.Operation
	serviceURL  string
	serviceAuth string
	timeout     time.Duration
}

// NewServer creates a serve-mode server. Service URL, authorization and
// client timeout come from configuration.
func NewServer(logger *zap.Logger, summary spec.Summary, operations []spec.Operation) *Server {
	timeout := config.GetDuration("client.timeout")
	if timeout < time.Second {
		timeout = time.Duration(config.GetInt("client.timeout")) * time.Second
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Server{
		logger:      logger,
		summary:     summary,
		operations:  operations,
		serviceURL:  config.GetString("service.url"),
		serviceAuth: config.GetString("service.authorization"),
		timeout:     timeout,
	}
}

// Build registers one MCP tool per canonical operation.
func (s *Server) Build() *server.MCPServer {
	mcpServer := server.NewMCPServer(s.summary.Title, s.summary.Version)

	for _, op := range s.operations {
		op := op
		tool := mcp.NewTool(op.OperationID, s.toolOptions(op)...)
		mcpServer.AddTool(tool, s.toolHandler(op))

		s.logger.Debug("Registered tool",
			zap.String("id", op.OperationID),
			zap.String("path", op.Path),
			zap.String("method", op.Method))
	}

	return mcpServer
}

// ServeStdio builds the server and serves it over stdio until the client
// disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("Serving MCP over stdio",
		zap.Int("tools", len(s.operations)),
		zap.String("service_url", s.serviceURL))
	return server.ServeStdio(s.Build())
}

func (s *Server) toolOptions(op spec.Operation) []mcp.ToolOption {
	opts := []mcp.ToolOption{mcp.WithDescription(toolDescription(op))}

	for _, param := range op.Parameters {
		propOpts := []mcp.PropertyOption{}
		if param.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if param.Description != "" {
			propOpts = append(propOpts, mcp.Description(param.Description))
		}

		switch param.Type {
		case "integer", "number":
			opts = append(opts, mcp.WithNumber(param.Name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(param.Name, propOpts...))
		default:
			if len(param.Enum) > 0 {
				values := make([]string, 0, len(param.Enum))
				for _, v := range param.Enum {
					if str, ok := v.(string); ok {
						values = append(values, str)
					}
				}
				if len(values) > 0 {
					propOpts = append(propOpts, mcp.Enum(values...))
				}
			}
			// Arrays and objects ride along as strings.
			opts = append(opts, mcp.WithString(param.Name, propOpts...))
		}
	}

	if op.RequestBody != nil {
		propOpts := []mcp.PropertyOption{}
		if op.RequestBody.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		desc := op.RequestBody.Description
		if desc == "" {
			desc = "Request body"
		}
		propOpts = append(propOpts, mcp.Description(desc))
		opts = append(opts, mcp.WithString("body", propOpts...))
	}

	return opts
}

func (s *Server) toolHandler(op spec.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments

		if s.serviceURL == "" {
			// Without a service URL there is nothing to call; echo the
			// invocation so the tool surface can still be exercised.
			return mcp.NewToolResultText(fmt.Sprintf("Mock response for %s %s\nParams: %v",
				strings.ToUpper(op.Method), op.Path, args)), nil
		}

		fullURL := buildURL(s.serviceURL, op, args)
		httpReq, err := s.buildRequest(ctx, op, fullURL, args)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		s.logger.Debug("Executing API request",
			zap.String("method", op.Method),
			zap.String("url", fullURL))

		client := &http.Client{Timeout: s.timeout}
		resp, err := client.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("API request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("API returned error status: %d - %s", resp.StatusCode, string(body))
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func (s *Server) buildRequest(ctx context.Context, op spec.Operation, fullURL string, args map[string]interface{}) (*http.Request, error) {
	method := strings.ToUpper(op.Method)

	var body []byte
	if op.RequestBody != nil && (method == "POST" || method == "PUT" || method == "PATCH") {
		if bodyArg, ok := args["body"]; ok {
			if bodyStr, ok := bodyArg.(string); ok {
				body = []byte(bodyStr)
			} else {
				var err error
				body, err = json.Marshal(bodyArg)
				if err != nil {
					return nil, fmt.Errorf("failed to marshal request body: %w", err)
				}
			}
		}
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, fullURL, bytes.NewBuffer(body))
	} else {
		req, err = http.NewRequestWithContext(ctx, method, fullURL, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.serviceAuth != "" {
		req.Header.Set("Authorization", s.serviceAuth)
	}
	for _, param := range op.Parameters {
		if param.In != "header" {
			continue
		}
		if val, ok := args[param.Name]; ok {
			req.Header.Set(param.Name, fmt.Sprintf("%v", val))
		}
	}

	return req, nil
}

// buildURL substitutes path parameters into the URL template and appends the
// remaining query parameters.
func buildURL(baseURL string, op spec.Operation, args map[string]interface{}) string {
	path := op.Path
	for _, param := range op.Parameters {
		if param.In != "path" {
			continue
		}
		if val, ok := args[param.Name]; ok {
			path = strings.ReplaceAll(path, "{"+param.Name+"}", fmt.Sprintf("%v", val))
		}
	}

	if !strings.HasSuffix(baseURL, "/") && !strings.HasPrefix(path, "/") {
		baseURL += "/"
	} else if strings.HasSuffix(baseURL, "/") && strings.HasPrefix(path, "/") {
		path = path[1:]
	}

	u, err := url.Parse(baseURL + path)
	if err != nil {
		return baseURL + path
	}

	q := u.Query()
	for _, param := range op.Parameters {
		if param.In != "query" {
			continue
		}
		if val, ok := args[param.Name]; ok {
			q.Add(param.Name, fmt.Sprintf("%v", val))
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func toolDescription(op spec.Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	if op.Description != "" {
		return op.Description
	}
	return fmt.Sprintf("%s %s", strings.ToUpper(op.Method), op.Path)
}
