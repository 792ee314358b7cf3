// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolBridge is the abstract remote-procedure interface to the external 3D
// authoring application. Results are opaque to the pipeline except for
// logging. A failed call or timeout returns an error wrapping ErrTool.
type ToolBridge interface {
	Invoke(ctx context.Context, method string, params map[string]any, timeout time.Duration) (string, error)
}

// MCPBridge drives the authoring tool through an MCP server over stdio.
type MCPBridge struct {
	serverName string
	client     *client.Client
}

// NewMCPBridge launches the configured MCP server process and performs the
// initialize handshake.
func NewMCPBridge(ctx context.Context, cfg BlenderConfig) (*MCPBridge, error) {
	c, err := client.NewStdioMCPClient(cfg.Command, nil, cfg.Args...)
	if err != nil {
		return nil, toolErrorf("starting %s server (%s): %v", cfg.ServerName, cfg.Command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "meshsmith", Version: "0.1.0"}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, toolErrorf("initializing %s server: %v", cfg.ServerName, err)
	}

	logf("bridge: connected to %s server (%s %s)", cfg.ServerName, cfg.Command, strings.Join(cfg.Args, " "))
	return &MCPBridge{serverName: cfg.ServerName, client: c}, nil
}

// Invoke calls a single tool on the server with the given timeout budget.
// Transport failures, tool-side errors, and timeouts all surface as ErrTool.
func (b *MCPBridge) Invoke(ctx context.Context, method string, params map[string]any, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = method
	req.Params.Arguments = params

	res, err := b.client.CallTool(ctx, req)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", toolErrorf("%s/%s timed out after %s", b.serverName, method, timeout)
	}
	if err != nil {
		return "", toolErrorf("%s/%s: %v", b.serverName, method, err)
	}

	text := flattenContent(res.Content)
	if res.IsError {
		return "", toolErrorf("%s/%s: %s", b.serverName, method, text)
	}
	return text, nil
}

// Close shuts down the server process.
func (b *MCPBridge) Close() error {
	return b.client.Close()
}

// flattenContent joins the text blocks of a tool result.
func flattenContent(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
