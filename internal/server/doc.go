// Package server implements the MCP (Model Context Protocol) server for the
// maze tools.
//
// This package is the thin boundary around the grid builder and the path
// solver: it decodes tool arguments, applies configured defaults, converts
// between the wire and in-memory representations, and maps errors to
// JSON-RPC error responses.
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
//   - maze_image_info: Load image and get metadata
//   - maze_build_grid: Image to {"grid": [[0|1]]} (1 = wall)
//   - maze_solve: {"grid", "starts", "ends"} to {"path": [[r,c]] | null}
//   - maze_solve_image: Build and solve in one call
//   - maze_render_ascii: Text rendering of a grid and optional path
//
// # Wire Polarity
//
// Wire grids use 1 for walls and 0 for open cells, the inverse of the
// in-memory grid.Grid where true means passable.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// A missing path is not an error; it is returned as "path": null.
package server
