package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/maze-tools-mcp/internal/grid"
	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
	"github.com/ironsheep/maze-tools-mcp/internal/solver"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "maze_build_grid", "maze_solve").
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
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug {
			log.Printf("tool %s failed: %v", params.Name, err)
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "maze_image_info":
		return s.handleImageInfo(args)
	case "maze_build_grid":
		return s.handleBuildGrid(args)
	case "maze_solve":
		return s.handleSolve(args)
	case "maze_solve_image":
		return s.handleSolveImage(args)
	case "maze_render_ascii":
		return s.handleRenderASCII(args)
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

// === Image Information ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Grid Building ===

// buildArgs carries the image source and optional builder overrides.
// Pointer fields distinguish "not given" from zero values.
type buildArgs struct {
	Path            string          `json:"path"`
	ImageBase64     string          `json:"image_base64"`
	Threshold       *int            `json:"threshold"`
	ThresholdPolicy string          `json:"threshold_policy"`
	MaxDimension    *int            `json:"max_dimension"`
	AdaptiveSizing  *bool           `json:"adaptive_sizing"`
	Luminance       string          `json:"luminance"`
	Region          *imaging.Region `json:"region"`
}

// options overlays the call's overrides on the server defaults.
func (a *buildArgs) options(defaults grid.Options, debug bool) grid.Options {
	opts := defaults
	if a.Threshold != nil {
		opts.Threshold = *a.Threshold
	}
	if a.ThresholdPolicy != "" {
		opts.ThresholdPolicy = grid.ThresholdPolicy(a.ThresholdPolicy)
	}
	if a.MaxDimension != nil {
		opts.MaxDimension = *a.MaxDimension
	}
	if a.AdaptiveSizing != nil {
		opts.AdaptiveSizing = *a.AdaptiveSizing
	}
	if a.Luminance != "" {
		opts.Luminance = imaging.Luminance(a.Luminance)
	}
	opts.Region = a.Region
	opts.Debug = debug
	return opts
}

// loadImage resolves the image source: a cached file path or inline base64.
func (s *Server) loadImage(a *buildArgs) (image.Image, error) {
	switch {
	case a.Path != "":
		return s.cache.Load(a.Path)
	case a.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64: %v", imaging.ErrImageDecode, err)
		}
		img, _, err := imaging.Decode(data)
		return img, err
	default:
		return nil, errors.New("either path or image_base64 is required")
	}
}

func (s *Server) buildGrid(a *buildArgs) (*grid.Result, error) {
	opts := a.options(s.cfg.Build, s.cfg.Debug)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a)
	if err != nil {
		return nil, err
	}
	return grid.BuildImage(img, opts)
}

// GridResponse is the maze_build_grid result. Grid uses the wire polarity
// (1 = wall, 0 = open).
type GridResponse struct {
	Grid          [][]int `json:"grid"`
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	Threshold     int     `json:"threshold"`
	WorkingWidth  int     `json:"working_width"`
	WorkingHeight int     `json:"working_height"`
}

func newGridResponse(res *grid.Result) *GridResponse {
	return &GridResponse{
		Grid:          res.Grid.ToWire(),
		Rows:          res.Grid.Rows(),
		Cols:          res.Grid.Cols(),
		Threshold:     res.Threshold,
		WorkingWidth:  res.WorkingWidth,
		WorkingHeight: res.WorkingHeight,
	}
}

func (s *Server) handleBuildGrid(args json.RawMessage) (interface{}, error) {
	var a buildArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.buildGrid(&a)
	if err != nil {
		return nil, err
	}
	return newGridResponse(res), nil
}

// === Solving ===

// Coordinates are decoded as [][]int rather than [][2]int: encoding/json
// zero-fills short arrays and drops extra elements, which would turn [1]
// into (1,0) without complaint.
type solveArgs struct {
	Grid   [][]int `json:"grid"`
	Starts [][]int `json:"starts"`
	Ends   [][]int `json:"ends"`
}

// SolveResponse is the maze_solve result. Path is null when no start can
// reach any end; Length is the step count, -1 when Path is null.
type SolveResponse struct {
	Path   [][2]int     `json:"path"`
	Length int          `json:"length"`
	Stats  solver.Stats `json:"stats"`
}

// endpoints converts the starts and ends arguments, naming the offending
// argument on error.
func endpoints(starts, ends [][]int) ([]grid.Cell, []grid.Cell, error) {
	s, err := grid.CellsFromWire(starts)
	if err != nil {
		return nil, nil, fmt.Errorf("starts: %w", err)
	}
	e, err := grid.CellsFromWire(ends)
	if err != nil {
		return nil, nil, fmt.Errorf("ends: %w", err)
	}
	return s, e, nil
}

func (s *Server) solve(g *grid.Grid, starts, ends []grid.Cell) (*SolveResponse, error) {
	path, stats, err := solver.SolveWithStats(g, starts, ends)
	if err != nil {
		return nil, err
	}
	if s.cfg.Debug {
		log.Printf("solve: %dx%d grid, %d starts, %d ends, expanded %d, path length %d",
			g.Rows(), g.Cols(), len(starts), len(ends), stats.Expanded, path.Len())
	}
	return &SolveResponse{Path: path.ToWire(), Length: path.Len(), Stats: stats}, nil
}

func (s *Server) handleSolve(args json.RawMessage) (interface{}, error) {
	var a solveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := grid.FromWire(a.Grid)
	if err != nil {
		return nil, err
	}
	starts, ends, err := endpoints(a.Starts, a.Ends)
	if err != nil {
		return nil, err
	}
	return s.solve(g, starts, ends)
}

type solveImageArgs struct {
	buildArgs
	Starts [][]int `json:"starts"`
	Ends   [][]int `json:"ends"`
}

// SolveImageResponse combines the built grid and the solve result.
type SolveImageResponse struct {
	*GridResponse
	Path   [][2]int     `json:"path"`
	Length int          `json:"length"`
	Stats  solver.Stats `json:"stats"`
}

func (s *Server) handleSolveImage(args json.RawMessage) (interface{}, error) {
	var a solveImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	starts, ends, err := endpoints(a.Starts, a.Ends)
	if err != nil {
		return nil, err
	}
	res, err := s.buildGrid(&a.buildArgs)
	if err != nil {
		return nil, err
	}
	sol, err := s.solve(res.Grid, starts, ends)
	if err != nil {
		return nil, err
	}
	return &SolveImageResponse{
		GridResponse: newGridResponse(res),
		Path:         sol.Path,
		Length:       sol.Length,
		Stats:        sol.Stats,
	}, nil
}

// === Rendering ===

type renderArgs struct {
	Grid [][]int `json:"grid"`
	Path [][]int `json:"path"`
}

// RenderResponse is the maze_render_ascii result.
type RenderResponse struct {
	Text string `json:"text"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

func (s *Server) handleRenderASCII(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := grid.FromWire(a.Grid)
	if err != nil {
		return nil, err
	}
	var path grid.Path
	if a.Path != nil {
		cells, err := grid.CellsFromWire(a.Path)
		if err != nil {
			return nil, fmt.Errorf("path: %w", err)
		}
		path = grid.Path(cells)
	}
	return &RenderResponse{Text: grid.ASCII(g, path), Rows: g.Rows(), Cols: g.Cols()}, nil
}
