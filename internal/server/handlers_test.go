package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createMazeImage draws a white image with a vertical black wall at column
// wallX, open only at row gapY.
func createMazeImage(width, height, wallX, gapY int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == wallX && y != gapY {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img), "failed to encode image")
	return buf.Bytes()
}

// createTestImageFile writes img as a PNG in a temp dir and returns its path
func createTestImageFile(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, img), 0o644), "failed to write image")
	return path
}

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	require.NoError(t, err, "failed to marshal params")

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	require.NotNil(t, resp, "handleRequest returned nil")
	return resp
}

// toolText extracts the text content of a successful tool response.
func toolText(t *testing.T, resp *MCPResponse) string {
	t.Helper()
	require.Nil(t, resp.Error, "Unexpected error: %+v", resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "Result should be a map")

	content, ok := result["content"].([]map[string]interface{})
	require.True(t, ok, "content: got %v", result["content"])
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])
	return content[0]["text"].(string)
}

// decodeTool unmarshals the text content of a tool response into v.
func decodeTool(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(toolText(t, resp)), v), "failed to decode tool result")
}

// expectToolError checks for a -32000 response whose data mentions substr.
func expectToolError(t *testing.T, resp *MCPResponse, substr string) {
	t.Helper()
	require.NotNil(t, resp.Error, "expected an error response")
	assert.Equal(t, -32000, resp.Error.Code)
	data, _ := resp.Error.Data.(string)
	assert.Contains(t, data, substr)
}

func TestHandleToolsCall_ImageInfo(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, createMazeImage(30, 20, 5, 3))

	var info struct {
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		Format      string `json:"format"`
		Intensities int    `json:"distinct_intensities"`
	}
	decodeTool(t, callTool(t, s, "maze_image_info", map[string]interface{}{"path": imgPath}), &info)

	assert.Equal(t, 30, info.Width)
	assert.Equal(t, 20, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 2, info.Intensities)
	assert.Equal(t, 1, s.cache.Len(), "image should be cached")
}

func TestHandleToolsCall_ImageInfo_MissingPath(t *testing.T) {
	s := New()
	expectToolError(t, callTool(t, s, "maze_image_info", map[string]interface{}{}), "path is required")
}

func TestHandleToolsCall_BuildGrid_Path(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, createMazeImage(20, 10, 10, 5))

	var resp GridResponse
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{"path": imgPath}), &resp)

	require.Equal(t, 10, resp.Rows)
	require.Equal(t, 20, resp.Cols)
	require.Len(t, resp.Grid, 10)
	require.Len(t, resp.Grid[0], 20)

	assert.Equal(t, 1, resp.Grid[0][10], "wall pixel should be 1 on the wire")
	assert.Equal(t, 0, resp.Grid[5][10], "gap pixel should be 0 on the wire")
	assert.Equal(t, 0, resp.Grid[0][0], "white pixel should be 0 on the wire")
	assert.Equal(t, 200, resp.Threshold)
	assert.Equal(t, 20, resp.WorkingWidth)
	assert.Equal(t, 10, resp.WorkingHeight)
}

func TestHandleToolsCall_BuildGrid_Base64(t *testing.T) {
	s := New()
	img := createMazeImage(20, 10, 10, 5)
	fromFile := createTestImageFile(t, img)

	var viaPath, viaBase64 GridResponse
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{"path": fromFile}), &viaPath)
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{
		"image_base64": base64.StdEncoding.EncodeToString(encodePNG(t, img)),
	}), &viaBase64)

	assert.Equal(t, viaPath.Grid, viaBase64.Grid, "path and base64 sources should build the same grid")
}

func TestHandleToolsCall_BuildGrid_Overrides(t *testing.T) {
	s := New()
	img := image.NewGray(image.Rect(0, 0, 8, 4))
	for i := range img.Pix {
		img.Pix[i] = 150
	}
	imgPath := createTestImageFile(t, img)

	var def, low GridResponse
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{"path": imgPath}), &def)
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{"path": imgPath, "threshold": 100}), &low)

	assert.Equal(t, 1, def.Grid[0][0], "gray 150 is below the default threshold and should be a wall")
	assert.Equal(t, 0, low.Grid[0][0], "gray 150 is above threshold 100 and should be open")
	assert.Equal(t, 100, low.Threshold)

	var small GridResponse
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{"path": imgPath, "max_dimension": 4}), &small)
	assert.Equal(t, 2, small.Rows, "max_dimension 4")
	assert.Equal(t, 4, small.Cols, "max_dimension 4")

	var cropped GridResponse
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{
		"path":   imgPath,
		"region": map[string]int{"x1": 2, "y1": 1, "x2": 5, "y2": 3},
	}), &cropped)
	assert.Equal(t, 2, cropped.Rows, "region")
	assert.Equal(t, 3, cropped.Cols, "region")
}

func TestHandleToolsCall_BuildGrid_Errors(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, createMazeImage(10, 10, 5, 5))

	tests := []struct {
		name   string
		args   map[string]interface{}
		substr string
	}{
		{"no source", map[string]interface{}{}, "either path or image_base64"},
		{"bad base64", map[string]interface{}{"image_base64": "%%%"}, "invalid base64"},
		{"not an image", map[string]interface{}{"image_base64": base64.StdEncoding.EncodeToString([]byte("hello"))}, "decode"},
		{"missing file", map[string]interface{}{"path": "/nonexistent/maze.png"}, "nonexistent"},
		{"threshold out of range", map[string]interface{}{"path": imgPath, "threshold": 300}, "threshold"},
		{"unknown policy", map[string]interface{}{"path": imgPath, "threshold_policy": "magic"}, "policy"},
		{"unknown luminance", map[string]interface{}{"path": imgPath, "luminance": "sepia"}, "sepia"},
		{"region outside image", map[string]interface{}{"path": imgPath, "region": map[string]int{"x1": 0, "y1": 0, "x2": 50, "y2": 5}}, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectToolError(t, callTool(t, s, "maze_build_grid", tt.args), tt.substr)
		})
	}
}

func TestHandleToolsCall_Solve(t *testing.T) {
	s := New()

	var resp SolveResponse
	decodeTool(t, callTool(t, s, "maze_solve", map[string]interface{}{
		"grid":   [][]int{{0, 0}, {1, 0}},
		"starts": [][2]int{{0, 0}},
		"ends":   [][2]int{{1, 1}},
	}), &resp)

	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 1}}, resp.Path)
	assert.Equal(t, 2, resp.Length)
	assert.Equal(t, 1, resp.Stats.Searches)
}

func TestHandleToolsCall_Solve_NoPath(t *testing.T) {
	s := New()

	resp := callTool(t, s, "maze_solve", map[string]interface{}{
		"grid":   [][]int{{0, 1, 0}},
		"starts": [][2]int{{0, 0}},
		"ends":   [][2]int{{0, 2}},
	})

	var raw map[string]json.RawMessage
	decodeTool(t, resp, &raw)
	assert.Equal(t, "null", string(raw["path"]))
	assert.Equal(t, "-1", string(raw["length"]))
}

func TestHandleToolsCall_Solve_Errors(t *testing.T) {
	s := New()

	tests := []struct {
		name   string
		args   map[string]interface{}
		substr string
	}{
		{"empty grid", map[string]interface{}{"grid": [][]int{}, "starts": [][2]int{{0, 0}}, "ends": [][2]int{{0, 0}}}, "at least one row"},
		{"ragged grid", map[string]interface{}{"grid": [][]int{{0, 0}, {0}}, "starts": [][2]int{{0, 0}}, "ends": [][2]int{{0, 0}}}, "same length"},
		{"bad cell value", map[string]interface{}{"grid": [][]int{{0, 2}}, "starts": [][2]int{{0, 0}}, "ends": [][2]int{{0, 0}}}, "2"},
		{"no starts", map[string]interface{}{"grid": [][]int{{0}}, "starts": [][2]int{}, "ends": [][2]int{{0, 0}}}, "non-empty"},
		{"end out of bounds", map[string]interface{}{"grid": [][]int{{0}}, "starts": [][2]int{{0, 0}}, "ends": [][2]int{{3, 0}}}, "(3,0)"},
		{"short start pair", map[string]interface{}{"grid": [][]int{{0, 0}, {0, 0}}, "starts": [][]int{{1}}, "ends": [][]int{{1, 1}}}, "starts: grid: coordinates must be [row, col] pairs: entry 0"},
		{"long end pair", map[string]interface{}{"grid": [][]int{{0, 0}, {0, 0}}, "starts": [][]int{{0, 0}}, "ends": [][]int{{0, 1}, {1, 1, 7}}}, "ends: grid: coordinates must be [row, col] pairs: entry 1"},
		{"empty pair", map[string]interface{}{"grid": [][]int{{0}}, "starts": [][]int{{}}, "ends": [][]int{{0, 0}}}, "[row, col]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectToolError(t, callTool(t, s, "maze_solve", tt.args), tt.substr)
		})
	}
}

func TestHandleToolsCall_SolveImage(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, createMazeImage(20, 10, 10, 5))

	var resp SolveImageResponse
	decodeTool(t, callTool(t, s, "maze_solve_image", map[string]interface{}{
		"path":   imgPath,
		"starts": [][2]int{{0, 0}},
		"ends":   [][2]int{{0, 19}},
	}), &resp)

	require.NotNil(t, resp.GridResponse)
	require.Equal(t, 10, resp.Rows)
	require.Equal(t, 20, resp.Cols)
	// Down to the gap at (5,10) and back up: 15 + 14 steps
	assert.Equal(t, 29, resp.Length)
	require.Len(t, resp.Path, 30)
	assert.Contains(t, resp.Path, [2]int{5, 10}, "path should pass through the gap")
}

func TestHandleToolsCall_SolveImage_Unreachable(t *testing.T) {
	s := New()
	// Gap row outside the image: the wall is solid
	imgPath := createTestImageFile(t, createMazeImage(20, 10, 10, -1))

	var resp SolveImageResponse
	decodeTool(t, callTool(t, s, "maze_solve_image", map[string]interface{}{
		"path":   imgPath,
		"starts": [][2]int{{0, 0}},
		"ends":   [][2]int{{0, 19}},
	}), &resp)

	assert.Nil(t, resp.Path)
	assert.Equal(t, -1, resp.Length)
}

func TestHandleToolsCall_SolveImage_MalformedPair(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, createMazeImage(20, 10, 10, 5))

	expectToolError(t, callTool(t, s, "maze_solve_image", map[string]interface{}{
		"path":   imgPath,
		"starts": [][]int{{0}},
		"ends":   [][]int{{0, 19}},
	}), "starts: grid: coordinates must be [row, col] pairs")
	expectToolError(t, callTool(t, s, "maze_solve_image", map[string]interface{}{
		"path":   imgPath,
		"starts": [][]int{{0, 0}},
		"ends":   [][]int{{0, 19, 3}},
	}), "ends: grid: coordinates must be [row, col] pairs")
}

func TestHandleToolsCall_RenderASCII(t *testing.T) {
	s := New()

	var resp RenderResponse
	decodeTool(t, callTool(t, s, "maze_render_ascii", map[string]interface{}{
		"grid": [][]int{{0, 0}, {1, 0}},
		"path": [][2]int{{0, 0}, {0, 1}, {1, 1}},
	}), &resp)

	assert.Equal(t, "**\n#*\n", resp.Text)
	assert.Equal(t, 2, resp.Rows)
	assert.Equal(t, 2, resp.Cols)

	decodeTool(t, callTool(t, s, "maze_render_ascii", map[string]interface{}{
		"grid": [][]int{{0, 1}},
	}), &resp)
	assert.Equal(t, ".#\n", resp.Text, "text without path")

	expectToolError(t, callTool(t, s, "maze_render_ascii", map[string]interface{}{
		"grid": [][]int{{0, 1}},
		"path": [][]int{{0, 0}, {0}},
	}), "path: grid: coordinates must be [row, col] pairs: entry 1")
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New()
	expectToolError(t, callTool(t, s, "nonexistent_tool", map[string]interface{}{}), "unknown tool")
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`"not an object"`),
	})

	require.NotNil(t, resp.Error, "Expected error for invalid params")
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, json.RawMessage(`{invalid`))
		assert.Error(t, err, "%s: expected error for invalid JSON", tool.Name)
	}
}

func TestServer_ConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Build.Threshold = 100
	s := NewWithConfig(cfg)

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 150
	}
	imgPath := createTestImageFile(t, img)

	var resp GridResponse
	decodeTool(t, callTool(t, s, "maze_build_grid", map[string]interface{}{"path": imgPath}), &resp)
	assert.Equal(t, 100, resp.Threshold, "server default threshold not applied")
	assert.Equal(t, 0, resp.Grid[0][0])
}
