package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSourceProperties describes where a maze image comes from. Exactly
// one of path or image_base64 must be given.
func imageSourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a PNG, JPEG or GIF maze image",
		},
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64-encoded image bytes, used when path is not given",
		},
	}
}

// buildOptionProperties describes the grid builder options shared by the
// image based tools.
func buildOptionProperties() map[string]interface{} {
	return map[string]interface{}{
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Binarization level 0-255. Pixels at or above it are open, darker pixels are walls. Default 200",
			"minimum":     0,
			"maximum":     255,
		},
		"threshold_policy": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"fixed", "otsu"},
			"description": "fixed uses threshold; otsu derives it from the image histogram. Default fixed",
		},
		"max_dimension": map[string]interface{}{
			"type":        "integer",
			"description": "Images larger than this are downsampled (nearest-neighbor, aspect preserved). Default 200",
			"minimum":     1,
		},
		"adaptive_sizing": map[string]interface{}{
			"type":        "boolean",
			"description": "Choose grid resolution from the size of the open regions. Default false",
		},
		"luminance": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"rec601", "perceptual"},
			"description": "Grayscale conversion. Default rec601",
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional crop {x1,y1,x2,y2} applied before building; x2/y2 exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
		},
	}
}

func cellListProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"minItems":    1,
		"items": map[string]interface{}{
			"type":     "array",
			"items":    map[string]interface{}{"type": "integer"},
			"minItems": 2,
			"maxItems": 2,
		},
	}
}

func wireGridProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": "Rectangular grid of rows; 1 = wall, 0 = open",
		"items": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "integer", "enum": []int{0, 1}},
		},
	}
}

func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "maze_image_info",
			Description: "Load a maze image file and return its dimensions, format, color depth, number of distinct gray levels and an Otsu threshold suggestion.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "maze_build_grid",
			Description: "Convert a maze image into a traversability grid. Returns {\"grid\": [[0|1]]} where 1 is a wall and 0 is open.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": merge(imageSourceProperties(), buildOptionProperties()),
			},
		},
		{
			Name:        "maze_solve",
			Description: "Find the shortest 4-connected path from any start to any end on a grid. Returns {\"path\": [[row,col],...]} or {\"path\": null} when no path exists.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid":   wireGridProperty(),
					"starts": cellListProperty("Candidate start cells as [row, col]"),
					"ends":   cellListProperty("Candidate end cells as [row, col]"),
				},
				"required": []string{"grid", "starts", "ends"},
			},
		},
		{
			Name:        "maze_solve_image",
			Description: "Build a grid from a maze image and solve it in one call. Returns the grid and the shortest path (or null).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(imageSourceProperties(), buildOptionProperties(), map[string]interface{}{
					"starts": cellListProperty("Candidate start cells as [row, col] in grid coordinates"),
					"ends":   cellListProperty("Candidate end cells as [row, col] in grid coordinates"),
				}),
				"required": []string{"starts", "ends"},
			},
		},
		{
			Name:        "maze_render_ascii",
			Description: "Render a grid as text ('#' wall, '.' open), optionally marking a path with '*'.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid": wireGridProperty(),
					"path": map[string]interface{}{
						"type":        "array",
						"description": "Optional path as [[row, col], ...]",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "integer"},
						},
					},
				},
				"required": []string{"grid"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
