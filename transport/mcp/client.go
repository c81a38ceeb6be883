package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/rushhour/game/engine"
	"github.com/wricardo/mcp-training/rushhour/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Solving large boards can take a while
			Timeout: 2 * time.Minute,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rush Hour",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rush Hour - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Slide the vehicles until X, the target car, leaves through the exit on the right edge of its row.

AVAILABLE TOOLS:
- create_session: Start a game on a board (see list_boards)
- list_sessions / get_session: Inspect sessions
- board_state: Current grid and every legal move
- move: Slide one vehicle by a signed offset - requires intent explanation
- bulk_move: Several moves at once - requires intent explanation
- reset_game: Restore the starting layout
- move_history: Moves played so far
- list_boards: Available boards
- solve: Shortest solution from the current position (or a board's start)
- game_instructions: Full rules

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

func sessionIDProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session on a board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"board": map[string]any{
					"type":        "string",
					"description": "Board ID from list_boards (optional, defaults to the starter board)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board and the legal moves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide one vehicle along its axis. Positive offsets move right/down, negative left/up.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
				"vehicle": map[string]any{
					"type":        "string",
					"description": "Vehicle name as shown on the board, e.g. X, A, AB",
				},
				"offset": map[string]any{
					"type":        "integer",
					"description": "Signed number of cells to move",
				},
				"intent": map[string]any{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]any{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "vehicle", "offset"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d moves in sequence, stopping at the first illegal one", service.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
				"moves": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": `Moves written as vehicle plus signed offset, e.g. ["A+2", "X-1"]`,
				},
				"intent": map[string]any{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]any{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board to its starting layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get the moves played in a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
				"page": map[string]any{
					"type":        "integer",
					"description": "Page number (default 1)",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Moves per page (default 20)",
				},
				"order": map[string]any{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first (default desc)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List the available boards",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListBoards)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Find a shortest solution with breadth-first search, from a session's current position or a board's start",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty(),
				"board": map[string]any{
					"type":        "string",
					"description": "Board ID to solve when no session_id is given",
				},
				"max_depth": map[string]any{
					"type":        "integer",
					"description": "Give up after this many moves (0 = unlimited)",
				},
			},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules and notation of the game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// intArg reads a JSON number argument
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

// parseMoveToken reads "A+2", "X-1" or "AB3" into a move
func parseMoveToken(tok string) (engine.MoveInfo, error) {
	tok = strings.TrimSpace(tok)
	i := strings.IndexAny(tok, "+-0123456789")
	if i <= 0 {
		return engine.MoveInfo{}, fmt.Errorf("move %q: expected vehicle followed by a signed offset", tok)
	}
	offset, err := strconv.Atoi(tok[i:])
	if err != nil || offset == 0 {
		return engine.MoveInfo{}, fmt.Errorf("move %q: bad offset", tok)
	}
	return engine.MoveInfo{Car: strings.ToUpper(tok[:i]), Move: offset}, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	boardName, _ := args["board"].(string)

	body := map[string]string{}
	if boardName != "" {
		body["board"] = boardName
	}

	var session service.SessionInfo
	err := c.apiCall(ctx, "POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nBoard: %s\n\n%s", session.ID, session.BoardName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "in progress"
		moves := 0
		if s.GameState != nil {
			moves = s.GameState.MoveCount
			if s.GameState.Won {
				status = "solved"
			}
		}
		fmt.Fprintf(&b, "- %s (Board: %s, Moves: %d, %s, Created: %s)\n",
			s.ID, s.BoardName, moves, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := request.GetArguments()["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := request.GetArguments()["session_id"].(string)

	var state service.GameState
	err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	vehicle, _ := args["vehicle"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	offset, ok := intArg(args, "offset")
	if !ok || offset == 0 {
		return mcp.NewToolResultError("offset must be a non-zero integer"), nil
	}

	body := map[string]any{
		"vehicle": strings.ToUpper(vehicle),
		"offset":  offset,
		"reset":   reset,
	}

	var result service.MoveResult
	err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]any)
	reset, _ := args["reset"].(bool)

	moves := make([]engine.MoveInfo, 0, len(movesRaw))
	for _, m := range movesRaw {
		switch v := m.(type) {
		case string:
			move, err := parseMoveToken(v)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			moves = append(moves, move)
		case map[string]any:
			car, _ := v["car"].(string)
			offset, _ := intArg(v, "move")
			moves = append(moves, engine.MoveInfo{Car: strings.ToUpper(car), Move: offset})
		}
	}
	if len(moves) == 0 {
		return mcp.NewToolResultError("moves must contain at least one move"), nil
	}

	body := map[string]any{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := request.GetArguments()["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *service.GameState `json:"state"`
	}

	err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", strconv.Itoa(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", strconv.Itoa(limit))
	}
	if order, ok := args["order"].(string); ok {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	err := c.apiCall(ctx, "GET", path, nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var list []service.BoardInfo
	err := c.apiCall(ctx, "GET", "/api/boards", nil, &list)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Boards:\n\n")
	for _, info := range list {
		fmt.Fprintf(&b, "• %s\n  Grid: %dx%d, Vehicles: %d (%s)\n\n",
			info.BoardID, info.Size, info.Size, info.Vehicles, info.Source)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID, _ := args["session_id"].(string)
	boardName, _ := args["board"].(string)
	maxDepth, _ := intArg(args, "max_depth")

	var path string
	switch {
	case sessionID != "":
		path = sessionPath(sessionID, "/solve")
	case boardName != "":
		path = "/api/boards/" + url.PathEscape(boardName) + "/solve"
	default:
		return mcp.NewToolResultError("either session_id or board is required"), nil
	}

	var result service.SolveResult
	err := c.apiCall(ctx, "POST", path, map[string]int{"max_depth": maxDepth}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(&result)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🚗 Rush Hour - Complete Instructions

GAME OBJECTIVE:
Get the target car X out through the exit on the right edge of its row.

BOARD:
• Square grid, usually 6x6; larger boards use the same rules
• Every vehicle is a straight horizontal or vertical run of 2 or more cells
• "." is an empty cell, "=>" marks the row with the exit
• Vehicle names are one letter, or two letters whose first is A-G (AA, BC, ...)

MOVEMENT RULES:
• A vehicle only slides along its own axis: horizontal ones left/right, vertical ones up/down
• offset is signed: positive = right or down, negative = left or up
• A slide of N cells needs all N cells in front of the vehicle empty
• Vehicles never leave the board and never pass through each other
• Once X touches the right edge you have won; further moves are rejected

MOVE NOTATION:
• move tool: vehicle="A", offset=-2
• bulk_move tool: ["A-2", "X+3"], stops at the first illegal move (max 100 per call)
• board_state lists every legal move, grouped by vehicle

STRATEGY:
1. Find the vehicles standing between X and the exit
2. Work out where each blocker must go and what blocks it in turn
3. Unwind the dependency chain from the far end back to X
4. Use reset_game to start over at any time

HINTS:
• solve returns a shortest solution from the current position
• Solving very large boards can take a long time; pass max_depth to bound it

Good luck clearing the traffic!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nBoard: %s\nCreated: %s\n\n%s",
		session.ID, session.BoardName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatGameState draws the grid with two characters per cell
func formatGameState(state *service.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header
	fmt.Fprintf(&result, "Board: %s | %dx%d | Moves: %d\n\n",
		state.BoardName, state.Size, state.Size, state.MoveCount)

	for _, row := range state.Grid {
		exitRow := false
		for _, cell := range row {
			if cell == state.Target {
				exitRow = true
			}
			fmt.Fprintf(&result, "%-3s", cell)
		}
		if exitRow {
			result.WriteString("=>")
		}
		result.WriteString("\n")
	}

	if state.Won {
		result.WriteString("\n🎉 SOLVED!")
	} else {
		result.WriteString("\nLegal moves: " + formatPossibleMoves(state.PossibleMoves))
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

// formatPossibleMoves groups legal offsets by vehicle, e.g. "A[-1 +1] X[+2]"
func formatPossibleMoves(moves []engine.MoveInfo) string {
	if len(moves) == 0 {
		return "none"
	}

	byCar := map[string][]string{}
	var cars []string
	for _, m := range moves {
		if _, ok := byCar[m.Car]; !ok {
			cars = append(cars, m.Car)
		}
		byCar[m.Car] = append(byCar[m.Car], fmt.Sprintf("%+d", m.Move))
	}
	sort.Strings(cars)

	parts := make([]string, len(cars))
	for i, car := range cars {
		parts[i] = fmt.Sprintf("%s[%s]", car, strings.Join(byCar[car], " "))
	}
	return strings.Join(parts, " ")
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		b.WriteString("✗ Move failed\n")
	}

	if result.Move != nil {
		fmt.Fprintf(&b, "Move: %s%+d\n", result.Move.Car, result.Move.Move)
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", sessionID)
	fmt.Fprintf(&b, "Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Request truncated to %d moves\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason)
	}
	if result.Won {
		b.WriteString("🎉 Puzzle solved!\n")
	}

	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	if len(history.Moves) == 0 {
		b.WriteString("(no moves yet)\n")
	}
	for _, move := range history.Moves {
		fmt.Fprintf(&b, "%d. %s%+d\n", move.MoveNumber, move.Car, move.Move)
	}

	return b.String()
}

func formatSolveResult(result *service.SolveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board: %s\n", result.BoardName)
	if result.SessionID != "" {
		fmt.Fprintf(&b, "Session: %s\n", result.SessionID)
	}
	fmt.Fprintf(&b, "Explored %d positions in %dms\n", result.Explored, result.DurationMS)

	if !result.Solved {
		fmt.Fprintf(&b, "No solution: %s\n", result.Message)
		return b.String()
	}

	fmt.Fprintf(&b, "Shortest solution: %d moves\n", result.MoveCount)
	tokens := make([]string, len(result.Moves))
	for i, m := range result.Moves {
		tokens[i] = fmt.Sprintf("%s%+d", m.Car, m.Move)
	}
	if len(tokens) > 0 {
		fmt.Fprintf(&b, "%s\n", strings.Join(tokens, " "))
	}
	return b.String()
}
