package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/smartone/finance-board-game/game/engine"
	"github.com/smartone/finance-board-game/game/service"
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
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Finance Board Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Finance Board Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Players move around a board of money tiles. Grow your wallet, survive
expenses and taxes, answer quizzes for bonuses, and be the last player
standing (or go the distance solo).

AVAILABLE TOOLS:
- list_categories: List playable question/tile categories
- start_game: Start a new game (category, player count)
- game_state: Get a game snapshot (players, wallets, whose turn)
- roll_turn: Trigger one turn for the current player
- submit_answer: Answer a pending quiz (index, or none to pass)
- list_games: List all active games
- end_game: End a game and discard it
- game_instructions: Get comprehensive game rules

TURN FLOW:
roll_turn returns immediately; the turn plays out asynchronously. Poll
game_state to see the result. When a quiz is pending (awaiting_answer=true),
the turn is suspended until submit_answer is called.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_categories",
		Description: "List playable categories with their tile and quiz counts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListCategories)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Start a new game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Category key to play (optional, defaults to the catalog default)",
				},
				"players": map[string]interface{}{
					"type":        "integer",
					"description": "Number of players, 1-4 (optional, defaults to 1)",
				},
			},
		},
	}, c.handleStartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current snapshot of a game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "roll_turn",
		Description: "Trigger one turn for the current player. The turn runs asynchronously; poll game_state for the outcome. Rejected when a turn is already in flight or the game is over.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleRollTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "submit_answer",
		Description: "Answer the pending quiz. Omit index to submit without selecting, which counts as a wrong answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based index of the chosen answer (optional)",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleSubmitAnswer)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "end_game",
		Description: "End a game and discard its session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleEndGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
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

	// 409 carries a structured rejection payload, not an error envelope.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
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

// Tool handlers

func (c *Client) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count      int                     `json:"count"`
		Categories []*service.CategoryInfo `json:"categories"`
	}

	err := c.apiCall("GET", "/api/categories", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Categories (%d):\n\n", response.Count)
	for _, cat := range response.Categories {
		result += fmt.Sprintf("• %s — %s\n  Tiles: %d, Quiz levels: %d, Questions: %d\n\n",
			cat.Key, cat.Name, cat.TileCount, cat.QuizLevels, cat.QuizItems)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	category, _ := args["category"].(string)
	players := 1
	if n, ok := args["players"].(float64); ok {
		players = int(n)
	}

	body := map[string]interface{}{
		"category": category,
		"players":  players,
	}

	var game service.GameInfo
	err := c.apiCall("POST", "/api/games", body, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Started game: %s\nCategory: %s\n\n%s",
		game.ID, game.CategoryName, formatGameInfo(&game))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var game service.GameInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameInfo(&game)), nil
}

func (c *Client) handleRollTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var result service.TurnRequestResult
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/turn", gameID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Accepted {
		return mcp.NewToolResultText(fmt.Sprintf("Turn rejected: %s", result.Reason)), nil
	}
	return mcp.NewToolResultText("Turn accepted. The turn is playing out; use game_state to see the result."), nil
}

func (c *Client) handleSubmitAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	body := map[string]interface{}{"index": nil}
	if idx, ok := args["index"].(float64); ok {
		body["index"] = int(idx)
	}

	var response struct {
		Delivered bool   `json:"delivered"`
		Reason    string `json:"reason,omitempty"`
	}
	err := c.apiCall("POST", fmt.Sprintf("/api/games/%s/answer", gameID), body, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !response.Delivered {
		return mcp.NewToolResultText(fmt.Sprintf("Answer not delivered: %s", response.Reason)), nil
	}
	return mcp.NewToolResultText("Answer delivered. Use game_state to see the outcome."), nil
}

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                 `json:"count"`
		Games []*service.GameInfo `json:"games"`
	}

	err := c.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		status := "in progress"
		if g.Terminal {
			status = "finished"
		}
		result += fmt.Sprintf("- %s (Category: %s, Players: %d, %s, Created: %s)\n",
			g.ID, g.CategoryName, len(g.Players), status, g.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleEndGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var response struct {
		Message string `json:"message"`
	}
	err := c.apiCall("DELETE", fmt.Sprintf("/api/games/%s", gameID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎲 Finance Board Game - Complete Instructions

GAME OBJECTIVE:
Move around a ring of money tiles, grow your wallet, and outlast the other
players. Solo games are a survival run against your own finances.

THE BOARD:
The board is the perimeter of a 6x6 grid: 20 tiles walked clockwise. Each
tile has a type:
• start   - Passing it completes a lap and pays a +10,000 lap bonus
• income  - Adds money to your wallet
• expense - Takes money from your wallet
• tax     - Takes a percentage of your current wallet
• save    - Moves money from wallet into savings
• bonus   - Triggers a quiz question
• penalty - A fee, resolved like an expense

MONEY:
• Every player starts with a 50,000 wallet and 0 savings.
• Expenses draw from the wallet first. If the wallet cannot cover the rest,
  savings serve as the emergency fund.
• When wallet and savings together cannot cover an expense, the player goes
  bankrupt and is eliminated.

LEVELS:
Your level follows your wallet: LEVEL 2 at 130,000 and LEVEL 3 at 300,000.
Levels can be lost again when the wallet drops. Higher levels draw harder
quiz questions with smaller rewards:
• Level 1 quiz: +15,000 for a correct answer
• Level 2 quiz: +8,000
• Level 3 quiz: +5,000
A wrong answer (or passing) pays nothing.

TURN FLOW:
1. roll_turn - the current player rolls a die (1-6) and walks tile by tile
2. Lap bonuses are paid the moment the pion passes START
3. The landing tile resolves (income, expense, tax, save, penalty)
4. A bonus tile suspends the turn on a quiz - answer with submit_answer
5. The turn passes to the next surviving player

Only one turn runs at a time; overlapping roll_turn calls are rejected, not
queued. Poll game_state while the turn plays out.

WINNING AND LOSING:
• Multiplayer: eliminations continue until one player remains - the last
  player standing wins.
• Solo: bankruptcy ends the run.

SESSION MANAGEMENT:
- Multiple games can run simultaneously, each with its own ID
- Games idle too long are cleaned up automatically
- Use end_game to discard a finished game

Good luck, and mind your emergency fund! 💰`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatGameInfo(game *service.GameInfo) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Game: %s • Category: %s\n", game.ID, game.CategoryName))

	status := "in progress"
	if game.Terminal {
		status = "finished"
	} else if game.AwaitingAnswer {
		status = "quiz pending - submit_answer required"
	} else if game.Busy {
		status = "turn in flight"
	}
	b.WriteString(fmt.Sprintf("Status: %s\n", status))
	if !game.Terminal {
		b.WriteString(fmt.Sprintf("Current turn: %s\n", game.CurrentPlayer.Name))
	}
	b.WriteString("\nPlayers:\n")

	for _, p := range game.Players {
		marker := "  "
		if p.ID == game.CurrentPlayer.ID && !game.Terminal {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%s  LEVEL %d  wallet=%s  savings=%s  laps=%d  pos=%d",
			marker, p.Name, p.Level,
			engine.FormatPoints(p.Wallet), engine.FormatPoints(p.Savings),
			p.Laps, p.Position)
		if p.Eliminated {
			line += "  [BANKRUPT]"
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
