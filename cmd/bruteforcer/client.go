package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/service"
)

// Client plays one session through the REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type moveRequest struct {
	Vehicle string `json:"vehicle"`
	Offset  int    `json:"offset"`
}

type resetResponse struct {
	Message string             `json:"message"`
	State   *service.GameState `json:"state"`
}

// CreateSession starts a session on board, or the server's default board when empty
func (c *Client) CreateSession(board string) (*service.GameState, error) {
	var reqBody []byte
	if board != "" {
		var err error
		reqBody, err = json.Marshal(map[string]string{"board": board})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	var session service.SessionInfo
	if err := c.do(http.MethodPost, "/api/sessions", reqBody, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*service.GameState, error) {
	var state service.GameState
	if err := c.do(http.MethodGet, "/api/sessions/"+c.sessionID+"/state", nil, &state); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &state, nil
}

func (c *Client) Move(vehicle string, offset int) (*service.GameState, error) {
	body, err := json.Marshal(moveRequest{Vehicle: vehicle, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("marshal move: %w", err)
	}

	var result service.MoveResult
	if err := c.do(http.MethodPost, "/api/sessions/"+c.sessionID+"/move", body, &result); err != nil {
		return nil, fmt.Errorf("move %s%+d: %w", vehicle, offset, err)
	}
	return result.GameState, nil
}

func (c *Client) Reset() (*service.GameState, error) {
	var resp resetResponse
	if err := c.do(http.MethodPost, "/api/sessions/"+c.sessionID+"/reset", nil, &resp); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return resp.State, nil
}

func (c *Client) do(method, path string, body []byte, out any) error {
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(data))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
