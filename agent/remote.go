package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/utils"
)

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that asks an agent server at baseURL for its moves.
func NewRemoteAgent(baseURL string, client *http.Client) Agent {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &remoteAgent{
		url:    strings.TrimSuffix(baseURL, "/") + "/findmove",
		client: client,
	}
}

// FindMove posts the board to the server. Transport failures and moves outside
// moves are unrecoverable for the game in progress and panic.
func (a *remoteAgent) FindMove(board game.Board, moves []int) (int, metrics.SearchMetric) {
	start := time.Now()
	body, err := json.Marshal(findMoveRequest{Board: string(board.Key())})
	if err != nil {
		panic(err)
	}

	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(body))
	if err != nil {
		panic(fmt.Sprintf("failed to reach agent server: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		panic(fmt.Sprintf("agent server returned status %d: %s", resp.StatusCode, out))
	}

	var response findMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		panic(fmt.Sprintf("failed to decode move: %v", err))
	}

	if utils.FindIndex(moves, response.Move) == -1 {
		panic(fmt.Sprintf("agent server returned illegal move %d", response.Move))
	}
	return response.Move, metrics.SearchMetric{Duration: time.Since(start)}
}

func (a *remoteAgent) Name() string {
	return "remote"
}
