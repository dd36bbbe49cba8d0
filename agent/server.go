package agent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

type findMoveRequest struct {
	Board string `json:"board"`
}

type findMoveResponse struct {
	Move   int    `json:"move"`
	Player string `json:"player"`
	Agent  string `json:"agent"`
}

// Server answers best move queries for a single agent over HTTP.
// Agents are not safe for concurrent use, so requests are served one at a time.
type Server struct {
	agent Agent
	rules *game.Rules
	mu    sync.Mutex
	mux   *http.ServeMux
}

func NewServer(a Agent, rules *game.Rules) *Server {
	if rules == nil {
		rules = game.NewStandardRules()
	}
	s := &Server{agent: a, rules: rules}

	// Create a local mux rather than using the global DefaultServeMux
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("POST /findmove", s.handleFindMove)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// StartAgentServer serves a on addr until the listener fails.
func StartAgentServer(addr string, a Agent, rules *game.Rules) error {
	log.Info().Str("addr", addr).Str("agent", a.Name()).Msg("starting agent server")
	return http.ListenAndServe(addr, NewServer(a, rules))
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload findMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	board, err := s.parseBoard(payload.Board)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	player := board.ToMove()
	if !CanPlay(s.agent, player) {
		http.Error(w, fmt.Sprintf("bad request: %s agent does not play %s", s.agent.Name(), player), http.StatusBadRequest)
		return
	}

	move, searchMetric := s.findMove(board)

	log.Debug().
		Str("board", payload.Board).
		Int("move", move).
		Int("nodes", searchMetric.Nodes).
		Bool("cache_hit", searchMetric.CacheHit).
		Msg("found move")

	w.Header().Set("Content-Type", "application/json")
	response := findMoveResponse{Move: move, Player: player.String(), Agent: s.agent.Name()}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) findMove(board game.Board) (int, metrics.SearchMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent.FindMove(board, board.LegalActions())
}

// parseBoard accepts only boards reachable by alternating play with a move left to make.
func (s *Server) parseBoard(raw string) (game.Board, error) {
	board, err := game.ParseBoard(raw)
	if err != nil {
		return nil, err
	}
	if len(board) != s.rules.Cells {
		return nil, fmt.Errorf("board has %d cells, want %d", len(board), s.rules.Cells)
	}
	if !board.Reachable() {
		return nil, fmt.Errorf("board %q is unreachable", raw)
	}
	if s.rules.Terminal(board) {
		return nil, fmt.Errorf("board %q is terminal", raw)
	}
	return board, nil
}
