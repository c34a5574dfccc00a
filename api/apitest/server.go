// Package apitest runs an in-memory game server for client tests. It keeps
// just enough rules to drive the client through a game.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

type agent struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	operator    bool
	majority    bool
	minority    bool
}

type game struct {
	id       string
	status   string
	round    int
	phase    string
	agents   []*agent
	operator *agent
	majority []*agent
	minority []*agent
	argued   map[string]bool
	decision string
	feed     []map[string]any // most recent first
}

// Server is a fake game server backed by httptest.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	games    map[string]*game
	nextID   int
	failures map[string]failure
	hits     map[string]int
}

type failure struct {
	code   int
	detail string
}

// New starts a fake server. Callers must Close it.
func New() *Server {
	s := &Server{
		games:    make(map[string]*game),
		failures: make(map[string]failure),
		hits:     make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/demo/create", s.handleCreateDemo)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/state", s.handleState)
			r.Get("/feed", s.handleFeed)
			r.Get("/scoreboard", s.handleScoreboard)
			r.Post("/start", s.handleStart)
			r.Post("/advance", s.handleAdvance)
			r.Post("/add-filler", s.handleAddFiller)
			r.Post("/tick-filler", s.handleTickFiller)
		})
	})
	return r
}

// Fail makes every call to the named route (e.g. "start", "state") answer
// with code and a {"detail": detail} body until Recover is called.
func (s *Server) Fail(route string, code int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{code: code, detail: detail}
}

// Recover clears a failure set with Fail.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Hits returns how many requests the named route has received.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// AddGame seeds a game directly, bypassing demo creation.
func (s *Server) AddGame(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = newGame(id)
}

func newGame(id string) *game {
	return &game{id: id, status: "waiting_for_agents", argued: make(map[string]bool)}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

// enter counts the hit, applies injected failures and resolves the game.
// It returns with s.mu held when ok is true.
func (s *Server) enter(w http.ResponseWriter, r *http.Request, route string) (*game, bool) {
	s.mu.Lock()
	s.hits[route]++
	if f, ok := s.failures[route]; ok {
		s.mu.Unlock()
		writeDetail(w, f.code, f.detail)
		return nil, false
	}
	if route == "create-demo" {
		return nil, true
	}
	g, ok := s.games[chi.URLParam(r, "id")]
	if !ok {
		s.mu.Unlock()
		writeDetail(w, http.StatusNotFound, "Game not found")
		return nil, false
	}
	return g, true
}

func (s *Server) handleCreateDemo(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.enter(w, r, "create-demo"); !ok {
		return
	}
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("game-%d", s.nextID)
	g := newGame(id)
	g.event(map[string]any{"event_type": "game_created"})
	s.games[id] = g
	writeJSON(w, http.StatusOK, map[string]any{"game_id": id})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.enter(w, r, "state")
	if !ok {
		return
	}
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, g.snapshot())
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	g, ok := s.enter(w, r, "feed")
	if !ok {
		return
	}
	defer s.mu.Unlock()
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}
	items := g.feed
	if len(items) > limit {
		items = items[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{"game_id": g.id, "items": items})
}

func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	g, ok := s.enter(w, r, "scoreboard")
	if !ok {
		return
	}
	defer s.mu.Unlock()
	scores := []map[string]any{}
	coverage := []map[string]any{}
	for _, a := range g.agents {
		scores = append(scores, map[string]any{"agent_id": a.ID, "display_name": a.DisplayName, "score": 0})
		coverage = append(coverage, map[string]any{
			"agent_id":          a.ID,
			"display_name":      a.DisplayName,
			"has_been_operator": a.operator,
			"has_been_majority": a.majority,
			"has_been_minority": a.minority,
			"complete":          a.operator && a.majority && a.minority,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"game_id": g.id, "scores": scores, "coverage": coverage})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	g, ok := s.enter(w, r, "start")
	if !ok {
		return
	}
	defer s.mu.Unlock()
	if len(g.agents) < 3 {
		writeDetail(w, http.StatusBadRequest, "Need at least 3 agents to start")
		return
	}
	if g.status != "ready_to_start" {
		writeDetail(w, http.StatusBadRequest, "Game already started")
		return
	}
	g.status = "in_progress"
	g.startRound()
	g.event(map[string]any{"event_type": "game_started"})
	writeJSON(w, http.StatusOK, map[string]any{"status": g.status, "message": "Game started"})
}

var phaseOrder = []string{"phase_1", "phase_2", "phase_3", "awaiting_decision", "resolved"}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	g, ok := s.enter(w, r, "advance")
	if !ok {
		return
	}
	defer s.mu.Unlock()
	var body struct {
		Action string `json:"action"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if g.status != "in_progress" {
		writeDetail(w, http.StatusBadRequest, "Game is not in progress")
		return
	}
	switch body.Action {
	case "resolve_round":
		if g.phase != "awaiting_decision" {
			writeDetail(w, http.StatusBadRequest, "Round is not awaiting a decision")
			return
		}
		g.decision = "save_majority"
		g.phase = "resolved"
		g.event(map[string]any{"event_type": "round_resolved", "decision": g.decision})
	default:
		if g.phase == "resolved" {
			g.startRound()
		} else {
			for i, p := range phaseOrder {
				if p == g.phase && i+1 < len(phaseOrder) {
					g.phase = phaseOrder[i+1]
					break
				}
			}
			g.argued = make(map[string]bool)
		}
		g.event(map[string]any{"event_type": "phase_advanced", "phase": g.phase})
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": g.status, "current_phase": g.phase})
}

func (s *Server) handleAddFiller(w http.ResponseWriter, r *http.Request) {
	g, ok := s.enter(w, r, "add-filler")
	if !ok {
		return
	}
	defer s.mu.Unlock()
	var body struct {
		Count int `json:"count"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Count < 1 || body.Count > 5 {
		writeDetail(w, http.StatusUnprocessableEntity, "count must be between 1 and 5")
		return
	}
	if g.status != "waiting_for_agents" && g.status != "ready_to_start" {
		writeDetail(w, http.StatusBadRequest, "Can only add fillers before game starts")
		return
	}
	added := []map[string]any{}
	for i := 0; i < body.Count; i++ {
		n := len(g.agents) + 1
		a := &agent{ID: fmt.Sprintf("%s-agent-%d", g.id, n), DisplayName: fmt.Sprintf("Filler %d", n)}
		g.agents = append(g.agents, a)
		added = append(added, map[string]any{"agent_id": a.ID, "display_name": a.DisplayName})
		g.event(map[string]any{"event_type": "agent_registered", "display_name": a.DisplayName})
	}
	if len(g.agents) >= 3 {
		g.status = "ready_to_start"
	}
	writeJSON(w, http.StatusOK, map[string]any{"game_id": g.id, "added": added, "count": len(added)})
}

func (s *Server) handleTickFiller(w http.ResponseWriter, r *http.Request) {
	g, ok := s.enter(w, r, "tick-filler")
	if !ok {
		return
	}
	defer s.mu.Unlock()
	var action any
	if g.status == "in_progress" && g.phase != "awaiting_decision" && g.phase != "resolved" {
		for _, a := range append(append([]*agent{}, g.majority...), g.minority...) {
			if g.argued[a.ID] {
				continue
			}
			g.argued[a.ID] = true
			g.feed = append([]map[string]any{{
				"type":         "argument",
				"agent_id":     a.ID,
				"display_name": a.DisplayName,
				"phase":        g.phase,
				"text":         "Please save our side.",
			}}, g.feed...)
			action = map[string]any{"type": "argument", "agent_id": a.ID}
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"game_id": g.id, "action": action})
}

func (g *game) event(payload map[string]any) {
	g.feed = append([]map[string]any{{"type": "event", "payload": payload}}, g.feed...)
}

// startRound rotates roles: operator first, minority last, majority between.
func (g *game) startRound() {
	g.round++
	g.phase = "phase_1"
	g.decision = ""
	g.argued = make(map[string]bool)
	n := len(g.agents)
	rot := make([]*agent, n)
	for i := range g.agents {
		rot[i] = g.agents[(i+g.round-1)%n]
	}
	g.operator = rot[0]
	g.majority = rot[1 : n-1]
	g.minority = rot[n-1:]
	g.operator.operator = true
	for _, a := range g.majority {
		a.majority = true
	}
	for _, a := range g.minority {
		a.minority = true
	}
	g.event(map[string]any{"event_type": "round_started", "round_number": g.round})
}

func (g *game) snapshot() map[string]any {
	summary := func(list []*agent) []map[string]any {
		out := []map[string]any{}
		for _, a := range list {
			out = append(out, map[string]any{"id": a.ID, "display_name": a.DisplayName, "argued_this_phase": g.argued[a.ID]})
		}
		return out
	}
	var phase, decision, operator any
	if g.phase != "" {
		phase = g.phase
	}
	board := map[string]any{"selected_branch": nil, "resolution_state": nil, "survivors": []string{}, "lost": []string{}}
	if g.decision != "" {
		decision = g.decision
		ids := func(list []*agent) []string {
			out := []string{}
			for _, a := range list {
				out = append(out, a.ID)
			}
			return out
		}
		board["selected_branch"] = g.decision
		board["resolution_state"] = "resolved"
		board["survivors"] = ids(g.majority)
		board["lost"] = ids(g.minority)
	}
	if g.operator != nil {
		operator = map[string]any{"id": g.operator.ID, "display_name": g.operator.DisplayName}
	}
	return map[string]any{
		"game_id":              g.id,
		"status":               g.status,
		"current_round_number": g.round,
		"current_phase":        phase,
		"operator":             operator,
		"majority_agents":      summary(g.majority),
		"minority_agents":      summary(g.minority),
		"decision":             decision,
		"board":                board,
	}
}
