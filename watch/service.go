package watch

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
)

// Match is the read-only surface a running simulation exposes to watchers.
type Match interface {
	Id() string
	FrameTopic() string
	EventTopic() string
	State() state.Snapshot
}

// Service serves live match state over HTTP and websocket. It only ever
// reads committed snapshots and subscribes to the simulation's pub/sub
// topics; it cannot touch the tick loop.
type Service struct {
	addr string
	log  *zap.Logger

	mutex   sync.RWMutex
	matches map[string]Match
}

func NewService(addr string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		addr:    addr,
		log:     log,
		matches: make(map[string]Match),
	}
}

func (s *Service) Register(m Match) {
	s.mutex.Lock()
	s.matches[m.Id()] = m
	s.mutex.Unlock()
}

func (s *Service) Unregister(id string) {
	s.mutex.Lock()
	delete(s.matches, id)
	s.mutex.Unlock()
}

func (s *Service) match(id string) Match {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.matches[id]
}

func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/match/{id:[a-zA-Z0-9\\-]+}", s.handleMatch).Methods("GET")
	router.HandleFunc("/match/{id:[a-zA-Z0-9\\-]+}/ws", s.handleWebsocket).Methods("GET")

	return router
}

func (s *Service) ListenAndServe() error {
	s.log.Info("watch service listening", zap.String("addr", s.addr))
	return http.ListenAndServe(s.addr, s.Router())
}

type matchSummary struct {
	Id        string  `json:"id"`
	Clock     float64 `json:"clock"`
	HomeGoals int     `json:"homegoals"`
	AwayGoals int     `json:"awaygoals"`
}

func (s *Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mutex.RLock()
	summaries := make([]matchSummary, 0, len(s.matches))
	for _, m := range s.matches {
		snap := m.State()
		summaries = append(summaries, matchSummary{
			Id:        m.Id(),
			Clock:     snap.Clock,
			HomeGoals: snap.HomeGoals,
			AwayGoals: snap.AwayGoals,
		})
	}
	s.mutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

func (s *Service) handleMatch(w http.ResponseWriter, r *http.Request) {
	m := s.match(mux.Vars(r)["id"])
	if m == nil {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m.State())
}
