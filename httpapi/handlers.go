package httpapi

import (
	"encoding/json"
	"net/http"
)

// kvBody is the wire shape for both the GET response and the POST request
// body: {"key":"...","value":"..."}.
type kvBody struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// handleGet implements GET /cache/{key}: 200 with the JSON body on a hit,
// 404 "No such key!" on a miss. Get is a mutating core operation (it
// touches the entry and can trigger ghost revival and a learner update),
// so each request maps to exactly one core call — coalescing concurrent
// requests for the same key would silently collapse those side effects
// for every request but one.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	s.logAccess(r.Method, key)

	val, ok := s.core.Get(key)
	if !ok {
		http.Error(w, "No such key!", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(kvBody{Key: key, Value: val})
}

// handleInsert implements POST /cache: 200 empty on success, 400 on a
// malformed body.
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	var body kvBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Key == "" {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	s.logAccess(r.Method, body.Key)

	s.core.Insert(body.Key, body.Value)
	w.WriteHeader(http.StatusOK)
}
