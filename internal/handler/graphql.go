package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	graphql "github.com/graph-gophers/graphql-go"
)

const maxRequestBytes = 1 << 20

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type GraphQLHandler struct {
	schema     *graphql.Schema
	playground http.Handler
}

// NewGraphQLHandler serves schema on POST. GET serves the playground when
// enablePlayground is set.
func NewGraphQLHandler(schema *graphql.Schema, enablePlayground bool) *GraphQLHandler {
	h := &GraphQLHandler{schema: schema}
	if enablePlayground {
		h.playground = playground.Handler("goalgraph", "/graphql")
	}
	return h
}

func (h *GraphQLHandler) Playground(w http.ResponseWriter, r *http.Request) {
	if h.playground == nil {
		http.NotFound(w, r)
		return
	}
	h.playground.ServeHTTP(w, r)
}

// Query executes a single GraphQL request. Only JSON bodies are accepted so
// that cross-site form posts cannot ride on the auth cookie.
func (h *GraphQLHandler) Query(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return
	}

	var req graphQLRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeJSONError(w, http.StatusBadRequest, "query is required")
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		slog.Error("failed to write graphql response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]any{{"message": message}},
	})
}
