package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

// Handler serves GraphQL over HTTP POST. It is modelled on relay.Handler and
// additionally reports per-request side effects under extensions.sideEffects.
type Handler struct {
	Schema *graphql.Schema

	log *zap.Logger
}

func NewHandler(r *Resolver) *Handler {
	return &Handler{Schema: NewSchema(r), log: r.log}
}

// maxRequestBytes caps the size of a POST /graphql body.
const maxRequestBytes = 1 << 20

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type requestError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var params graphqlRequest
	limited := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(limited).Decode(&params); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeRequestError(w, http.StatusRequestEntityTooLarge, "request body exceeds 1 MiB")
			return
		}
		writeRequestError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	ctx, rec := withSideEffectRecorder(r.Context())
	resp := h.Schema.Exec(ctx, params.Query, params.OperationName, params.Variables)
	if effects := rec.snapshot(); effects != nil {
		if resp.Extensions == nil {
			resp.Extensions = map[string]interface{}{}
		}
		resp.Extensions["sideEffects"] = effects
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.log.Error("encode graphql response", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func writeRequestError(w http.ResponseWriter, status int, message string) {
	var body requestError
	body.Errors = append(body.Errors, struct {
		Message string `json:"message"`
	}{Message: message})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
