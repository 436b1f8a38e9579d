// Copyright 2025 arXade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/arxade/arxade/ai"
	"github.com/arxade/arxade/core"
	"github.com/arxade/arxade/search"
	"github.com/arxade/arxade/storage"
)

const apiVersion = "1.0.0"

// Server bundles the services the HTTP handlers depend on.
type Server struct {
	engine    *search.Engine
	generator ai.Generator
	index     storage.PaperIndex
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewServer creates the handler set. The index is pinged by the health
// endpoint; searches go through the engine.
func NewServer(engine *search.Engine, generator ai.Generator, index storage.PaperIndex, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:    engine,
		generator: generator,
		index:     index,
		validate:  validator.New(),
		logger:    logger,
	}
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

// SummaryRequest is the body of POST /gemini-summary.
type SummaryRequest struct {
	Query  string            `json:"query" validate:"required,min=1,max=500"`
	Papers []ai.SummaryPaper `json:"papers" validate:"omitempty,dive"`
}

// DeepResearchRequest is the body of POST /deep-research.
type DeepResearchRequest struct {
	Query        string `json:"query" validate:"required,min=1,max=500"`
	Context      string `json:"context"`
	Instructions string `json:"instructions"`
}

// Root handles GET / with basic API information.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to arXade API",
		"service": "arXiv Paper Discovery Service",
		"version": apiVersion,
	})
}

// Health handles GET /health. It reports unhealthy when the vector index
// cannot be reached.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.index.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		_ = WriteServiceUnavailable(w, "Service unavailable")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		"version":   apiVersion,
	})
}

// Search handles POST /search: semantic paper retrieval.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = WriteBadRequest(w, "Invalid JSON request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		_ = WriteBadRequest(w, fmt.Sprintf("Invalid search request: %s", err))
		return
	}

	results, err := s.engine.Search(r.Context(), core.SearchQuery{
		Query: req.Query,
		Limit: req.Limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, search.ErrIndexUnavailable):
			s.logger.Error("search index unavailable", slog.String("error", err.Error()))
			_ = WriteServiceUnavailable(w, "Database temporarily unavailable. Please try again shortly.")
		case errors.Is(err, core.ErrInvalidQuery):
			_ = WriteBadRequest(w, err.Error())
		case errors.Is(err, search.ErrQueryEmbedding):
			s.logger.Error("query embedding failed", slog.String("error", err.Error()))
			_ = WriteInternalServerError(w, "Failed to process search query. Please try again.")
		default:
			s.logger.Error("search failed", slog.String("error", err.Error()))
			_ = WriteInternalServerError(w, "An unexpected error occurred. Please try again later.")
		}
		return
	}

	_ = WriteJSON(w, http.StatusOK, results)
}

// Summary handles POST /gemini-summary. Generation failures degrade to a
// canned summary with the error attached rather than an error status, so
// the paper results a client already has stay usable.
func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = WriteBadRequest(w, "Invalid JSON request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		_ = WriteBadRequest(w, fmt.Sprintf("Invalid summary request: %s", err))
		return
	}

	s.logger.Info("summary generation request", slog.String("query", req.Query))
	start := time.Now()

	summary, err := s.generator.Summarize(r.Context(), req.Query, req.Papers)
	if err != nil {
		s.logger.Error("summary generation failed",
			slog.String("query", req.Query),
			slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
			slog.String("error", err.Error()))
		_ = WriteJSON(w, http.StatusOK, map[string]string{
			"summary": fmt.Sprintf("We couldn't generate a summary for '%s' at this time. Please try again later.", req.Query),
			"error":   err.Error(),
		})
		return
	}

	s.logger.Info("summary generated",
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	_ = WriteJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// DeepResearch handles POST /deep-research: long-form analysis generation.
func (s *Server) DeepResearch(w http.ResponseWriter, r *http.Request) {
	var req DeepResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = WriteBadRequest(w, "Invalid JSON request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		_ = WriteBadRequest(w, fmt.Sprintf("Invalid deep research request: %s", err))
		return
	}

	s.logger.Info("deep research request", slog.String("query", req.Query))
	start := time.Now()

	analysis, err := s.generator.Analyze(r.Context(), req.Query, req.Context, req.Instructions)
	if err != nil {
		s.logger.Error("deep research generation failed",
			slog.String("query", req.Query),
			slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
			slog.String("error", err.Error()))
		_ = WriteInternalServerError(w, "Failed to generate analysis")
		return
	}

	s.logger.Info("deep research completed",
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)))
	_ = WriteJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}
