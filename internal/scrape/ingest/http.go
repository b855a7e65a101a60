// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ingest provides the HTTP interface for the acquisition pipeline.

It exposes the two mutative operations of the platform: requesting a new
ingestion and backfilling chapter bodies. Both endpoints do their scraping
inline, so responses can take as long as the upstream site does.
*/
package ingest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hondana/internal/platform/request"
	"github.com/taibuivan/hondana/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the acquisition pipeline.
type Handler struct {
	service *Service
}

// NewHandler constructs a new ingestion [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches acquisition endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Post("/novels/ingest", handler.Ingest)
	api.Post("/novels/{id}/backfill", handler.Backfill)
}

// # Metadata Ingestion

// ingestRequest defines the inbound JSON schema for ingestion requests.
type ingestRequest struct {
	SourceURL string `json:"source_url"`
}

/*
POST /api/v1/novels/ingest.

Description: Scrapes a listing page and stores the novel with its chapter
roster. Re-posting an already-ingested URL returns the existing novel.

Request:
  - body: ingestRequest

Response:
  - 200: Result: Existing novel (created=false)
  - 201: Result: Newly ingested novel (created=true)
  - 400: 400: ErrInvalidJSON/Validation: Invalid payload
  - 409: 409: Conflict: Ingestion already in progress
  - 422: 422: Unprocessable: No scraper supports this site
  - 503: 503: Unavailable: Source site unreachable
*/
func (handler *Handler) Ingest(writer http.ResponseWriter, request *http.Request) {
	var input ingestRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.IngestMetadata(request.Context(), input.SourceURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.Created {
		respond.Created(writer, result)
		return
	}
	respond.OK(writer, result)
}

// # Content Backfill

// backfillRequest defines the inbound JSON schema for backfill requests.
// Both bounds are optional: an omitted start_chapter means "from the first
// chapter", an omitted end_chapter means "through the last chapter".
type backfillRequest struct {
	StartChapter int `json:"start_chapter"`
	EndChapter   int `json:"end_chapter"`
}

// backfillResponse reports how many chapter bodies were stored.
type backfillResponse struct {
	UpdatedCount int `json:"updated_count"`
}

/*
POST /api/v1/novels/{id}/backfill.

Description: Scrapes chapter bodies for an inclusive range of a novel's
roster. Already-filled and unreachable chapters are skipped.

Request:
  - id: int64 (Novel ID)
  - body: backfillRequest

Response:
  - 200: backfillResponse: Count of chapters filled
  - 400: 400: Validation: Invalid range or identifier
  - 404: 404: ErrNotFound: Unknown novel
  - 422: 422: Unprocessable: Roster empty or site unsupported
*/
func (handler *Handler) Backfill(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input backfillRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.BackfillContent(request.Context(), novelID, input.StartChapter, input.EndChapter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, backfillResponse{UpdatedCount: updated})
}
