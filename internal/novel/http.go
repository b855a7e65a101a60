// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package novel provides the HTTP interface for browsing the shelf.

It exposes the read-side endpoints: the shelf listing, single-novel lookup
by slug, a novel's chapter roster, and the chapter reader.

# Routing Strategy

  - Public (v1): All browsing endpoints are accessible to every visitor.
    Mutations happen through the ingestion surface, not here.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package novel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hondana/internal/platform/request"
	"github.com/taibuivan/hondana/internal/platform/respond"
	"github.com/taibuivan/hondana/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for shelf browsing.
type Handler struct {
	service *Service
}

// NewHandler constructs a new novel [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches browsing endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/novels", handler.ListNovels)
	api.Get("/novels/{slug}", handler.GetNovel)
	api.Get("/novels/{slug}/chapters", handler.ListChapters)
	api.Get("/novels/{slug}/chapters/{number}", handler.ReadChapter)
}

// # Shelf Browsing

/*
GET /api/v1/novels.

Description: Returns a paginated shelf listing ordered by recent activity.

Request:
  - page: int
  - limit: int

Response:
  - 200: []Novel: Paginated list with metadata block
*/
func (handler *Handler) ListNovels(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	novels, total, err := handler.service.ListNovels(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, novels, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/novels/{slug}.

Description: Returns one novel's listing metadata.

Request:
  - slug: string (URL-safe identifier)

Response:
  - 200: Novel: The novel metadata
  - 404: 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) GetNovel(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	found, err := handler.service.GetNovel(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// # Roster & Reading

/*
GET /api/v1/novels/{slug}/chapters.

Description: Returns the full chapter roster for a novel. Bodies are
omitted; has_content signals which chapters are readable.

Request:
  - slug: string (URL-safe identifier)

Response:
  - 200: []Chapter: Ordered roster metadata
  - 404: 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	chapters, err := handler.service.ListChapters(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapters)
}

/*
GET /api/v1/novels/{slug}/chapters/{number}.

Description: Returns one chapter body plus previous/next chapter numbers
for reader navigation.

Request:
  - slug: string (URL-safe identifier)
  - number: int (1-based chapter number)

Response:
  - 200: ReaderView: Chapter with navigation
  - 400: 400: Validation: Non-numeric chapter number
  - 404: 404: ErrNotFound: Unknown slug or chapter number
*/
func (handler *Handler) ReadChapter(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	number, err := requestutil.IntParam(request, "number")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetReader(request.Context(), slug, number)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}
