// Package httpapi exposes the recommendation engine and catalog over HTTP.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jipsa-lab/cat-meal-advisor/internal/domain"
	"github.com/jipsa-lab/cat-meal-advisor/internal/logger"
	"github.com/jipsa-lab/cat-meal-advisor/internal/recommend"
	"github.com/jipsa-lab/cat-meal-advisor/internal/session"
	"github.com/jipsa-lab/cat-meal-advisor/internal/storage"
)

// Input bounds the API accepts for a profile.
const (
	minProfileWeightKg = 0.5
	maxProfileWeightKg = 20.0
	maxProfileAgeYears = 25.0
)

type Server struct {
	engine   *recommend.Engine
	store    *storage.SQLiteStore // optional; nil means memory-only
	sessions *session.Store
	log      logger.Logger

	topFood   int
	topTreats int

	mu      sync.RWMutex
	catalog []domain.CatalogItem
}

type Options struct {
	Engine    *recommend.Engine
	Catalog   []domain.CatalogItem
	Store     *storage.SQLiteStore
	Log       logger.Logger
	TopFood   int
	TopTreats int
}

func NewServer(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Server{
		engine:    opts.Engine,
		store:     opts.Store,
		sessions:  session.NewStore(),
		log:       log,
		topFood:   opts.TopFood,
		topTreats: opts.TopTreats,
		catalog:   opts.Catalog,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Post("/recommend", s.handleRecommend)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.handleCatalogList)
		r.Post("/", s.handleCatalogCreate)
		r.Get("/{id}", s.handleCatalogGet)
		r.Delete("/{id}", s.handleCatalogDelete)
		r.Get("/{id}/shop-links", s.handleShopLinks)
	})

	r.Post("/sessions", s.handleSessionCreate)
	r.Route("/sessions/{sid}", func(r chi.Router) {
		r.Get("/favorites.csv", s.handleFavoritesExport)
		r.Put("/favorites/{itemID}", s.handleMark(markFavorite, true))
		r.Delete("/favorites/{itemID}", s.handleMark(markFavorite, false))
		r.Put("/dislikes/{itemID}", s.handleMark(markDislike, true))
		r.Delete("/dislikes/{itemID}", s.handleMark(markDislike, false))
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type RecommendRequest struct {
	Profile   domain.PetProfile `json:"profile"`
	SessionID string            `json:"session_id,omitempty"`
	TopFood   int               `json:"top_food,omitempty"`
	TopTreats int               `json:"top_treats,omitempty"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if msg := validateProfile(req.Profile); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	opts := recommend.Options{TopFood: req.TopFood, TopTreats: req.TopTreats}
	if opts.TopFood <= 0 {
		opts.TopFood = s.topFood
	}
	if opts.TopTreats <= 0 {
		opts.TopTreats = s.topTreats
	}

	if req.SessionID != "" {
		favs, dislikes, err := s.sessions.Snapshot(req.SessionID)
		if err != nil {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		opts.Favorites = favs
		opts.Dislikes = dislikes
	}

	rec := s.engine.Recommend(req.Profile, s.catalogSnapshot(), opts)
	writeJSON(w, http.StatusOK, rec)
}

func validateProfile(p domain.PetProfile) string {
	if p.WeightKg < minProfileWeightKg || p.WeightKg > maxProfileWeightKg {
		return "weight_out_of_range"
	}
	if p.AgeYears < 0 || p.AgeYears > maxProfileAgeYears {
		return "age_out_of_range"
	}
	return ""
}

type CatalogListResponse struct {
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
	Total  int                  `json:"total"`
	Items  []domain.CatalogItem `json:"items"`
}

func (s *Server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 20, 0)
	q := r.URL.Query()

	if s.store != nil {
		minPrice, _ := strconv.Atoi(q.Get("min_price"))
		maxPrice, _ := strconv.Atoi(q.Get("max_price"))
		items, total, err := s.store.ListFiltered(
			limit, offset,
			q.Get("brand"), q.Get("type"), q.Get("texture"),
			minPrice, maxPrice,
			q.Get("sort"),
		)
		if err != nil {
			s.log.Error("catalog list failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		writeJSON(w, http.StatusOK, CatalogListResponse{Limit: limit, Offset: offset, Total: total, Items: items})
		return
	}

	all := s.catalogSnapshot()
	total := len(all)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	writeJSON(w, http.StatusOK, CatalogListResponse{Limit: limit, Offset: offset, Total: total, Items: all[offset:end]})
}

func (s *Server) handleCatalogGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if item, ok := s.findItem(id); ok {
		writeJSON(w, http.StatusOK, item)
		return
	}
	writeError(w, http.StatusNotFound, "not_found")
}

func (s *Server) handleCatalogCreate(w http.ResponseWriter, r *http.Request) {
	var item domain.CatalogItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if item.Name == "" || item.Brand == "" {
		writeError(w, http.StatusBadRequest, "name_and_brand_required")
		return
	}
	item.NormalizeEnums()
	if item.Type != domain.ItemTypeFood && item.Type != domain.ItemTypeTreat {
		writeError(w, http.StatusBadRequest, "invalid_item_type")
		return
	}
	if item.ID == "" {
		item.ID = domain.ItemKey(item)
	}

	if s.store != nil {
		if _, err := s.store.Create(item); err != nil {
			s.log.Error("catalog create failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "storage_error")
			return
		}
	}

	s.mu.Lock()
	s.catalog = append(s.catalog, item)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleCatalogDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	found := false
	for i, it := range s.catalog {
		if it.ID == id {
			s.catalog = append(s.catalog[:i], s.catalog[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if s.store != nil {
		deleted, err := s.store.Delete(id)
		if err != nil {
			s.log.Error("catalog delete failed", map[string]any{"err": err.Error()})
			writeError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		found = found || deleted
	}

	if !found {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleShopLinks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, ok := s.findItem(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, BuildShopLinks(item))
}

func (s *Server) catalogSnapshot() []domain.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CatalogItem, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *Server) findItem(id string) (domain.CatalogItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.catalog {
		if it.ID == id {
			return it, true
		}
	}
	return domain.CatalogItem{}, false
}

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}
	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
