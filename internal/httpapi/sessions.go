package httpapi

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jipsa-lab/cat-meal-advisor/internal/session"
)

type markKind int

const (
	markFavorite markKind = iota
	markDislike
)

func (s *Server) handleSessionCreate(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sess)
}

// handleMark toggles a favorite or dislike mark on one catalog item.
func (s *Server) handleMark(kind markKind, on bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "sid")
		itemID := chi.URLParam(r, "itemID")

		if _, ok := s.findItem(itemID); !ok {
			writeError(w, http.StatusNotFound, "item_not_found")
			return
		}

		var err error
		if kind == markFavorite {
			err = s.sessions.SetFavorite(sid, itemID, on)
		} else {
			err = s.sessions.SetDislike(sid, itemID, on)
		}
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "session_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// handleFavoritesExport streams the session's favorited catalog items as CSV.
func (s *Server) handleFavoritesExport(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")

	favs, _, err := s.sessions.Snapshot(sid)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="favorites.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "sku", "name", "brand", "type", "texture", "protein", "price_tier", "price_krw", "kcal_per_100g"})
	for _, it := range s.catalogSnapshot() {
		if !favs[it.ID] {
			continue
		}
		_ = cw.Write([]string{
			it.ID, it.SKU, it.Name, it.Brand, string(it.Type), string(it.Texture),
			it.Protein, string(it.PriceTier),
			formatOptInt(it.PriceKRW), formatOptFloat(it.KcalPer100g),
		})
	}
	cw.Flush()
}

func formatOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
