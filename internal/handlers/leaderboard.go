package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openhack/hackboard/internal/leaderboard"
	"github.com/openhack/hackboard/internal/services"
)

// handleGetLeaderboard returns the ranked leaderboard for a hackathon.
// Supports ?track=, ?min_judges= and ?limit= query parameters.
func (h *Handlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	opts := leaderboard.Options{
		TrackID: r.URL.Query().Get("track"),
	}
	if v := r.URL.Query().Get("min_judges"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, BadRequest("min_judges must be an integer"))
			return
		}
		opts.MinJudges = n
	}

	entries, err := h.Leaderboard.Get(r.Context(), chi.URLParam(r, "hackathonID"), opts)
	if err != nil {
		respondError(w, err)
		return
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, BadRequest("limit must be an integer"))
			return
		}
		entries = leaderboard.TopEntries(entries, n)
	}
	respondOK(w, entries)
}

// handleLeaderboardStats returns aggregate judging statistics
func (h *Handlers) handleLeaderboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Leaderboard.Stats(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

// handleExportLeaderboard returns the leaderboard as CSV
func (h *Handlers) handleExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	csv, err := h.Leaderboard.ExportCSV(r.Context(), chi.URLParam(r, "hackathonID"), r.URL.Query().Get("track"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.csv"`)
	w.Write([]byte(csv))
}

// handleRefreshLeaderboard recomputes the board and notifies subscribers
func (h *Handlers) handleRefreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Leaderboard.Refresh(r.Context(), chi.URLParam(r, "hackathonID"), r.URL.Query().Get("track"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, entries)
}

// handleSearchSubmissions performs semantic search over a hackathon's
// submissions. Supports ?q=, ?limit=, ?threshold= and ?track=.
func (h *Handlers) handleSearchSubmissions(w http.ResponseWriter, r *http.Request) {
	opts := services.SearchOptions{
		TrackID: r.URL.Query().Get("track"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, BadRequest("limit must be an integer"))
			return
		}
		opts.Limit = n
	}
	if v := r.URL.Query().Get("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, BadRequest("threshold must be a number"))
			return
		}
		opts.SimilarityThreshold = f
	}

	results, err := h.Search.SearchSubmissions(r.Context(), chi.URLParam(r, "hackathonID"), r.URL.Query().Get("q"), opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}
