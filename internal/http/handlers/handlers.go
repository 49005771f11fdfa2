package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/domain/standings"
	"github.com/preston-bernstein/hockey-pool-service/internal/logging"
	"github.com/preston-bernstein/hockey-pool-service/internal/poller"
	"github.com/preston-bernstein/hockey-pool-service/internal/render"
	"github.com/preston-bernstein/hockey-pool-service/internal/timeutil"
)

const msgNotLoaded = "schedule not loaded yet"

// ViewSource exposes the most recently rendered view.
type ViewSource interface {
	View() (render.View, bool)
}

// Refresher is the slice of the poller the HTTP surface drives.
type Refresher interface {
	Status() poller.Status
	Trigger() bool
}

// Handler serves the rendered schedule and standings plus poller controls.
type Handler struct {
	views     ViewSource
	refresher Refresher
	logger    *slog.Logger
}

// ScheduleResponse is the payload for GET /schedule.
type ScheduleResponse struct {
	Games       []domaingames.Game `json:"games"`
	Count       int                `json:"count"`
	LastUpdated string             `json:"lastUpdated"`
}

// StandingsResponse is the payload for GET /standings.
type StandingsResponse struct {
	Players     []standings.PlayerTotal `json:"players"`
	Teams       map[string]int          `json:"teams"`
	LastUpdated string                  `json:"lastUpdated"`
}

// RefreshResponse reports whether a manual refresh was queued.
type RefreshResponse struct {
	Queued bool `json:"queued"`
}

// NewHandler constructs a Handler. refresher may be nil when no poller runs.
func NewHandler(views ViewSource, refresher Refresher, logger *slog.Logger) *Handler {
	return &Handler{
		views:     views,
		refresher: refresher,
		logger:    logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.refresher == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.refresher.Status()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Schedule returns the latest batch, optionally filtered by ?date=YYYY-MM-DD
// (upstream calendar day) and ?status=scheduled|inprogress|finished.
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, ok := h.view()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, msgNotLoaded, h.logger)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date != "" {
		if _, err := timeutil.ParseDate(date); err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
			return
		}
	}
	status := domaingames.GameStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	switch status {
	case "", domaingames.StatusScheduled, domaingames.StatusInProgress, domaingames.StatusFinished:
	default:
		writeError(w, r, nethttp.StatusBadRequest, "invalid status (expected scheduled, inprogress or finished)", h.logger)
		return
	}

	games := filterGames(view.Games, date, status)
	logging.Info(loggerFromContext(r, h.logger), "served schedule", logging.FieldCount, len(games), logging.FieldDate, date)
	writeJSON(w, nethttp.StatusOK, ScheduleResponse{
		Games:       games,
		Count:       len(games),
		LastUpdated: view.LastUpdated,
	}, h.logger)
}

// Standings returns the per-player totals and per-team goals.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, ok := h.view()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, msgNotLoaded, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, StandingsResponse{
		Players:     view.Standings.Players,
		Teams:       view.Standings.Teams,
		LastUpdated: view.LastUpdated,
	}, h.logger)
}

// View returns the full payload handed to renderers.
func (h *Handler) View(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, ok := h.view()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, msgNotLoaded, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}

// Status reports the refresh loop state.
func (h *Handler) Status(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.refresher == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "poller not running", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.refresher.Status(), h.logger)
}

// Refresh queues an immediate cycle, resuming a stopped scheduler.
func (h *Handler) Refresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.refresher == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "poller not running", h.logger)
		return
	}
	queued := h.refresher.Trigger()
	logging.Info(loggerFromContext(r, h.logger), "manual refresh requested", "queued", queued)
	writeJSON(w, nethttp.StatusAccepted, RefreshResponse{Queued: queued}, h.logger)
}

func (h *Handler) view() (render.View, bool) {
	if h.views == nil {
		return render.View{}, false
	}
	return h.views.View()
}

func filterGames(games []domaingames.Game, date string, status domaingames.GameStatus) []domaingames.Game {
	if date == "" && status == "" {
		if games == nil {
			return []domaingames.Game{}
		}
		return games
	}
	out := make([]domaingames.Game, 0, len(games))
	for _, g := range games {
		if date != "" && g.Day() != date {
			continue
		}
		if status != "" && g.Status != status {
			continue
		}
		out = append(out, g)
	}
	return out
}
