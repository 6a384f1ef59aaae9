package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ovozbot/internal/core/ports"
)

type StatsHandler struct {
	polls  ports.PollService
	logger *zap.Logger
}

func NewStatsHandler(polls ports.PollService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{polls: polls, logger: logger}
}

type pollStatsResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
	Votes  int    `json:"votes"`
}

type statsResponse struct {
	TotalUsers  int                 `json:"total_users"`
	TotalPolls  int                 `json:"total_polls"`
	ActivePolls int                 `json:"active_polls"`
	ClosedPolls int                 `json:"closed_polls"`
	TotalVotes  int                 `json:"total_votes"`
	Polls       []pollStatsResponse `json:"polls"`
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.polls.Overview(r.Context())
	if err != nil {
		h.logger.Error("overview failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := statsResponse{
		TotalUsers:  overview.TotalUsers,
		TotalPolls:  overview.TotalPolls,
		ActivePolls: overview.ActivePolls,
		ClosedPolls: overview.ClosedPolls,
		TotalVotes:  overview.TotalVotes,
		Polls:       make([]pollStatsResponse, 0, len(overview.Polls)),
	}
	for _, p := range overview.Polls {
		resp.Polls = append(resp.Polls, pollStatsResponse{
			ID:     p.ID,
			Title:  p.Title,
			Active: p.Active,
			Votes:  p.Votes,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode stats response", zap.Error(err))
	}
}
