package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/internal/service/merge"
	"github.com/streletskiy/archimap-sub000/internal/transport/middleware"
)

type mergeService interface {
	Merge(ctx context.Context, actor domain.Actor, input merge.MergeInput) (*merge.Result, error)
}

// MergeHandler serves the reviewer merge endpoint.
type MergeHandler struct {
	svc mergeService
	log *slog.Logger
}

// NewMergeHandler creates a MergeHandler.
func NewMergeHandler(svc mergeService, logger *slog.Logger) *MergeHandler {
	return &MergeHandler{svc: svc, log: logger.With("handler", "merge")}
}

type mergeRequest struct {
	Fields  []string       `json:"fields"`
	Values  map[string]any `json:"values"`
	Comment *string        `json:"comment"`
	Force   bool           `json:"force"`
}

// Merge handles POST /api/admin/proposals/{id}/merge.
func (h *MergeHandler) Merge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req mergeRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	input := merge.MergeInput{
		ProposalID: id,
		Comment:    req.Comment,
		Force:      req.Force,
	}
	for _, f := range req.Fields {
		input.Fields = append(input.Fields, fieldName(f))
	}
	if len(req.Values) > 0 {
		input.Values = make(map[string]any, len(req.Values))
		for k, v := range req.Values {
			input.Values[fieldName(k)] = v
		}
	}

	res, err := h.svc.Merge(r.Context(), middleware.ActorFromCtx(r), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toMerge(*res))
}
