package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/streletskiy/archimap-sub000/internal/domain"
	"github.com/streletskiy/archimap-sub000/internal/service/proposal"
	"github.com/streletskiy/archimap-sub000/internal/transport/middleware"
)

type proposalService interface {
	Submit(ctx context.Context, actor domain.Actor, input proposal.SubmitInput) (*domain.Proposal, error)
	ListForAuthor(ctx context.Context, actor domain.Actor, input proposal.ListInput) ([]proposal.View, error)
	ListAll(ctx context.Context, actor domain.Actor, input proposal.ListInput) ([]proposal.View, error)
	GetForAuthor(ctx context.Context, actor domain.Actor, id int64) (*proposal.View, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*proposal.Detail, error)
	Reject(ctx context.Context, actor domain.Actor, input proposal.RejectInput) (*domain.Proposal, error)
	AuthorStats(ctx context.Context, actor domain.Actor, author string) (*domain.AuthorStats, error)
	EntityView(ctx context.Context, actor domain.Actor, entity domain.EntityID) (*proposal.EntityView, error)
}

// ProposalHandler serves contributor and reviewer proposal endpoints.
type ProposalHandler struct {
	svc proposalService
	log *slog.Logger
}

// NewProposalHandler creates a ProposalHandler.
func NewProposalHandler(svc proposalService, logger *slog.Logger) *ProposalHandler {
	return &ProposalHandler{svc: svc, log: logger.With("handler", "proposal")}
}

type submitResponse struct {
	ProposalID int64  `json:"proposalId"`
	Status     string `json:"status"`
}

// Submit handles POST /api/proposals.
func (h *ProposalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeBody(r, &body); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	_, camel := body["yearBuilt"]
	_, snake := body[string(domain.FieldYearBuilt)]
	if camel && snake {
		handleError(w, r, h.log, domain.NewValidationError(string(domain.FieldYearBuilt),
			"given as both yearBuilt and year_built"))
		return
	}

	input := proposal.SubmitInput{Values: make(map[string]any, len(body))}
	for k, v := range body {
		if k == "entityId" {
			input.EntityID, _ = v.(string)
			continue
		}
		input.Values[fieldName(k)] = v
	}

	p, err := h.svc.Submit(r.Context(), middleware.ActorFromCtx(r), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{ProposalID: p.ID, Status: string(p.Status)})
}

// ListOwn handles GET /api/account/proposals.
func (h *ProposalHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	input, err := listInput(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	views, err := h.svc.ListForAuthor(r.Context(), middleware.ActorFromCtx(r), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toViews(views))
}

// GetOwn handles GET /api/account/proposals/{id}.
func (h *ProposalHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	view, err := h.svc.GetForAuthor(r.Context(), middleware.ActorFromCtx(r), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toView(*view))
}

// ListAll handles GET /api/admin/proposals.
func (h *ProposalHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	input, err := listInput(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	views, err := h.svc.ListAll(r.Context(), middleware.ActorFromCtx(r), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toViews(views))
}

// Get handles GET /api/admin/proposals/{id}.
func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	detail, err := h.svc.GetByID(r.Context(), middleware.ActorFromCtx(r), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetail(*detail))
}

type rejectRequest struct {
	Comment *string `json:"comment"`
}

// Reject handles POST /api/admin/proposals/{id}/reject.
func (h *ProposalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req rejectRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	p, err := h.svc.Reject(r.Context(), middleware.ActorFromCtx(r), proposal.RejectInput{
		ProposalID: id,
		Comment:    req.Comment,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProposal(*p))
}

// AuthorStats handles GET /api/admin/authors/{author}/stats.
func (h *ProposalHandler) AuthorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.AuthorStats(r.Context(), middleware.ActorFromCtx(r), r.PathValue("author"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toStats(*stats))
}

// EntityView handles GET /api/buildings/{kind}/{id}.
func (h *ProposalHandler) EntityView(w http.ResponseWriter, r *http.Request) {
	entity, err := domain.NewEntityID(r.PathValue("kind"), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	view, err := h.svc.EntityView(r.Context(), middleware.ActorFromCtx(r), entity)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntityView(*view))
}

// Fields handles GET /api/fields.
func (h *ProposalHandler) Fields(w http.ResponseWriter, r *http.Request) {
	specs := domain.FieldSpecs()
	out := make([]fieldResponse, len(specs))
	for i, s := range specs {
		out[i] = fieldResponse{Key: wireName(string(s.Field)), Label: s.Label, SourceHint: s.SourceHint}
	}
	writeJSON(w, http.StatusOK, out)
}

func toViews(views []proposal.View) []proposalResponse {
	out := make([]proposalResponse, len(views))
	for i, v := range views {
		out[i] = toView(v)
	}
	return out
}

func listInput(r *http.Request) (proposal.ListInput, error) {
	q := r.URL.Query()
	input := proposal.ListInput{
		Status: q.Get("status"),
		Author: q.Get("author"),
		Entity: q.Get("entity"),
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return proposal.ListInput{}, domain.NewValidationError("limit", "must be an integer")
		}
		input.Limit = n
	}
	return input, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

// decodeOptionalBody decodes a JSON body if one was sent.
func decodeOptionalBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}
