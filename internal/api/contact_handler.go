package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/contacts-api/internal/api/shared"
	"github.com/phrazzld/contacts-api/internal/platform/logger"
	"github.com/phrazzld/contacts-api/internal/service"
)

// ContactInserter creates contacts.
type ContactInserter interface {
	Execute(ctx context.Context, req service.InsertContactRequest) (*service.ContactResponse, error)
}

// ContactUpdater replaces the fields of an existing contact.
type ContactUpdater interface {
	Execute(ctx context.Context, req service.UpdateContactRequest) (*service.ContactResponse, error)
}

// ContactDeleter removes contacts.
type ContactDeleter interface {
	Execute(ctx context.Context, id int64) error
}

// ContactReader answers contact queries.
type ContactReader interface {
	Execute(ctx context.Context, ddd string) ([]*service.ContactResponse, error)
	GetByID(ctx context.Context, id int64) (*service.ContactResponse, error)
	GetAll(ctx context.Context) ([]*service.ContactResponse, error)
}

// ContactHandler handles the /api/contacts endpoints.
type ContactHandler struct {
	inserter ContactInserter
	updater  ContactUpdater
	deleter  ContactDeleter
	reader   ContactReader
	logger   *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(
	inserter ContactInserter,
	updater ContactUpdater,
	deleter ContactDeleter,
	reader ContactReader,
	log *slog.Logger,
) (*ContactHandler, error) {
	switch {
	case inserter == nil:
		return nil, fmt.Errorf("%w: inserter", service.ErrMissingDependency)
	case updater == nil:
		return nil, fmt.Errorf("%w: updater", service.ErrMissingDependency)
	case deleter == nil:
		return nil, fmt.Errorf("%w: deleter", service.ErrMissingDependency)
	case reader == nil:
		return nil, fmt.Errorf("%w: reader", service.ErrMissingDependency)
	}
	if log == nil {
		log = slog.Default()
	}

	return &ContactHandler{
		inserter: inserter,
		updater:  updater,
		deleter:  deleter,
		reader:   reader,
		logger:   log.With(slog.String("component", "contact_handler")),
	}, nil
}

// CreateContact handles POST /api/contacts requests.
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	contact, err := h.inserter.Execute(r.Context(), service.InsertContactRequest{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("contact created",
		slog.Int64("contact_id", contact.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, contact)
}

// ListContacts handles GET /api/contacts requests.
// When the ddd query parameter is present only contacts in that area code are returned.
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		contacts []*service.ContactResponse
		err      error
	)
	if query.Has("ddd") {
		q := ListContactsQuery{DDD: query.Get("ddd")}
		if verr := shared.ValidateRequest(q); verr != nil {
			HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrInvalidDDD, verr), "")
			return
		}
		contacts, err = h.reader.Execute(r.Context(), q.DDD)
	} else {
		contacts, err = h.reader.GetAll(r.Context())
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contacts)
}

// GetContact handles GET /api/contacts/{id} requests.
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	contact, err := h.reader.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contact)
}

// UpdateContact handles PUT /api/contacts/{id} requests.
func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req ContactRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	contact, err := h.updater.Execute(r.Context(), service.UpdateContactRequest{
		ID:          id,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("contact updated",
		slog.Int64("contact_id", contact.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, contact)
}

// DeleteContact handles DELETE /api/contacts/{id} requests.
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleter.Execute(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("contact deleted",
		slog.Int64("contact_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// pathID reads the {id} parameter, writing a 400 response when it is invalid.
func (h *ContactHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := getPathID(r, contactIDParam)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Warn("invalid contact id",
			slog.String("value", chi.URLParam(r, contactIDParam)))
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return id, true
}

// Routes registers the contact endpoints on r, relative to its mount point.
func (h *ContactHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateContact)
	r.Get("/", h.ListContacts)
	r.Get("/{id}", h.GetContact)
	r.Put("/{id}", h.UpdateContact)
	r.Delete("/{id}", h.DeleteContact)
}
