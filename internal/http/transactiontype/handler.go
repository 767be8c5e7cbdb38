package transactiontype

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/http/response"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

type Handler struct {
	svc       *transactiontype.Service
	validator *validation.Validator
}

func NewHandler(svc *transactiontype.Service, v *validation.Validator) *Handler {
	return &Handler{svc: svc, validator: v}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(response.RequireJSON)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})

	r.Get("/list", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type typeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type1     *string   `json:"type1"`
	Type2     *string   `json:"type2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// optionResponse is the list shape used to populate type pickers.
type optionResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Bank string    `json:"bank"`
}

func toResponse(t *transactiontype.TransactionType) typeResponse {
	resp := typeResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	if t.Type1 != "" {
		resp.Type1 = new(t.Type1)
	}

	if t.Type2 != "" {
		resp.Type2 = new(t.Type2)
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, err := validation.Decode(r.Body)
	if err != nil {
		response.Error(w, response.BadRequest("Invalid JSON body"))
		return
	}

	valid, err := h.validator.Validate(payload, transactiontype.CreateSchema)
	if err != nil {
		response.Error(w, err)
		return
	}

	t, err := h.svc.Create(r.Context(), transactiontype.CreateParams{
		Name:  valid.String("name"),
		Type1: valid.String("type1"),
		Type2: valid.String("type2"),
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusCreated, "", toResponse(t))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	options := make([]optionResponse, len(types))
	for i, t := range types {
		options[i] = optionResponse{ID: t.ID, Name: t.DisplayName(), Bank: t.Name}
	}

	response.OK(w, http.StatusOK, "", options)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusOK, "", toResponse(t))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	payload, err := validation.Decode(r.Body)
	if err != nil {
		response.Error(w, response.BadRequest("Invalid JSON body"))
		return
	}

	valid, err := h.validator.Validate(payload, transactiontype.UpdateSchema)
	if err != nil {
		response.Error(w, err)
		return
	}

	t, err := h.svc.Update(r.Context(), id, transactiontype.UpdateParams{
		Name:  valid.StringPtr("name"),
		Type1: valid.StringPtr("type1"),
		Type2: valid.StringPtr("type2"),
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusOK, "", toResponse(t))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusOK, "Transaction type deleted successfully", nil)
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, response.ErrInvalidID
	}

	return id, nil
}
