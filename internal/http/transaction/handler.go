package transaction

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/settle/internal/export"
	"github.com/MrJamesThe3rd/settle/internal/http/response"
	"github.com/MrJamesThe3rd/settle/internal/importer"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc       *transaction.Service
	importSvc *importer.Service
	exportSvc *export.Service
	validator *validation.Validator
}

func NewHandler(
	svc *transaction.Service,
	importSvc *importer.Service,
	exportSvc *export.Service,
	v *validation.Validator,
) *Handler {
	return &Handler{
		svc:       svc,
		importSvc: importSvc,
		exportSvc: exportSvc,
		validator: v,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(response.RequireJSON)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})

	r.Get("/list", h.list)
	r.Get("/export", h.export)
	r.Post("/import", h.importCSV)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, err := validation.Decode(r.Body)
	if err != nil {
		response.Error(w, response.BadRequest("Invalid JSON body"))
		return
	}

	valid, err := h.validator.Validate(payload, transaction.CreateSchema)
	if err != nil {
		response.Error(w, err)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParamsFrom(valid))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusCreated, "", toRecord(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusOK, "", toDetailList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusOK, "", toDetail(tx))
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

	valid, err := h.validator.Validate(payload, transaction.UpdateSchema)
	if err != nil {
		response.Error(w, err)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, transaction.UpdateParamsFrom(valid))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusOK, "", toRecord(tx))
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

	response.OK(w, http.StatusOK, "Transaction deleted successfully", nil)
}

// importCSV accepts a settlement file and stores every row under one
// transaction type. A single invalid row rejects the whole file.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, response.BadRequest("failed to parse form: "+err.Error()))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.Error(w, response.BadRequest("file field is required"))
		return
	}
	defer file.Close()

	params, err := h.importSvc.Transactions(
		importer.Format(r.FormValue("format")), file, r.FormValue("transaction_type"))
	if err != nil {
		if importer.IsInputError(err) {
			response.Error(w, response.BadRequest(err.Error()))
			return
		}

		response.Error(w, err)

		return
	}

	txs, err := h.svc.ImportBatch(r.Context(), params[0].TransactionTypeID, params)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, http.StatusCreated, "", toImport(txs))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))

	if _, err := h.exportSvc.Export(r.Context(), w); err != nil {
		w.Header().Del("Content-Disposition")
		response.Error(w, err)
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, response.ErrInvalidID
	}

	return id, nil
}
