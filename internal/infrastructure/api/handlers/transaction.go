package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/banking/transaction-service/internal/errors"
	http2 "github.com/banking/transaction-service/internal/infrastructure/api/http"
	"github.com/banking/transaction-service/internal/usecases/dtos"
	"github.com/banking/transaction-service/internal/usecases/interactor"
	"github.com/banking/transaction-service/pkg/log"
)

const (
	defaultPage = 0
	defaultSize = 10
)

type TransactionHandler struct {
	interactor *interactor.TransactionInteractor
	logger     *zerolog.Logger
}

func NewTransactionHandler(interactor *interactor.TransactionInteractor) *TransactionHandler {
	logger := log.GetLogger()
	return &TransactionHandler{interactor: interactor, logger: &logger}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto dtos.TransactionCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(errors.ErrInvalidRequestBody))
		return
	}

	if errs := dto.Validate(); len(errs) > 0 {
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(dtos.ValidationMessage(errs)))
		return
	}

	response, err := h.interactor.CreateTransaction(r.Context(), &dto)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedCreateTransaction)
		errors.HandleHTTPError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (h *TransactionHandler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, http2.TransactionIDParam))
	if err != nil {
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(errors.ErrInvalidTransactionID))
		return
	}

	response, err := h.interactor.GetTransactionByID(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedGetTransaction)
		errors.HandleHTTPError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *TransactionHandler) GetAllTransactions(w http.ResponseWriter, r *http.Request) {
	responses, err := h.interactor.GetAllTransactions(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedGetTransaction)
		errors.HandleHTTPError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, responses)
}

func (h *TransactionHandler) GetTransactionsPaginated(w http.ResponseWriter, r *http.Request) {
	page, size, errs := parsePaging(r)
	if len(errs) > 0 {
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(dtos.ValidationMessage(errs)))
		return
	}

	response, err := h.interactor.GetTransactionsPaginated(r.Context(), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedGetTransaction)
		errors.HandleHTTPError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, http2.TransactionIDParam))
	if err != nil {
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(errors.ErrInvalidTransactionID))
		return
	}

	var dto dtos.TransactionUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDecodeRequestBody)
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(errors.ErrInvalidRequestBody))
		return
	}

	if errs := dto.Validate(); len(errs) > 0 {
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(dtos.ValidationMessage(errs)))
		return
	}

	response, err := h.interactor.UpdateTransaction(r.Context(), id, &dto)
	if err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedUpdateTransaction)
		errors.HandleHTTPError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, http2.TransactionIDParam))
	if err != nil {
		errors.HandleHTTPError(w, r, errors.NewBadRequestError(errors.ErrInvalidTransactionID))
		return
	}

	if err := h.interactor.DeleteTransaction(r.Context(), id); err != nil {
		h.logger.Error().Err(err).Msg(errors.ErrFailedDeleteTransaction)
		errors.HandleHTTPError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePaging(r *http.Request) (page, size int, errs map[string]string) {
	errs = make(map[string]string)
	page, size = defaultPage, defaultSize

	if raw := r.URL.Query().Get(http2.PageQueryParam); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs[http2.PageQueryParam] = "must be greater than or equal to 0"
		} else {
			page = v
		}
	}

	if raw := r.URL.Query().Get(http2.SizeQueryParam); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			errs[http2.SizeQueryParam] = "must be greater than or equal to 1"
		} else {
			size = v
		}
	}

	return page, size, errs
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
