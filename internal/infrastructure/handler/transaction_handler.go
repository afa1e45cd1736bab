package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/application/service"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/middleware"
)

// TransactionHandler handles HTTP requests for balance mutations.
type TransactionHandler struct {
	service *service.TransactionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(svc *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service: svc,
		logger:  log,
	}
}

// ChangeBalance handles replenishment and withdrawal of a single account.
func (h *TransactionHandler) ChangeBalance(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req ChangeBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "request body is not valid JSON", requestID)
		return
	}

	var violations []string
	if req.RecipientAccountID == "" {
		violations = append(violations, "recipient_account_id is required")
	}
	if !req.Sum.IsPositive() {
		violations = append(violations, "sum must be a positive decimal")
	}
	kind := entity.TransactionType(req.Type)
	if kind != entity.Replenishment && kind != entity.Withdrawal {
		violations = append(violations, "type must be REPLENISHMENT or WITHDRAWAL")
	}
	if len(violations) > 0 {
		writeError(w, h.logger, requestID, &entity.ValidationError{Violations: violations})
		return
	}

	resp, err := h.service.ChangeBalance(r.Context(), service.ChangeBalanceRequest{
		AccountID: req.RecipientAccountID,
		Sum:       req.Sum,
		Type:      kind,
	})
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	sendJSON(w, http.StatusCreated, resp)
}

// Transfer handles same-currency transfers between two accounts.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	req, ok := h.decodeTransfer(w, r, requestID)
	if !ok {
		return
	}

	resp, err := h.service.Transfer(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	sendJSON(w, http.StatusCreated, resp)
}

// Exchange handles cross-currency transfers.
func (h *TransactionHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	req, ok := h.decodeTransfer(w, r, requestID)
	if !ok {
		return
	}

	resp, err := h.service.Exchange(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	sendJSON(w, http.StatusCreated, resp)
}

func (h *TransactionHandler) decodeTransfer(w http.ResponseWriter, r *http.Request, requestID string) (service.TransferRequest, bool) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "request body is not valid JSON", requestID)
		return service.TransferRequest{}, false
	}

	var violations []string
	if req.SenderAccountID == "" {
		violations = append(violations, "sender_account_id is required")
	}
	if req.RecipientAccountID == "" {
		violations = append(violations, "recipient_account_id is required")
	}
	if !req.Sum.IsPositive() {
		violations = append(violations, "sum must be a positive decimal")
	}
	if len(violations) > 0 {
		writeError(w, h.logger, requestID, &entity.ValidationError{Violations: violations})
		return service.TransferRequest{}, false
	}

	return service.TransferRequest{
		SenderAccountID:    req.SenderAccountID,
		RecipientAccountID: req.RecipientAccountID,
		Sum:                req.Sum,
	}, true
}

// RegisterRoutes registers the transaction handler routes.
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/transactions/change-balance", h.ChangeBalance).Methods("POST")
	router.HandleFunc("/transactions/transfer", h.Transfer).Methods("POST")
	router.HandleFunc("/transactions/exchange", h.Exchange).Methods("POST")
}
