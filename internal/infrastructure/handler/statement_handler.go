package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/application/service"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/domain/entity"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/logger"
	"github.com/PavelGrigoryev/Clever-Bank-sub000/internal/infrastructure/middleware"
)

// StatementHandler handles HTTP requests for account statements.
type StatementHandler struct {
	service *service.StatementService
	logger  logger.Logger
}

// NewStatementHandler creates a new statement handler.
func NewStatementHandler(svc *service.StatementService, log logger.Logger) *StatementHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &StatementHandler{
		service: svc,
		logger:  log,
	}
}

// TransactionStatement serves the line-itemized statement as rendered text.
func (h *StatementHandler) TransactionStatement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	accountID, from, to, ok := h.parseQuery(w, r, requestID)
	if !ok {
		return
	}

	statement, err := h.service.TransactionStatement(r.Context(), accountID, from, to)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	sendStatement(w, statement)
}

// MoneyStatement serves the spent/received summary as rendered text.
func (h *StatementHandler) MoneyStatement(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	accountID, from, to, ok := h.parseQuery(w, r, requestID)
	if !ok {
		return
	}

	statement, _, err := h.service.MoneyStatement(r.Context(), accountID, from, to)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	sendStatement(w, statement)
}

// parseQuery extracts the account id and the inclusive date range. The "to"
// date covers its whole day.
func (h *StatementHandler) parseQuery(w http.ResponseWriter, r *http.Request, requestID string) (string, time.Time, time.Time, bool) {
	accountID := mux.Vars(r)["id"]

	var violations []string
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		violations = append(violations, "from must be a date in YYYY-MM-DD format")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		violations = append(violations, "to must be a date in YYYY-MM-DD format")
	}
	if len(violations) == 0 && to.Before(from) {
		violations = append(violations, "to must not be before from")
	}
	if len(violations) > 0 {
		writeError(w, h.logger, requestID, &entity.ValidationError{Violations: violations})
		return "", time.Time{}, time.Time{}, false
	}

	return accountID, from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), true
}

func sendStatement(w http.ResponseWriter, statement *service.Statement) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if statement.Location != "" {
		w.Header().Set("X-Statement-Location", statement.Location)
	}
	_, _ = w.Write([]byte(statement.Rendered))
}

// RegisterRoutes registers the statement handler routes.
func (h *StatementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/accounts/{id}/statement", h.TransactionStatement).Methods("GET")
	router.HandleFunc("/accounts/{id}/statement/amounts", h.MoneyStatement).Methods("GET")
}
