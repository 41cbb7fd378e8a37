package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"rupeeflow/internal/domain/transaction"
	"rupeeflow/internal/shared/middleware"
)

type TransactionHandler struct {
	transactionRepo transaction.Repository
}

func NewTransactionHandler(transactionRepo transaction.Repository) *TransactionHandler {
	return &TransactionHandler{transactionRepo: transactionRepo}
}

// TransactionRequest is the body for both create and full-field update.
// Amount is a pointer so that a missing field is distinguishable from zero.
type TransactionRequest struct {
	Title    string   `json:"title"`
	Amount   *float64 `json:"amount"`
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
	Note     string   `json:"note"`
}

// validate checks required fields, enum membership, amount sign, and date
// format before anything reaches the store.
func (req *TransactionRequest) validate() error {
	if req.Title == "" || req.Amount == nil || req.Type == "" || req.Category == "" || req.Date == "" {
		return errors.New("Missing fields")
	}
	if *req.Amount < 0 {
		return errors.New("Amount must not be negative")
	}
	if !transaction.Type(req.Type).Valid() {
		return fmt.Errorf("Invalid type %q", req.Type)
	}
	if !transaction.Category(req.Category).Valid() {
		return fmt.Errorf("Invalid category %q", req.Category)
	}
	if _, err := time.Parse(transaction.DateFormat, req.Date); err != nil {
		return errors.New("Invalid date format (use YYYY-MM-DD)")
	}
	return nil
}

// HandleTransactions serves the collection routes: list, create, bulk clear.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	case http.MethodDelete:
		h.handleDeleteAll(w, r, userID)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleTransactionByID serves the per-transaction routes: update, delete.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Transaction ID is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.handleUpdate(w, r, userID, id)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, id)
	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, userID string) {
	transactions, err := h.transactionRepo.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing transactions for user %s: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID string) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.transactionRepo.Create(r.Context(), transaction.CreateTransactionParams{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    req.Title,
		Amount:   *req.Amount,
		Type:     transaction.Type(req.Type),
		Category: transaction.Category(req.Category),
		Date:     req.Date,
		Note:     req.Note,
	})
	if err != nil {
		log.Printf("Error creating transaction for user %s: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, created)
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, id string) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.transactionRepo.Update(r.Context(), userID, id, transaction.UpdateTransactionParams{
		Title:    req.Title,
		Amount:   *req.Amount,
		Type:     transaction.Type(req.Type),
		Category: transaction.Category(req.Category),
		Date:     req.Date,
		Note:     req.Note,
	})
	if errors.Is(err, transaction.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		log.Printf("Error updating transaction %s for user %s: %v", id, userID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, id string) {
	err := h.transactionRepo.Delete(r.Context(), userID, id)
	if errors.Is(err, transaction.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		log.Printf("Error deleting transaction %s for user %s: %v", id, userID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TransactionHandler) handleDeleteAll(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.transactionRepo.DeleteAllByUserID(r.Context(), userID); err != nil {
		log.Printf("Error clearing transactions for user %s: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
