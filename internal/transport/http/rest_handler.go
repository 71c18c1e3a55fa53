package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"foto-orders-service/internal/app"
	"foto-orders-service/internal/domain"
)

// RESTHandler serves the catalog and order submission endpoints consumed by
// the order form.
type RESTHandler struct {
	service   *app.OrderService
	catalogID string
}

func NewRESTHandler(service *app.OrderService, catalogID string) *RESTHandler {
	return &RESTHandler{service: service, catalogID: catalogID}
}

// Services handles GET /services.
func (h *RESTHandler) Services(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	services, err := h.service.Services(r.Context(), h.catalog(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// Questions handles GET /questions?serviceIds=a,b: the global questions plus
// those owned by the named services, in display order.
func (h *RESTHandler) Questions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var serviceIDs []string
	if raw := r.URL.Query().Get("serviceIds"); raw != "" {
		serviceIDs = strings.Split(raw, ",")
	}
	questions, err := h.service.Questions(r.Context(), h.catalog(r), serviceIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

type createOrderRequest struct {
	ServiceIDs []string                  `json:"serviceIds"`
	Responses  []domain.QuestionResponse `json:"responses"`
	domain.OrderDetails
}

type createOrderResponse struct {
	Orders []domain.Order `json:"orders"`
	Total  float64        `json:"totalPrice"`
}

// CreateOrder handles POST /orders: one order record per selected service,
// each carrying its filtered responses and the quoted total.
func (h *RESTHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid order payload", http.StatusBadRequest)
		return
	}

	orders, err := h.service.PlaceOrder(r.Context(), h.catalog(r), req.ServiceIDs, req.Responses, req.OrderDetails)
	if err != nil {
		writeError(w, err)
		return
	}

	total := 0.0
	if len(orders) > 0 {
		total = orders[0].TotalPrice
	}
	writeJSON(w, http.StatusCreated, createOrderResponse{Orders: orders, Total: total})
}

func (h *RESTHandler) catalog(r *http.Request) string {
	if id := r.URL.Query().Get("catalogId"); id != "" {
		return id
	}
	return h.catalogID
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrCatalogNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrServiceNotFound),
		errors.Is(err, domain.ErrNoServicesSelected),
		errors.Is(err, domain.ErrInvalidResponse):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}
