package http

import (
	"encoding/json"
	"log"
	"net/http"

	"foto-orders-service/internal/app"
	"foto-orders-service/internal/domain"

	"github.com/gorilla/websocket"
)

// WSHandler streams live quote updates for an order draft while the client
// edits the form.
type WSHandler struct {
	service   *app.OrderService
	catalogID string
	upgrader  websocket.Upgrader
}

func NewWSHandler(service *app.OrderService, catalogID string) *WSHandler {
	return &WSHandler{
		service:   service,
		catalogID: catalogID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectServicesPayload struct {
	ServiceIDs []string `json:"serviceIds"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type submittedPayload struct {
	Orders []domain.Order `json:"orders"`
	Total  float64        `json:"total"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the order draft use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	draftID := r.URL.Query().Get("draftId")
	if draftID == "" {
		http.Error(w, "missing draftId", http.StatusBadRequest)
		return
	}
	catalogID := r.URL.Query().Get("catalogId")
	if catalogID == "" {
		catalogID = h.catalogID
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	started, err := h.service.Start(r.Context(), catalogID, draftID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	updates, cancel, err := h.service.Subscribe(r.Context(), catalogID, draftID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	// Deferred in this order so the subscription is cancelled before the
	// draft's idleness is checked.
	defer h.service.Abandon(r.Context(), draftID)
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "quote", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "started", Payload: started}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "selectServices":
			var payload selectServicesPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid selectServices payload"}}
				continue
			}
			if _, err := h.service.SelectServices(r.Context(), catalogID, draftID, payload.ServiceIDs); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "response":
			var payload domain.QuestionResponse
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid response payload"}}
				continue
			}
			if _, err := h.service.SetResponse(r.Context(), catalogID, draftID, payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "submit":
			var payload domain.OrderDetails
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid submit payload"}}
				continue
			}
			orders, err := h.service.Submit(r.Context(), catalogID, draftID, payload)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			total := 0.0
			if len(orders) > 0 {
				total = orders[0].TotalPrice
			}
			send <- outboundMessage[any]{Type: "submitted", Payload: submittedPayload{Orders: orders, Total: total}}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
