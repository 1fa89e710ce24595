// Package api is the presentation surface: thin chi handlers over the
// booking service, with no business decisions of their own.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blocktix/internal/booking"
	"blocktix/internal/logger"
	"blocktix/internal/models"
	"blocktix/internal/price"
	"blocktix/internal/qrticket"
	"blocktix/internal/rates"
	"blocktix/internal/utils"
	"blocktix/internal/wallet"
)

type Handler struct {
	Booking *booking.Service
	Rates   *rates.Handler
	Wallet  *wallet.Session
	Origin  string
	Log     *logger.Logger
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/health", h.Rates.Health)
	r.Get("/api/exchange-rate", h.Rates.ExchangeRate)

	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Get("/{eventID}", h.GetEvent)
		r.Put("/{eventID}", h.UpdateEvent)
		r.Delete("/{eventID}", h.DeleteEvent)
	})

	r.Route("/api/tickets", func(r chi.Router) {
		r.Post("/purchase", h.PurchaseTickets)
		r.Get("/owner/{address}", h.GetUserTickets)
		r.Get("/{ticketID}", h.GetTicket)
		r.Get("/{ticketID}/qr", h.TicketQRImage)
		r.Get("/{ticketID}/qr/payload", h.TicketQRPayload)
		r.Post("/{ticketID}/checkin", h.CheckInTicket)
	})

	// /api/verify?ticketId=N is the QR deep-link entry point.
	r.Get("/api/verify", h.VerifyByQuery)
	r.Get("/api/verify/{ticketID}", h.VerifyTicket)

	r.Route("/api/admins", func(r chi.Router) {
		r.Get("/{address}", h.CheckAdmin)
		r.Post("/", h.AddAdmin)
		r.Delete("/{address}", h.RemoveAdmin)
	})

	r.Route("/api/wallet", func(r chi.Router) {
		r.Get("/", h.WalletStatus)
		r.Post("/connect", h.ConnectWallet)
		r.Post("/disconnect", h.DisconnectWallet)
	})
}

// ---------------- events ----------------

// eventResponse decorates a booking view with display-ready price labels.
type eventResponse struct {
	booking.EventView
	PriceLabels [models.TierCount]string `json:"priceLabels"`
}

func toEventResponse(v booking.EventView) eventResponse {
	resp := eventResponse{EventView: v}
	for i, p := range v.Event.Prices {
		resp.PriceLabels[i] = price.Format(p)
	}
	return resp
}

type ticketResponse struct {
	models.Ticket
	PriceLabel string `json:"priceLabel"`
}

func toTicketResponse(t models.Ticket) ticketResponse {
	return ticketResponse{Ticket: t, PriceLabel: price.Format(t.PurchasePrice)}
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	views, err := h.Booking.ListEvents(r.Context())
	if err != nil {
		h.writeError(w, "Failed to load events", err)
		return
	}
	out := make([]eventResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toEventResponse(v))
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Events loaded", out))
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventID")
	if !ok {
		return
	}
	view, err := h.Booking.GetEvent(r.Context(), eventID)
	if err != nil {
		h.writeError(w, "Failed to load event", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Event loaded", toEventResponse(*view)))
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input models.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	txHash, err := h.Booking.CreateEvent(r.Context(), input)
	if err != nil {
		h.writeError(w, "Failed to create event", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse("Event created", map[string]string{"txHash": txHash}))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventID")
	if !ok {
		return
	}
	var input models.CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	txHash, err := h.Booking.UpdateEvent(r.Context(), eventID, input)
	if err != nil {
		h.writeError(w, "Failed to update event", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Event updated", map[string]string{"txHash": txHash}))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventID")
	if !ok {
		return
	}
	txHash, err := h.Booking.DeleteEvent(r.Context(), eventID)
	if err != nil {
		h.writeError(w, "Failed to delete event", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Event deleted (marked as inactive)", map[string]string{"txHash": txHash}))
}

// ---------------- tickets ----------------

type purchaseRequest struct {
	EventID    int64 `json:"eventId"`
	TicketType int   `json:"ticketType"`
	Quantity   int   `json:"quantity"`
}

func (h *Handler) PurchaseTickets(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	tier, err := models.ParseTier(req.TicketType)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid ticket type", err.Error()))
		return
	}

	receipts, err := h.Booking.PurchaseTickets(r.Context(), req.EventID, tier, req.Quantity)
	if err != nil {
		// Units before the failing one stay purchased; hand them back with
		// the failure so the caller can render the partial outcome.
		status := h.statusFor(err)
		resp := utils.ErrorResponse("Purchase failed", err.Error())
		resp.Data = receipts
		h.writeJSON(w, status, resp)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Tickets purchased", receipts))
}

func (h *Handler) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	tickets, err := h.Booking.GetUserTickets(r.Context(), address)
	if err != nil {
		h.writeError(w, "Failed to load tickets", err)
		return
	}
	out := make([]ticketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		out = append(out, toTicketResponse(ticket))
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Tickets loaded", out))
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "ticketID")
	if !ok {
		return
	}
	ticket, err := h.Booking.GetTicketDetails(r.Context(), ticketID)
	if err != nil {
		h.writeError(w, "Failed to load ticket", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Ticket loaded", toTicketResponse(*ticket)))
}

func (h *Handler) ticketPayload(r *http.Request, ticketID int64) (string, error) {
	ticket, err := h.Booking.GetTicketDetails(r.Context(), ticketID)
	if err != nil {
		return "", err
	}
	view, err := h.Booking.GetEvent(r.Context(), ticket.EventID)
	if err != nil {
		return "", err
	}
	return qrticket.Encode(*ticket, view.Event.Name, utils.UnixTimeToTime(view.Event.EventDate), h.Origin)
}

func (h *Handler) TicketQRPayload(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "ticketID")
	if !ok {
		return
	}
	payload, err := h.ticketPayload(r, ticketID)
	if err != nil {
		h.writeError(w, "Failed to build QR payload", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("QR payload built", map[string]string{"payload": payload}))
}

func (h *Handler) TicketQRImage(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "ticketID")
	if !ok {
		return
	}
	payload, err := h.ticketPayload(r, ticketID)
	if err != nil {
		h.writeError(w, "Failed to build QR code", err)
		return
	}
	png, err := qrticket.Image(payload)
	if err != nil {
		h.writeError(w, "Failed to render QR code", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) CheckInTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "ticketID")
	if !ok {
		return
	}
	if err := h.Booking.CheckInTicket(r.Context(), ticketID); err != nil {
		h.writeError(w, "Check-in failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Ticket marked as used", nil))
}

// ---------------- verification ----------------

func (h *Handler) VerifyByQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ticketId")
	ticketID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Malformed ids read the same as unknown tickets to the console.
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Verification failed", booking.ErrInvalidTicket.Error()))
		return
	}
	h.verify(w, r, ticketID)
}

func (h *Handler) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "ticketID")
	if !ok {
		return
	}
	h.verify(w, r, ticketID)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request, ticketID int64) {
	result, err := h.Booking.VerifyTicket(r.Context(), ticketID)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("Verification failed", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Ticket verified", result))
}

// ---------------- admins ----------------

type adminRequest struct {
	Address string `json:"address"`
}

func (h *Handler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	isAdmin := h.Booking.IsAdmin(r.Context(), address)
	owner := h.Booking.ContractOwner(r.Context())
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Admin status checked", map[string]interface{}{
		"address": address,
		"isAdmin": isAdmin,
		"isOwner": owner != "" && owner == address,
	}))
}

func (h *Handler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}
	txHash, err := h.Booking.AddAdmin(r.Context(), req.Address)
	if err != nil {
		h.writeError(w, "Failed to add admin", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Admin added", map[string]string{"txHash": txHash}))
}

func (h *Handler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	txHash, err := h.Booking.RemoveAdmin(r.Context(), address)
	if err != nil {
		h.writeError(w, "Failed to remove admin", err)
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Admin removed", map[string]string{"txHash": txHash}))
}

// ---------------- wallet ----------------

func (h *Handler) WalletStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Wallet status", h.Wallet.Snapshot()))
}

func (h *Handler) ConnectWallet(w http.ResponseWriter, r *http.Request) {
	address, err := h.Wallet.Connect(r.Context())
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Connection failed", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Wallet connected", map[string]string{"address": address}))
}

func (h *Handler) DisconnectWallet(w http.ResponseWriter, r *http.Request) {
	h.Wallet.Disconnect()
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("Wallet disconnected", nil))
}

// ---------------- helpers ----------------

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid id", err.Error()))
		return 0, false
	}
	return id, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, err error) {
	h.writeJSON(w, h.statusFor(err), utils.ErrorResponse(message, err.Error()))
}

func (h *Handler) statusFor(err error) int {
	switch {
	case errors.Is(err, booking.ErrEventNotFound), errors.Is(err, booking.ErrInvalidTicket):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrBusy), errors.Is(err, booking.ErrSoldOut), errors.Is(err, booking.ErrSeatTaken):
		return http.StatusConflict
	case errors.Is(err, booking.ErrInsufficientFunds), errors.Is(err, booking.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, booking.ErrWalletNotConnected),
		errors.Is(err, booking.ErrInvalidTier),
		errors.Is(err, booking.ErrInvalidAddress),
		errors.Is(err, booking.ErrUserRejected),
		errors.Is(err, booking.ErrEventInactive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
