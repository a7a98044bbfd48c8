package handlers

import (
	"net/http"

	"petlove/internal/models"
	"petlove/internal/services"
	"petlove/internal/utils"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param limit query integer false "Page size (1-100, default 50)"
// @Param skip query integer false "Number of results to skip"
// @Param user_id query string false "Filter by customer ID"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Order
// @Failure 400 {object} utils.ErrorResponse "invalid query"
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := utils.GetPagination(w, r)
	if err != nil {
		return
	}
	userID, err := utils.GetObjectIDFromQuery(w, r, "user_id")
	if err != nil {
		return
	}

	filter := models.OrderFilter{
		UserID: userID,
		Status: models.OrderStatus(r.URL.Query().Get("status")),
	}
	orders, total, err := h.orderService.ListOrders(r.Context(), filter, page)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithList(w, orders, total)
}

// CreateOrder godoc
// @Summary Place an order
// @Description The total is computed from the items; new orders are pending.
// @Tags orders
// @Accept json
// @Produce json
// @Param payload body models.Order true "Order with at least one item"
// @Success 201 {object} models.Order
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 422 {object} utils.ErrorResponse "user does not exist"
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if !utils.DecodeAndValidate(w, r, &order) {
		return
	}

	createdOrder, err := h.orderService.CreateOrder(r.Context(), &order)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, createdOrder)
}

// GetOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "order not found"
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateOrder godoc
// @Summary Update a pending order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param payload body models.OrderUpdate true "Fields to change"
// @Success 200 {object} models.Order
// @Failure 400 {object} utils.ErrorResponse "invalid payload or nothing to update"
// @Failure 404 {object} utils.ErrorResponse "order not found"
// @Failure 409 {object} utils.ErrorResponse "order is no longer pending"
// @Router /api/orders/{id} [put]
// @Router /api/orders/{id} [patch]
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.OrderUpdate
	if !utils.DecodeAndValidate(w, r, &updatePayload) {
		return
	}

	updatedOrder, err := h.orderService.UpdateOrder(r.Context(), orderID, &updatePayload)
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updatedOrder)
}

// UpdateOrderStatus godoc
// @Summary Change the order status
// @Description Allowed moves: pending to paid or cancelled, paid to shipped or cancelled, shipped to delivered.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param payload body models.StatusUpdate true "Target status"
// @Success 200 {object} models.Order
// @Failure 400 {object} utils.ErrorResponse "invalid payload"
// @Failure 404 {object} utils.ErrorResponse "order not found"
// @Failure 409 {object} utils.ErrorResponse "transition not allowed"
// @Router /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var payload models.StatusUpdate
	if !utils.DecodeAndValidate(w, r, &payload) {
		return
	}

	updatedOrder, err := h.orderService.UpdateOrderStatus(r.Context(), orderID, models.OrderStatus(payload.Status))
	if err != nil {
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updatedOrder)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse "invalid id"
// @Failure 404 {object} utils.ErrorResponse "order not found"
// @Router /api/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), orderID); err != nil {
		utils.SendServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
