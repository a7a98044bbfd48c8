package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"petlove/internal/errs"
	"petlove/internal/metrics"
	"petlove/internal/models"
	"petlove/internal/repositories"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, orderID models.ID) (*models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter, page models.Pagination) ([]models.Order, int64, error)
	UpdateOrder(ctx context.Context, orderID models.ID, updatePayload *models.OrderUpdate) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID models.ID, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID models.ID) error
}

type orderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
}

func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) OrderService {
	return &orderService{orderRepo: orderRepo, userRepo: userRepo}
}

func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if _, err := resolveReference[models.User](ctx, s.userRepo, order.UserID, "user_id"); err != nil {
		log.Warn().Err(err).Msg("Rejected order for unknown user")
		return nil, err
	}

	order.Base = models.NewBase()
	order.Status = models.OrderPending
	order.Total = models.OrderTotal(order.Items)

	createdOrder, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		log.Error().Err(err).Str("user_id", order.UserID.Hex()).Msg("Failed to create order")
		return nil, err
	}

	log.Info().Str("order_id", createdOrder.ID.Hex()).Float64("total", createdOrder.Total).Msg("Order placed successfully")
	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderRevenueTotal.Add(createdOrder.Total)
	return createdOrder, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID models.ID) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter models.OrderFilter, page models.Pagination) ([]models.Order, int64, error) {
	query := bson.M{}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	orders, err := s.orderRepo.Find(ctx, query, page)
	if err != nil {
		log.Error().Err(err).Msg("Error listing orders")
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateOrder edits the contents of an order. Only pending orders can change.
func (s *orderService) UpdateOrder(ctx context.Context, orderID models.ID, updatePayload *models.OrderUpdate) (*models.Order, error) {
	updateFields := bson.M{}
	if updatePayload.Items != nil {
		updateFields["items"] = *updatePayload.Items
		updateFields["total"] = models.OrderTotal(*updatePayload.Items)
	}
	if updatePayload.ShippingAddress != nil {
		updateFields["shipping_address"] = *updatePayload.ShippingAddress
	}
	if updatePayload.Notes != nil {
		updateFields["notes"] = *updatePayload.Notes
	}
	if len(updateFields) == 0 {
		return nil, errs.ErrNoFieldsToUpdate
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderPending {
		log.Warn().Str("order_id", orderID.Hex()).Str("status", string(order.Status)).Msg("Attempt to edit a non-pending order")
		return nil, fmt.Errorf("%w: order is %s, only pending orders can be edited", errs.ErrInvalidStatusTransition, order.Status)
	}

	result, err := s.orderRepo.UpdateIf(ctx, orderID, bson.M{"status": models.OrderPending}, updateFields)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID.Hex()).Msg("Failed to update order")
		return nil, err
	}
	if err := matchedOrChanged(result, "order", models.OrderPending); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", orderID.Hex()).Msg("Order updated successfully")
	return s.GetOrder(ctx, orderID)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID models.ID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", errs.ErrInvalidInput, status)
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: order cannot move from %s to %s", errs.ErrInvalidStatusTransition, order.Status, status)
	}

	result, err := s.orderRepo.UpdateIf(ctx, orderID, bson.M{"status": order.Status}, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	if err := matchedOrChanged(result, "order", order.Status); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", orderID.Hex()).Str("from", string(order.Status)).Str("to", string(status)).Msg("Order status changed")
	metrics.OrderStatusChangesTotal.WithLabelValues(string(status)).Inc()
	return s.GetOrder(ctx, orderID)
}

// DeleteOrder removes pending or cancelled orders. Orders that were paid stay on record.
func (s *orderService) DeleteOrder(ctx context.Context, orderID models.ID) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.OrderPending && order.Status != models.OrderCancelled {
		return fmt.Errorf("%w: order is %s, only pending or cancelled orders can be deleted", errs.ErrInvalidStatusTransition, order.Status)
	}

	result, err := s.orderRepo.Delete(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID.Hex()).Msg("Failed to delete order")
		return err
	}
	if result.DeletedCount == 0 {
		return notFoundErr("order")
	}

	log.Info().Str("order_id", orderID.Hex()).Msg("Order deleted successfully")
	return nil
}
