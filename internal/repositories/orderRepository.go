package repositories

import (
	"petlove/internal/database"
	"petlove/internal/models"
)

type OrderRepository interface {
	CRUDRepository[models.Order]
}

type orderRepository struct {
	*documentStore[models.Order]
}

func NewOrderRepository(db database.Service) OrderRepository {
	return &orderRepository{newDocumentStore[models.Order](db, database.OrdersCollection, "order")}
}
