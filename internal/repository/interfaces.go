package repository

import (
	"context"

	"ecoshop/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
}

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id int) (*models.Brand, error)
	GetAll(ctx context.Context) ([]models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id int) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product, certCodes []string) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product, certCodes []string) error
	Delete(ctx context.Context, id int) error
}

type CertificationRepository interface {
	Create(ctx context.Context, cert *models.Certification) error
	GetByID(ctx context.Context, id int) (*models.Certification, error)
	GetByCode(ctx context.Context, code string) (*models.Certification, error)
	GetAll(ctx context.Context) ([]models.Certification, error)
	Update(ctx context.Context, cert *models.Certification) error
	Delete(ctx context.Context, id int) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByUserID(ctx context.Context, userID int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error)
	Delete(ctx context.Context, id int) error
}

type OrderItemRepository interface {
	Add(ctx context.Context, orderID, productID, quantity int) (*models.OrderItem, error)
	UpdateQuantity(ctx context.Context, itemID, quantity int) (*models.OrderItem, error)
	Remove(ctx context.Context, itemID int) error
	GetByOrderID(ctx context.Context, orderID int) ([]models.OrderItem, error)
}
