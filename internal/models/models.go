package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	UserID         int       `json:"usuario_id"`
	Email          string    `json:"email" validate:"required,email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"nombre"`
	DefaultAddress string    `json:"direccion_default"`
	Role           string    `json:"rol" validate:"required,oneof=customer brand admin"`
	RegisteredAt   time.Time `json:"fecha_registro"`
}

type Brand struct {
	BrandID      int       `json:"marca_id"`
	UserID       int       `json:"usuario_id" validate:"required"`
	OfficialName string    `json:"nombre_oficial" validate:"required,max=150"`
	Description  string    `json:"descripcion_sostenible"`
	Website      string    `json:"sitio_web"`
	LogoURL      string    `json:"logo_url"`
	JoinedAt     time.Time `json:"fecha_union"`
}

type Product struct {
	ProductID      int             `json:"producto_id"`
	BrandID        int             `json:"marca_id" validate:"required"`
	Name           string          `json:"nombre" validate:"required,max=200"`
	Description    string          `json:"descripcion"`
	Price          decimal.Decimal `json:"precio"`
	Stock          int             `json:"stock" validate:"min=0"`
	Sku            *string         `json:"sku,omitempty"`
	Materials      string          `json:"materiales"`
	Origin         string          `json:"origen"`
	CarbonKg       decimal.Decimal `json:"huella_carbono_kg"`
	RecyclablePct  int             `json:"porcentaje_reciclable" validate:"min=0,max=100"`
	EcoBadge       string          `json:"eco_badge" validate:"omitempty,oneof=low medium neutral"`
	ImageURL       string          `json:"imagen_url"`
	Active         bool            `json:"activo"`
	CreatedAt      time.Time       `json:"fecha_creacion"`
	Certifications []Certification `json:"certificaciones"`
}

type Certification struct {
	CertificationID int       `json:"certification_id"`
	Name            string    `json:"name" validate:"required,max=200"`
	Code            string    `json:"code" validate:"required,max=50"`
	Type            string    `json:"type" validate:"max=50"`
	LogoURL         string    `json:"logo_url" validate:"max=500"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Order statuses, enforced on create and on status change.
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

type Order struct {
	OrderID       int             `json:"pedido_id"`
	UserID        int             `json:"usuario_id"`
	UserEmail     string          `json:"email_usuario,omitempty"`
	CreatedAt     time.Time       `json:"fecha_pedido"`
	Status        string          `json:"estado"`
	Total         decimal.Decimal `json:"total"`
	ShippingAddr  string          `json:"direccion_envio"`
	PaymentMethod string          `json:"metodo_pago"`
	PaymentTxID   string          `json:"id_transaccion_pago"`
	TotalCarbonKg decimal.Decimal `json:"huella_carbono_total_kg"`
}

// OrderItem carries the unit price frozen at add-time. Subtotal is always
// quantity * unit price, computed when the item is read or written.
type OrderItem struct {
	OrderItemID int             `json:"pedido_item_id"`
	OrderID     int             `json:"pedido_id"`
	ProductID   int             `json:"producto_id"`
	ProductName string          `json:"nombre_producto,omitempty"`
	ImageURL    string          `json:"imagen_url,omitempty"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
