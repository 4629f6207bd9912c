package api_test

import (
	"context"
	"fmt"
	"time"

	"ecoshop/internal/models"
	"ecoshop/internal/repository"

	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory stand-in for the postgres repositories. It keeps
// the same contracts: existence checks, duplicate checks, frozen unit prices
// and order total recalculation on every item mutation.
type fakeStore struct {
	users    map[int]*models.User
	brands   map[int]*models.Brand
	products map[int]*models.Product
	certs    map[int]*models.Certification
	orders   map[int]*models.Order
	items    map[int]*models.OrderItem
	// association rows, keyed by product id like the join table
	productCerts map[int][]int
	nextID       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[int]*models.User),
		brands:       make(map[int]*models.Brand),
		products:     make(map[int]*models.Product),
		certs:        make(map[int]*models.Certification),
		orders:       make(map[int]*models.Order),
		items:        make(map[int]*models.OrderItem),
		productCerts: make(map[int][]int),
	}
}

func (s *fakeStore) id() int {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) recalcTotal(orderID int) {
	var items []models.OrderItem
	for _, item := range s.items {
		if item.OrderID == orderID {
			items = append(items, *item)
		}
	}
	if order, ok := s.orders[orderID]; ok {
		order.Total = repository.SumItems(items)
	}
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("%w: email already registered", repository.ErrDuplicate)
		}
	}
	u.UserID = r.s.id()
	u.RegisteredAt = time.Now()
	copied := *u
	r.s.users[u.UserID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range r.s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	existing, ok := r.s.users[u.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = u.Name
	existing.DefaultAddress = u.DefaultAddress
	existing.Role = u.Role
	u.Email = existing.Email
	u.RegisteredAt = existing.RegisteredAt
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

type fakeBrandRepo struct{ s *fakeStore }

func (r *fakeBrandRepo) Create(_ context.Context, b *models.Brand) error {
	if _, ok := r.s.users[b.UserID]; !ok {
		return fmt.Errorf("%w: user %d", repository.ErrNotFound, b.UserID)
	}
	b.BrandID = r.s.id()
	b.JoinedAt = time.Now()
	copied := *b
	r.s.brands[b.BrandID] = &copied
	return nil
}

func (r *fakeBrandRepo) GetByID(_ context.Context, id int) (*models.Brand, error) {
	b, ok := r.s.brands[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBrandRepo) GetAll(_ context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	for _, b := range r.s.brands {
		brands = append(brands, *b)
	}
	return brands, nil
}

func (r *fakeBrandRepo) Update(_ context.Context, b *models.Brand) error {
	existing, ok := r.s.brands[b.BrandID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.OfficialName = b.OfficialName
	existing.Description = b.Description
	existing.Website = b.Website
	existing.LogoURL = b.LogoURL
	b.UserID = existing.UserID
	b.JoinedAt = existing.JoinedAt
	return nil
}

func (r *fakeBrandRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.s.brands[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.brands, id)
	return nil
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) resolveCerts(codes []string) ([]models.Certification, error) {
	var certs []models.Certification
	for _, code := range codes {
		normalized := repository.NormalizeCode(code)
		if normalized == "" {
			continue
		}
		var found *models.Certification
		for _, c := range r.s.certs {
			if c.Code == normalized {
				found = c
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("%w: unknown certification codes [%s]", repository.ErrInvalidInput, normalized)
		}
		certs = append(certs, *found)
	}
	return certs, nil
}

func (r *fakeProductRepo) skuTaken(sku *string, exceptID int) bool {
	if sku == nil {
		return false
	}
	for _, existing := range r.s.products {
		if existing.ProductID != exceptID && existing.Sku != nil && *existing.Sku == *sku {
			return true
		}
	}
	return false
}

func (r *fakeProductRepo) setAssociations(productID int, certs []models.Certification) {
	delete(r.s.productCerts, productID)
	for _, c := range certs {
		r.s.productCerts[productID] = append(r.s.productCerts[productID], c.CertificationID)
	}
}

func (r *fakeProductRepo) Create(_ context.Context, p *models.Product, certCodes []string) error {
	if _, ok := r.s.brands[p.BrandID]; !ok {
		return fmt.Errorf("%w: brand %d", repository.ErrNotFound, p.BrandID)
	}
	if r.skuTaken(p.Sku, 0) {
		return fmt.Errorf("%w: sku already in use", repository.ErrDuplicate)
	}
	certs, err := r.resolveCerts(certCodes)
	if err != nil {
		return err
	}
	p.ProductID = r.s.id()
	p.CreatedAt = time.Now()
	p.Certifications = certs
	copied := *p
	r.s.products[p.ProductID] = &copied
	r.setAssociations(p.ProductID, certs)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int) (*models.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) GetAll(_ context.Context) ([]models.Product, error) {
	var products []models.Product
	for _, p := range r.s.products {
		products = append(products, *p)
	}
	return products, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *models.Product, certCodes []string) error {
	existing, ok := r.s.products[p.ProductID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.skuTaken(p.Sku, p.ProductID) {
		return fmt.Errorf("%w: sku already in use", repository.ErrDuplicate)
	}
	certs, err := r.resolveCerts(certCodes)
	if err != nil {
		return err
	}
	created := existing.CreatedAt
	*existing = *p
	existing.CreatedAt = created
	existing.Certifications = certs
	p.CreatedAt = created
	p.Certifications = certs
	r.setAssociations(p.ProductID, certs)
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.products, id)
	delete(r.s.productCerts, id)
	return nil
}

type fakeCertRepo struct{ s *fakeStore }

func (r *fakeCertRepo) findByCode(code string) *models.Certification {
	for _, c := range r.s.certs {
		if c.Code == code {
			return c
		}
	}
	return nil
}

func (r *fakeCertRepo) Create(_ context.Context, c *models.Certification) error {
	c.Code = repository.NormalizeCode(c.Code)
	if r.findByCode(c.Code) != nil {
		return fmt.Errorf("%w: certification code %s already exists", repository.ErrDuplicate, c.Code)
	}
	c.CertificationID = r.s.id()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	copied := *c
	r.s.certs[c.CertificationID] = &copied
	return nil
}

func (r *fakeCertRepo) GetByID(_ context.Context, id int) (*models.Certification, error) {
	c, ok := r.s.certs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCertRepo) GetByCode(_ context.Context, code string) (*models.Certification, error) {
	c := r.findByCode(repository.NormalizeCode(code))
	if c == nil {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCertRepo) GetAll(_ context.Context) ([]models.Certification, error) {
	var certs []models.Certification
	for _, c := range r.s.certs {
		certs = append(certs, *c)
	}
	return certs, nil
}

func (r *fakeCertRepo) Update(_ context.Context, c *models.Certification) error {
	existing, ok := r.s.certs[c.CertificationID]
	if !ok {
		return repository.ErrNotFound
	}
	c.Code = repository.NormalizeCode(c.Code)
	if existing.Code != c.Code && r.findByCode(c.Code) != nil {
		return fmt.Errorf("%w: certification code %s already exists", repository.ErrDuplicate, c.Code)
	}
	existing.Name = c.Name
	existing.Code = c.Code
	existing.Type = c.Type
	existing.LogoURL = c.LogoURL
	existing.UpdatedAt = time.Now()
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *fakeCertRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.s.certs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.certs, id)
	return nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) error {
	user, ok := r.s.users[o.UserID]
	if !ok {
		return fmt.Errorf("%w: user %d", repository.ErrNotFound, o.UserID)
	}
	if o.Status == "" {
		o.Status = models.OrderStatusPendingPayment
	}
	o.OrderID = r.s.id()
	o.CreatedAt = time.Now()
	o.Total = decimal.Zero
	o.UserEmail = user.Email
	copied := *o
	r.s.orders[o.OrderID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int) (*models.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) GetAll(_ context.Context) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range r.s.orders {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *fakeOrderRepo) GetByUserID(_ context.Context, userID int) ([]models.Order, error) {
	if _, ok := r.s.users[userID]; !ok {
		return nil, fmt.Errorf("%w: user %d", repository.ErrNotFound, userID)
	}
	var orders []models.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int, status string) (*models.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, id)
	for itemID, item := range r.s.items {
		if item.OrderID == id {
			delete(r.s.items, itemID)
		}
	}
	return nil
}

type fakeOrderItemRepo struct{ s *fakeStore }

func (r *fakeOrderItemRepo) Add(_ context.Context, orderID, productID, quantity int) (*models.OrderItem, error) {
	if _, ok := r.s.orders[orderID]; !ok {
		return nil, fmt.Errorf("%w: order %d", repository.ErrNotFound, orderID)
	}
	product, ok := r.s.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", repository.ErrNotFound, productID)
	}

	item := &models.OrderItem{
		OrderItemID: r.s.id(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: product.Name,
		ImageURL:    product.ImageURL,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	}
	r.s.items[item.OrderItemID] = item
	r.s.recalcTotal(orderID)

	copied := *item
	copied.Subtotal = copied.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return &copied, nil
}

func (r *fakeOrderItemRepo) UpdateQuantity(_ context.Context, itemID, quantity int) (*models.OrderItem, error) {
	item, ok := r.s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: order item %d", repository.ErrNotFound, itemID)
	}
	item.Quantity = quantity
	r.s.recalcTotal(item.OrderID)

	copied := *item
	copied.Subtotal = copied.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return &copied, nil
}

func (r *fakeOrderItemRepo) Remove(_ context.Context, itemID int) error {
	item, ok := r.s.items[itemID]
	if !ok {
		return fmt.Errorf("%w: order item %d", repository.ErrNotFound, itemID)
	}
	delete(r.s.items, itemID)
	r.s.recalcTotal(item.OrderID)
	return nil
}

func (r *fakeOrderItemRepo) GetByOrderID(_ context.Context, orderID int) ([]models.OrderItem, error) {
	if _, ok := r.s.orders[orderID]; !ok {
		return nil, fmt.Errorf("%w: order %d", repository.ErrNotFound, orderID)
	}
	var items []models.OrderItem
	for _, item := range r.s.items {
		if item.OrderID == orderID {
			copied := *item
			copied.Subtotal = copied.UnitPrice.Mul(decimal.NewFromInt(int64(copied.Quantity)))
			items = append(items, copied)
		}
	}
	return items, nil
}
