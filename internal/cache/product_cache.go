package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ecoshop/internal/models"
	"ecoshop/internal/repository"
	"ecoshop/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	allProductsKey = "productos:all"
	notFoundMarker = "notfound"
)

// CachedProductRepository is a cache-aside decorator over the real product
// repository. Redis failures degrade to the database, never to an error.
type CachedProductRepository struct {
	realRepo repository.ProductRepository
	redis    *redis.Client
	ttl      time.Duration
	log      *logger.Logger
}

func NewCachedProductRepository(realRepo repository.ProductRepository, rdb *redis.Client, log *logger.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		realRepo: realRepo,
		redis:    rdb,
		ttl:      5 * time.Minute,
		log:      log.WithComponent("product_cache"),
	}
}

func productKey(id int) string {
	return fmt.Sprintf("producto:%d", id)
}

func (c *CachedProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}
		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			c.log.Warn("failed to unmarshal cached product, falling through to db", "error", err)
			break
		}
		return &product, nil
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("redis error, falling through to db", "error", err)
	}

	product, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, 1*time.Minute).Err(); setErr != nil {
				c.log.Warn("failed to cache notfound marker", "error", setErr)
			}
		}
		return nil, err
	}

	jsonData, err := json.Marshal(product)
	if err != nil {
		c.log.Warn("failed to marshal product for cache", "error", err)
		return product, nil
	}

	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		c.log.Warn("failed to cache product", "error", err)
	}

	return product, nil
}

func (c *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	data, err := c.redis.Get(ctx, allProductsKey).Bytes()
	if err == nil {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		c.log.Warn("failed to unmarshal cached product list, falling through to db")
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("redis error, falling through to db", "error", err)
	}

	products, err := c.realRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(products); err == nil {
		if err := c.redis.Set(ctx, allProductsKey, jsonData, c.ttl).Err(); err != nil {
			c.log.Warn("failed to cache product list", "error", err)
		}
	}

	return products, nil
}

func (c *CachedProductRepository) invalidate(ctx context.Context, productID int) {
	if err := c.redis.Del(ctx, productKey(productID), allProductsKey).Err(); err != nil {
		c.log.Warn("failed to invalidate product cache", "producto_id", productID, "error", err)
	}
}

func (c *CachedProductRepository) Create(ctx context.Context, product *models.Product, certCodes []string) error {
	if err := c.realRepo.Create(ctx, product, certCodes); err != nil {
		return err
	}
	if err := c.redis.Del(ctx, allProductsKey).Err(); err != nil {
		c.log.Warn("failed to invalidate product list cache", "error", err)
	}
	// a notfound marker may be cached for this fresh id
	c.invalidate(ctx, product.ProductID)
	return nil
}

func (c *CachedProductRepository) Update(ctx context.Context, product *models.Product, certCodes []string) error {
	c.invalidate(ctx, product.ProductID)
	return c.realRepo.Update(ctx, product, certCodes)
}

func (c *CachedProductRepository) Delete(ctx context.Context, id int) error {
	c.invalidate(ctx, id)
	return c.realRepo.Delete(ctx, id)
}
