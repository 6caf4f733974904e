package flows

import (
	"context"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
)

// ProductsClient - каталог через API
type ProductsClient interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id string) (*models.Product, error)
	RelatedProducts(ctx context.Context, id string) ([]models.Product, error)
}

// Catalog - чтение каталога; ошибки API превращаются в пустой результат
type Catalog struct {
	log    *slog.Logger
	client ProductsClient
}

func NewCatalog(log *slog.Logger, client ProductsClient) *Catalog {
	return &Catalog{log: log, client: client}
}

// List возвращает все товары, при ошибке - пустой список
func (c *Catalog) List(ctx context.Context) []models.Product {
	const op = "flows.Catalog.List"

	products, err := c.client.Products(ctx)
	if err != nil {
		c.log.With(slog.String("op", op)).Error("failed to load products", slog.Any("error", err))
		return []models.Product{}
	}
	return products
}

// Get возвращает товар или nil
func (c *Catalog) Get(ctx context.Context, id string) *models.Product {
	const op = "flows.Catalog.Get"

	product, err := c.client.Product(ctx, id)
	if err != nil {
		c.log.With(slog.String("op", op)).Error("failed to get product details",
			slog.String("product_id", id), slog.Any("error", err))
		return nil
	}
	return product
}

func (c *Catalog) Related(ctx context.Context, id string) []models.Product {
	const op = "flows.Catalog.Related"

	products, err := c.client.RelatedProducts(ctx, id)
	if err != nil {
		c.log.With(slog.String("op", op)).Error("failed to get related products",
			slog.String("product_id", id), slog.Any("error", err))
		return []models.Product{}
	}
	return products
}
