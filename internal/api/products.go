package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/linemk/storefront/internal/domain/models"
)

type productsData struct {
	Products []models.Product `json:"products"`
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var resp envelope[productsData]
	if err := c.Call(ctx, "/products", http.MethodGet, nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var resp envelope[struct {
		Product models.Product `json:"product"`
	}]
	if err := c.Call(ctx, "/products/"+url.PathEscape(id), http.MethodGet, nil, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Data.Product, nil
}

// RelatedProducts возвращает товары, похожие на товар id
func (c *Client) RelatedProducts(ctx context.Context, id string) ([]models.Product, error) {
	var resp envelope[productsData]
	if err := c.Call(ctx, "/products/related/"+url.PathEscape(id), http.MethodGet, nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Products, nil
}
