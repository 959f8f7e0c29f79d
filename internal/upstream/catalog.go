package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sakif/storefront-api/internal/apperror"
)

// DefaultCatalogURL is the public fake store API.
const DefaultCatalogURL = "https://fakestoreapi.com"

// CatalogItem is one entry of GET /products, nested rating included.
// Optional fields are pointers so an absent key stays distinguishable from
// an empty value all the way to the NULL column.
type CatalogItem struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	Rating      *Rating  `json:"rating"`
}

type Rating struct {
	Rate  *float64 `json:"rate"`
	Count *int64   `json:"count"`
}

// CatalogClient fetches the product list from a fakestoreapi.com compatible API.
type CatalogClient struct {
	baseURL string
	client  *http.Client
}

// NewCatalogClient creates a client for baseURL. A nil httpClient means
// http.DefaultClient.
func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	return &CatalogClient{baseURL: baseURL, client: orDefault(httpClient)}
}

// FetchProducts returns the whole catalog in API order.
//
// Every item must carry a title, a price and a rating object. An empty
// title is still a title; only an absent or null one is rejected. One bad
// item rejects the whole response so nothing half-parsed reaches the
// database. Shape failures match both apperror.ErrUpstream and
// apperror.ErrValidation.
func (c *CatalogClient) FetchProducts(ctx context.Context) ([]CatalogItem, error) {
	var items []CatalogItem
	if err := getJSON(ctx, c.client, c.baseURL, "/products", &items); err != nil {
		return nil, apperror.Upstream("catalog", err)
	}

	for i, it := range items {
		if err := checkCatalogItem(i, it); err != nil {
			return nil, apperror.Upstream("catalog", err)
		}
	}

	return items, nil
}

func checkCatalogItem(i int, it CatalogItem) error {
	switch {
	case it.Title == nil:
		return apperror.ValidationFailed("title", fmt.Sprintf("item %d has no title", i))
	case it.Price == nil:
		return apperror.ValidationFailed("price", fmt.Sprintf("item %d (%q) has no price", i, *it.Title))
	case it.Rating == nil:
		return apperror.ValidationFailed("rating", fmt.Sprintf("item %d (%q) has no rating", i, *it.Title))
	}
	return nil
}
