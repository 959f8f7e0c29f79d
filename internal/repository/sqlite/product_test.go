package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/storefront-api/internal/apperror"
	"github.com/sakif/storefront-api/internal/model"
)

func ptr[T any](v T) *T { return &v }

// testProducts is a small catalog with one product that has no optional
// fields at all.
func testProducts() []*model.Product {
	return []*model.Product{
		{
			Title:       "Blue Shirt",
			Description: ptr("Cotton, slim fit"),
			Price:       19.99,
			Image:       ptr("https://img.example.com/1.png"),
			Category:    ptr("men's clothing"),
			RatingRate:  ptr(4.1),
			RatingCount: ptr(int64(259)),
		},
		{
			Title:       "Gold Ring",
			Description: ptr("Solid gold band"),
			Price:       695,
			Category:    ptr("jewelery"),
			RatingRate:  ptr(4.6),
			RatingCount: ptr(int64(400)),
		},
		{
			Title:    "SSD 1TB",
			Price:    109,
			Category: ptr("electronics"),
		},
		{
			Title: "Mystery Box",
			Price: 5,
		},
	}
}

func seedProducts(t *testing.T, db *DB) []*model.Product {
	t.Helper()
	products := testProducts()
	_, err := db.CreateProducts(context.Background(), products)
	require.NoError(t, err, "failed to seed products")
	return products
}

func titles(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func TestCreateProducts(t *testing.T) {
	db := newTestDB(t)
	products := testProducts()

	n, err := db.CreateProducts(context.Background(), products)
	require.NoError(t, err)
	assert.Equal(t, len(products), n)

	for i, p := range products {
		assert.NotZero(t, p.ID, "product %d has no ID", i)
	}

	found, err := db.GetProductByID(context.Background(), products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, *products[0], *found)
}

func TestCreateProducts_Empty(t *testing.T) {
	db := newTestDB(t)

	n, err := db.CreateProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCreateProducts_BatchIsAtomic(t *testing.T) {
	db := newTestDB(t)

	// The trigger rejects the third row of the batch; nothing from the
	// batch may remain afterwards.
	_, err := db.conn.Exec(`CREATE TRIGGER reject_broken BEFORE INSERT ON products
		WHEN NEW.title = 'broken' BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	batch := testProducts()
	batch[2].Title = "broken"

	_, err = db.CreateProducts(context.Background(), batch)
	require.Error(t, err)

	all, err := db.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	for _, p := range batch {
		assert.Zero(t, p.ID, "IDs must not be set when the batch fails")
	}
}

func TestListProducts(t *testing.T) {
	db := newTestDB(t)

	empty, err := db.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty, "empty result should be [] not nil")
	assert.Empty(t, empty)

	seedProducts(t, db)

	all, err := db.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Blue Shirt", "Gold Ring", "SSD 1TB", "Mystery Box"}, titles(all))
}

func TestListProducts_NullColumns(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)

	all, err := db.ListProducts(context.Background())
	require.NoError(t, err)

	box := all[3]
	assert.Nil(t, box.Description)
	assert.Nil(t, box.Image)
	assert.Nil(t, box.Category)
	assert.Nil(t, box.RatingRate)
	assert.Nil(t, box.RatingCount)
}

func TestGetProductByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)

	_, err := db.GetProductByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "error = %v, want ErrNotFound", err)
}

func TestSearchProducts(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "title match", term: "Shirt", want: []string{"Blue Shirt"}},
		{name: "case insensitive ascii", term: "shirt", want: []string{"Blue Shirt"}},
		{name: "description match", term: "gold band", want: []string{"Gold Ring"}},
		{name: "category match", term: "electronics", want: []string{"SSD 1TB"}},
		{name: "matches several", term: "o", want: []string{"Blue Shirt", "Gold Ring", "SSD 1TB", "Mystery Box"}},
		{name: "no match", term: "bicycle", want: []string{}},
		{name: "wildcard keeps LIKE meaning", term: "S_D", want: []string{"SSD 1TB"}},
		{name: "quote is just data", term: "' OR 1=1 --", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.SearchProducts(context.Background(), tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestSearchProducts_EmptyTermEqualsList(t *testing.T) {
	db := newTestDB(t)
	seedProducts(t, db)

	all, err := db.ListProducts(context.Background())
	require.NoError(t, err)

	found, err := db.SearchProducts(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, all, found)
}
