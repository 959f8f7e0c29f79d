package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/sakif/storefront-api/internal/apperror"
	"github.com/sakif/storefront-api/internal/model"
	"github.com/sakif/storefront-api/internal/upstream"
)

// Hand-written fakes for the repository and upstream interfaces. They keep
// everything in memory and record calls so tests can assert on what the
// service did, not only on what it returned.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepo struct {
	mu     sync.Mutex
	users  []*model.User
	calls  int
	failOn map[string]error // username → error to return
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err, ok := m.failOn[user.Username]; ok {
		return err
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperror.Conflict("user", "username", user.Username, nil)
		}
	}
	user.ID = int64(len(m.users) + 1)
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

func (m *mockUserRepo) CountUsers(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

type mockProductRepo struct {
	products  []model.Product
	batches   int
	createErr error
	queryErr  error
	lastTerm  string
}

func (m *mockProductRepo) CreateProducts(_ context.Context, products []*model.Product) (int, error) {
	m.batches++
	if m.createErr != nil {
		return 0, m.createErr
	}
	for _, p := range products {
		p.ID = int64(len(m.products) + 1)
		m.products = append(m.products, *p)
	}
	return len(products), nil
}

func (m *mockProductRepo) ListProducts(context.Context) ([]model.Product, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return append([]model.Product{}, m.products...), nil
}

func (m *mockProductRepo) GetProductByID(_ context.Context, id int64) (*model.Product, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	for _, p := range m.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, apperror.NotFound("product", strconv.FormatInt(id, 10))
}

func (m *mockProductRepo) SearchProducts(_ context.Context, term string) ([]model.Product, error) {
	m.lastTerm = term
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	out := []model.Product{}
	for _, p := range m.products {
		if strings.Contains(p.Title, term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeIdentities hands out identities user1, user2, ... in call order.
// Calls listed in fail return an upstream error instead.
type fakeIdentities struct {
	mu    sync.Mutex
	calls int
	fail  map[int]bool
	// names overrides the generated username for a given call number.
	names map[int]string
	// barrier, when > 0, holds every call until that many calls are in
	// flight at once, proving the fetches run concurrently.
	barrier int
	arrived chan struct{}
	release chan struct{}
}

func (f *fakeIdentities) FetchIdentity(ctx context.Context) (upstream.Identity, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.mu.Unlock()

	if f.barrier > 0 {
		f.arrived <- struct{}{}
		select {
		case <-f.release:
		case <-ctx.Done():
			return upstream.Identity{}, ctx.Err()
		}
	}

	if f.fail[n] {
		return upstream.Identity{}, apperror.Upstream("randomuser", errors.New("status 503"))
	}
	name := fmt.Sprintf("user%d", n)
	if override, ok := f.names[n]; ok {
		name = override
	}
	return upstream.Identity{Username: name, Password: "pw-" + name, Email: name + "@example.com"}, nil
}

type fakeCatalog struct {
	items []upstream.CatalogItem
	err   error
}

func (f *fakeCatalog) FetchProducts(context.Context) ([]upstream.CatalogItem, error) {
	return f.items, f.err
}

// fakeHasher marks passwords instead of running bcrypt.
type fakeHasher struct {
	err error
}

func (f fakeHasher) Hash(plaintext string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + plaintext, nil
}
