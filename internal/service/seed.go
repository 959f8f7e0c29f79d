// Package service contains the business logic layer of the application.
//
//	Handler (HTTP) → Service (this package) → Repository (SQLite)
//	                                         ↘ upstream (third-party APIs)
//
// Services accept and return plain Go values and apperror kinds. They never
// see an http.Request, and they depend on interfaces so tests can swap in
// fakes for the database and the third-party APIs.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/sakif/storefront-api/internal/apperror"
	"github.com/sakif/storefront-api/internal/model"
	"github.com/sakif/storefront-api/internal/repository"
	"github.com/sakif/storefront-api/internal/upstream"
)

// RandomUserBatchSize is how many identities one user seeding run fetches.
const RandomUserBatchSize = 5

// IdentitySource yields one generated identity per call.
// *upstream.RandomUserClient implements it.
type IdentitySource interface {
	FetchIdentity(ctx context.Context) (upstream.Identity, error)
}

// CatalogSource yields the full third-party product catalog.
// *upstream.CatalogClient implements it.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]upstream.CatalogItem, error)
}

// PasswordHasher turns a plaintext password into its stored form.
// *auth.PasswordService implements it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// SeedService populates the local store from the third-party APIs.
//
// Concurrent runs are not coordinated: two simultaneous product seeds
// insert the catalog twice, and two user seeds may interleave their rows.
type SeedService struct {
	users      repository.UserRepository
	products   repository.ProductRepository
	identities IdentitySource
	catalog    CatalogSource
	passwords  PasswordHasher
	logger     *slog.Logger
}

// NewSeedService creates a SeedService. All dependencies are injected.
func NewSeedService(
	users repository.UserRepository,
	products repository.ProductRepository,
	identities IdentitySource,
	catalog CatalogSource,
	passwords PasswordHasher,
	logger *slog.Logger,
) *SeedService {
	return &SeedService{
		users:      users,
		products:   products,
		identities: identities,
		catalog:    catalog,
		passwords:  passwords,
		logger:     logger,
	}
}

// GenerateUsers fetches RandomUserBatchSize identities and stores them as
// non-admin users. It returns the number of users inserted.
//
// FAN-OUT / FAN-IN:
// All fetches run concurrently in an errgroup. Nothing is written until
// every fetch (and password hash) has finished: if any one fails, the run
// aborts with that error and zero rows are inserted.
//
// SEQUENTIAL INSERTS:
// After the barrier, users are inserted one statement at a time in fetch
// order. The first failed insert (a duplicate username, say) stops the
// loop. Users inserted before it stay committed; there is no rollback.
func (s *SeedService) GenerateUsers(ctx context.Context) (int, error) {
	// A run, once started, finishes even if the HTTP caller disconnects.
	ctx = context.WithoutCancel(ctx)
	log := s.logger.With(slog.String("job", "generate-users"), slog.String("run", xid.New().String()))

	users := make([]*model.User, RandomUserBatchSize)

	g, gctx := errgroup.WithContext(ctx)
	for i := range users {
		i := i
		g.Go(func() error {
			id, err := s.identities.FetchIdentity(gctx)
			if err != nil {
				return fmt.Errorf("fetching identity %d: %w", i+1, err)
			}
			hash, err := s.passwords.Hash(id.Password)
			if err != nil {
				return fmt.Errorf("hashing password for %q: %w", id.Username, err)
			}
			users[i] = &model.User{
				Username: id.Username,
				Email:    id.Email,
				Password: hash,
				IsAdmin:  0,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("fetching random users failed, nothing inserted", errAttrs(err)...)
		return 0, fmt.Errorf("generating users: %w", err)
	}

	inserted := 0
	for i, u := range users {
		if err := s.users.CreateUser(ctx, u); err != nil {
			log.Error("inserting random user failed",
				slog.String("username", u.Username),
				slog.Int("position", i+1),
				slog.Int("alreadyInserted", inserted),
				slog.String("error", err.Error()),
			)
			return inserted, fmt.Errorf("generating users: inserting user %d of %d: %w", i+1, len(users), err)
		}
		inserted++
	}

	log.Info("inserted random users", slog.Int("count", inserted))
	return inserted, nil
}

// GenerateProducts fetches the third-party catalog and stores it in one
// batch. It returns the number of products inserted.
//
// A failed fetch or malformed body aborts before any write. The batch
// itself is all-or-nothing.
func (s *SeedService) GenerateProducts(ctx context.Context) (int, error) {
	ctx = context.WithoutCancel(ctx)
	log := s.logger.With(slog.String("job", "generate-products"), slog.String("run", xid.New().String()))

	items, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		log.Error("fetching products failed", errAttrs(err)...)
		return 0, fmt.Errorf("generating products: %w", err)
	}

	n, err := s.products.CreateProducts(ctx, flattenCatalog(items))
	if err != nil {
		log.Error("inserting products failed", slog.Int("fetched", len(items)), slog.String("error", err.Error()))
		return 0, fmt.Errorf("generating products: %w", err)
	}

	log.Info("inserted products", slog.Int("count", n))
	return n, nil
}

// errAttrs is the log attributes for err, plus the offending field when an
// apperror names one.
func errAttrs(err error) []any {
	attrs := []any{slog.String("error", err.Error())}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Field != "" {
		attrs = append(attrs, slog.String("field", appErr.Field))
	}
	return attrs
}

// flattenCatalog maps catalog items to product rows, lifting the nested
// rating object into the rating_rate and rating_count columns.
func flattenCatalog(items []upstream.CatalogItem) []*model.Product {
	products := make([]*model.Product, 0, len(items))
	for _, it := range items {
		p := &model.Product{
			Description: it.Description,
			Image:       it.Image,
			Category:    it.Category,
		}
		if it.Title != nil {
			p.Title = *it.Title
		}
		if it.Price != nil {
			p.Price = *it.Price
		}
		if it.Rating != nil {
			p.RatingRate = it.Rating.Rate
			p.RatingCount = it.Rating.Count
		}
		products = append(products, p)
	}
	return products
}
