package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// Seeder runs the data seeding jobs. *service.SeedService implements it.
type Seeder interface {
	GenerateUsers(ctx context.Context) (int, error)
	GenerateProducts(ctx context.Context) (int, error)
}

// SeedHandler exposes the seeding jobs over HTTP.
//
// Both endpoints are plain GETs with side effects, kept that way for
// compatibility with existing callers. Repeating a call inserts again.
type SeedHandler struct {
	seeder Seeder
	logger *slog.Logger
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seeder Seeder, logger *slog.Logger) *SeedHandler {
	return &SeedHandler{seeder: seeder, logger: logger}
}

// SeedUsersResponse is the success body of GET /generate-users.
type SeedUsersResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleGenerateUsers inserts a batch of random users.
//
// HTTP: GET /generate-users
func (h *SeedHandler) HandleGenerateUsers(w http.ResponseWriter, r *http.Request) {
	n, err := h.seeder.GenerateUsers(r.Context())
	if err != nil {
		h.logger.Error("generate users failed",
			slog.Int("inserted", n),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Error generating users")
		return
	}

	writeJSON(w, http.StatusOK, SeedUsersResponse{
		Success: true,
		Message: fmt.Sprintf("Generated %d random users", n),
	})
}

// HandleGenerateProducts imports the third-party catalog.
//
// HTTP: GET /generate-products
func (h *SeedHandler) HandleGenerateProducts(w http.ResponseWriter, r *http.Request) {
	if _, err := h.seeder.GenerateProducts(r.Context()); err != nil {
		h.logger.Error("generate products failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Error generating products")
		return
	}

	writeText(w, "products generated")
}
