package upstream

import (
	"context"
	"errors"
	"net/http"

	"github.com/sakif/storefront-api/internal/apperror"
)

// DefaultRandomUserURL is the public random identity generator.
const DefaultRandomUserURL = "https://randomuser.me"

// Identity is one generated person, reduced to the fields a user row needs.
type Identity struct {
	Username string
	Password string
	Email    string
}

// randomUserResponse mirrors the part of GET /api/ we read. The API returns
// far more (name, location, picture...); everything else is ignored.
type randomUserResponse struct {
	Results []struct {
		Email string `json:"email"`
		Login struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"login"`
	} `json:"results"`
}

// RandomUserClient fetches identities from a randomuser.me compatible API.
type RandomUserClient struct {
	baseURL string
	client  *http.Client
}

// NewRandomUserClient creates a client for baseURL. A nil httpClient means
// http.DefaultClient.
func NewRandomUserClient(baseURL string, httpClient *http.Client) *RandomUserClient {
	return &RandomUserClient{baseURL: baseURL, client: orDefault(httpClient)}
}

// FetchIdentity asks for one identity. Each call yields exactly one; a body
// with no results, or a result missing username, password or email, is
// treated as malformed.
func (c *RandomUserClient) FetchIdentity(ctx context.Context) (Identity, error) {
	var body randomUserResponse
	if err := getJSON(ctx, c.client, c.baseURL, "/api/", &body); err != nil {
		return Identity{}, apperror.Upstream("randomuser", err)
	}

	if len(body.Results) == 0 {
		return Identity{}, apperror.Upstream("randomuser", errors.New("response has no results"))
	}

	r := body.Results[0]
	id := Identity{
		Username: r.Login.Username,
		Password: r.Login.Password,
		Email:    r.Email,
	}
	switch {
	case id.Username == "":
		return Identity{}, apperror.Upstream("randomuser", apperror.ValidationFailed("login.username", "result has no username"))
	case id.Password == "":
		return Identity{}, apperror.Upstream("randomuser", apperror.ValidationFailed("login.password", "result has no password"))
	case id.Email == "":
		return Identity{}, apperror.Upstream("randomuser", apperror.ValidationFailed("email", "result has no email"))
	}

	return id, nil
}
