package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/slovko/tutor-admin/internal/service"
)

// Client talks to the hosted identity provider's user API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// Lookup resolves an opaque user id to profile data. Unknown ids map to
// service.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, userID string) (*service.Identity, error) {
	if userID == "" {
		return nil, service.ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+userID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, service.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, service.ErrUnauthorized
	default:
		return nil, fmt.Errorf("identity service unexpected status: %d", resp.StatusCode)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &service.Identity{
		Name:  body.Name,
		Email: body.Email,
		Image: body.Image,
	}, nil
}
