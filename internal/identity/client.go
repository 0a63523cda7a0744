package identity

import (
	"context"

	"github.com/hydrosys/storefront/internal/backend"
)

// Registration is the payload for the register endpoint. The backend wants
// the email under "correo".
type Registration struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
	Password  string `json:"password"`
	Phone     string `json:"telefono,omitempty"`
	Role      string `json:"rol"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse covers every shape the auth backend has answered with: the
// user id under "userId" or "id", the email under "correo" or "email", and
// the role as a free string tag.
type authResponse struct {
	Token     string `json:"token"`
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Correo    string `json:"correo"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	RoleTag   string `json:"rol"`
}

// Client wraps the auth endpoints. It returns the normalized canonical User
// plus the bearer token; persistence is the session store's job.
type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Login(ctx context.Context, email, password string) (User, string, error) {
	var resp authResponse
	if err := c.api.Post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return User{}, "", err
	}
	return resp.normalize(Registration{}), resp.Token, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (User, string, error) {
	var resp authResponse
	if err := c.api.Post(ctx, "/api/auth/register", reg, &resp); err != nil {
		return User{}, "", err
	}
	return resp.normalize(reg), resp.Token, nil
}

// normalize maps whatever the backend answered into the canonical identity.
// For registration, fields the backend omitted fall back to what was sent.
func (r authResponse) normalize(sent Registration) User {
	u := User{
		ID:        r.UserID,
		Email:     r.Correo,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
	if u.ID == 0 {
		u.ID = r.ID
	}
	if u.Email == "" {
		u.Email = r.Email
	}
	if u.Email == "" {
		u.Email = sent.Email
	}
	if u.FirstName == "" {
		u.FirstName = sent.FirstName
	}
	if u.FirstName == "" {
		u.FirstName = "Usuario"
	}
	if u.LastName == "" {
		u.LastName = sent.LastName
	}
	tag := r.RoleTag
	if tag == "" {
		tag = sent.Role
	}
	u.Role = ParseRole(tag)
	return u
}
