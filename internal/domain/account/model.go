package account

import "context"

// User is an API account.
type User struct {
	ID             uint
	Email          string
	HashedPassword string
}

// Token is the login response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Repository persists users.
type Repository interface {
	// FindByEmail returns nil, nil when no user matches.
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// TokenIssuer signs and checks access tokens whose subject is the user email.
type TokenIssuer interface {
	Issue(subject string) (string, error)
	Subject(token string) (string, error)
}
