package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// AuthService implements signup, login, and token issuance.
type AuthService interface {
	// Signup creates an account and returns it with a signed bearer token.
	// An empty role defaults to student.
	Signup(ctx context.Context, name, email, password string, role domain.Role) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
