package auth

import (
	"context"

	"github.com/Hariksh/Expense-tracker/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction lets the service layer swap auth methods (password,
// OAuth, etc.) without changing.
type Authenticator interface {
	// Register creates a new user account with the given credential.
	Register(ctx context.Context, name, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user
	// if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
