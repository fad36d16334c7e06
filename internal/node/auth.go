package node

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAuthRequired - a query arrived on a connection that has not logged in.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidCredentials - username or password mismatch.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Credentials - the root user allowed to query the node.
type Credentials struct {
	Username     string
	PasswordHash []byte
}

// NewCredentials hashes the password with bcrypt. Empty username disables authentication.
func NewCredentials(username, password string) (*Credentials, error) {
	if username == "" {
		return nil, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash root password: %w", err)
	}

	return &Credentials{Username: username, PasswordHash: hash}, nil
}

func (c *Credentials) verify(username, password string) error {
	if username != c.Username {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}
