package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionResolver maps a request to its client session ID, issuing a
// session cookie on first contact.
type SessionResolver struct {
	store *session.Store
}

func NewSessionResolver(store *session.Store) *SessionResolver {
	return &SessionResolver{store: store}
}

func (r *SessionResolver) ID(c *fiber.Ctx) (string, error) {
	sess, err := r.store.Get(c)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	id := sess.ID()

	// Save refreshes expiry and sets the cookie; sess is unusable afterwards.
	if err := sess.Save(); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	return id, nil
}
