package draft

import (
	"context"
	"errors"
	"fmt"

	"signup/pkg/platform/kv"
	"signup/pkg/platform/sentinel"
)

// Identity holds the draft session id, the optional auth token and the last
// email used to sign in. Each lives under its own key.
type Identity struct {
	kv kv.Store
}

func NewIdentity(store kv.Store) *Identity {
	return &Identity{kv: store}
}

func (i *Identity) get(ctx context.Context, key string) (string, error) {
	v, err := i.kv.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

// SessionID returns "" when no session is held.
func (i *Identity) SessionID(ctx context.Context) (string, error) {
	return i.get(ctx, KeySessionID)
}

func (i *Identity) SetSessionID(ctx context.Context, sessionID string) error {
	return i.kv.Set(ctx, KeySessionID, sessionID)
}

func (i *Identity) AuthToken(ctx context.Context) (string, error) {
	return i.get(ctx, KeyAuthToken)
}

func (i *Identity) SetAuthToken(ctx context.Context, token string) error {
	return i.kv.Set(ctx, KeyAuthToken, token)
}

func (i *Identity) LastLoginEmail(ctx context.Context) (string, error) {
	return i.get(ctx, KeyLastLoginEmail)
}

func (i *Identity) SetLastLoginEmail(ctx context.Context, email string) error {
	return i.kv.Set(ctx, KeyLastLoginEmail, email)
}

// Clear forgets the session id, auth token and last login email together.
func (i *Identity) Clear(ctx context.Context) error {
	return errors.Join(
		i.kv.Remove(ctx, KeySessionID),
		i.kv.Remove(ctx, KeyAuthToken),
		i.kv.Remove(ctx, KeyLastLoginEmail),
	)
}
