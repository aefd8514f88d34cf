package storage

import (
	"context"
	"errors"

	"github.com/Naman-Bagoria17/shortify/internal/model"
)

var (
	// ErrSlugExists is returned when saving a link whose slug is already taken.
	ErrSlugExists = errors.New("slug already exists")
	// ErrEmailExists is returned when creating a user with a registered email.
	ErrEmailExists = errors.New("email already registered")
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// LinkStore persists short links. Slug uniqueness is enforced by the store;
// a violation surfaces as ErrSlugExists, never as a silent overwrite.
type LinkStore interface {
	SaveLink(ctx context.Context, link *model.ShortLink) error

	// ResolveSlug looks up a slug and increments its click counter in a
	// single atomic operation. A miss is reported via found=false, not an
	// error.
	ResolveSlug(ctx context.Context, slug string) (targetURL string, found bool, err error)

	GetLinkByID(ctx context.Context, id string) (*model.ShortLink, error)
	DeleteLink(ctx context.Context, id string) error
	GetLinksByUser(ctx context.Context, userID string) ([]*model.ShortLink, error)
}

// UserStore persists user accounts. Email uniqueness is enforced by the
// store; a violation surfaces as ErrEmailExists.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}
