package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
)

// Storage is an in-memory implementation of storage.LinkStore and
// storage.UserStore for development and tests. All methods are safe for
// concurrent use; ResolveSlug increments clicks under the write lock so
// concurrent redirects never lose updates.
type Storage struct {
	mutex sync.RWMutex

	linksByID    map[string]*model.ShortLink
	linksBySlug  map[string]*model.ShortLink
	usersByID    map[string]*model.User
	usersByEmail map[string]*model.User
}

// NewStorage creates an empty in-memory storage instance.
func NewStorage() *Storage {
	return &Storage{
		linksByID:    make(map[string]*model.ShortLink),
		linksBySlug:  make(map[string]*model.ShortLink),
		usersByID:    make(map[string]*model.User),
		usersByEmail: make(map[string]*model.User),
	}
}

// SaveLink stores a new short link, rejecting duplicate slugs.
func (s *Storage) SaveLink(ctx context.Context, link *model.ShortLink) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.linksBySlug[link.Slug]; exists {
		return storage.ErrSlugExists
	}

	stored := *link
	s.linksByID[stored.ID] = &stored
	s.linksBySlug[stored.Slug] = &stored
	return nil
}

// ResolveSlug returns the target URL for a slug and bumps its click count.
func (s *Storage) ResolveSlug(ctx context.Context, slug string) (string, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, found := s.linksBySlug[slug]
	if !found {
		return "", false, nil
	}

	link.Clicks++
	return link.TargetURL, true, nil
}

// GetLinkByID returns a copy of the link with the given id.
func (s *Storage) GetLinkByID(ctx context.Context, id string) (*model.ShortLink, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	link, found := s.linksByID[id]
	if !found {
		return nil, storage.ErrNotFound
	}

	clone := *link
	return &clone, nil
}

// DeleteLink removes the link with the given id.
func (s *Storage) DeleteLink(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	link, found := s.linksByID[id]
	if !found {
		return storage.ErrNotFound
	}

	delete(s.linksByID, id)
	delete(s.linksBySlug, link.Slug)
	return nil
}

// GetLinksByUser returns all links owned by the user, newest first.
func (s *Storage) GetLinksByUser(ctx context.Context, userID string) ([]*model.ShortLink, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var links []*model.ShortLink
	for _, link := range s.linksByID {
		if link.UserID == userID {
			clone := *link
			links = append(links, &clone)
		}
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}

// CreateUser stores a new user, rejecting duplicate emails.
func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.usersByEmail[user.Email]; exists {
		return storage.ErrEmailExists
	}

	stored := *user
	s.usersByID[stored.ID] = &stored
	s.usersByEmail[stored.Email] = &stored
	return nil
}

// GetUserByEmail returns the user registered with the given email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	user, found := s.usersByEmail[email]
	if !found {
		return nil, storage.ErrNotFound
	}

	clone := *user
	return &clone, nil
}

// GetUserByID returns the user with the given id.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	user, found := s.usersByID[id]
	if !found {
		return nil, storage.ErrNotFound
	}

	clone := *user
	return &clone, nil
}
