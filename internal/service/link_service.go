package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/generator"
	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// allocateRetries bounds how often a generated slug is redrawn after a
// collision. Collisions over a 64-symbol alphabet at length 7 are rare, so
// hitting the bound means something else is wrong.
const allocateRetries = 3

// LinkService implements slug allocation, redirection, ownership-checked
// deletion and per-user listing of short links.
type LinkService struct {
	links   storage.LinkStore
	baseURL string
}

// NewLinkService constructs a LinkService backed by the given store.
// baseURL is the public prefix of generated short URLs.
func NewLinkService(links storage.LinkStore, baseURL string) *LinkService {
	return &LinkService{
		links:   links,
		baseURL: baseURL,
	}
}

// ShortURL builds the absolute short URL for a slug.
func (s *LinkService) ShortURL(slug string) string {
	shortURL, err := url.JoinPath(s.baseURL, slug)
	if err != nil {
		return s.baseURL + "/" + slug
	}
	return shortURL
}

// Allocate creates a new short link for targetURL. Authenticated callers
// may claim a custom slug; anonymous callers always receive a generated
// one, whatever they pass. Two calls with the same target always create
// two links.
func (s *LinkService) Allocate(ctx context.Context, targetURL, ownerID, desiredSlug string) (*model.ShortLink, error) {
	if ownerID == "" {
		desiredSlug = ""
	}

	if desiredSlug != "" {
		return s.allocateCustom(ctx, targetURL, ownerID, desiredSlug)
	}
	return s.allocateGenerated(ctx, targetURL, ownerID)
}

func (s *LinkService) allocateCustom(ctx context.Context, targetURL, ownerID, slug string) (*model.ShortLink, error) {
	if !slugPattern.MatchString(slug) {
		return nil, apperr.BadRequest("invalid slug format: only letters, numbers, hyphens, and underscores are allowed")
	}

	link := newLink(targetURL, ownerID, slug)
	if err := s.links.SaveLink(ctx, link); err != nil {
		if errors.Is(err, storage.ErrSlugExists) {
			// A claimed custom slug is reported to the user, never retried.
			return nil, apperr.Conflict("this slug has already been claimed, please try another")
		}
		return nil, fmt.Errorf("error saving link: %w", err)
	}

	return link, nil
}

func (s *LinkService) allocateGenerated(ctx context.Context, targetURL, ownerID string) (*model.ShortLink, error) {
	for attempt := 0; attempt < allocateRetries; attempt++ {
		slug, err := generator.NewSlug(generator.SlugLength)
		if err != nil {
			return nil, fmt.Errorf("error generating slug: %w", err)
		}

		link := newLink(targetURL, ownerID, slug)
		err = s.links.SaveLink(ctx, link)
		if err == nil {
			return link, nil
		}
		if !errors.Is(err, storage.ErrSlugExists) {
			return nil, fmt.Errorf("error saving link: %w", err)
		}
		// Generated slug collided with an existing one; draw a fresh slug.
	}

	return nil, fmt.Errorf("could not allocate a unique slug after %d attempts", allocateRetries)
}

func newLink(targetURL, ownerID, slug string) *model.ShortLink {
	return &model.ShortLink{
		ID:        uuid.NewString(),
		TargetURL: targetURL,
		Slug:      slug,
		UserID:    ownerID,
		CreatedAt: time.Now(),
	}
}

// Resolve returns the target URL for a slug and counts the click. The
// lookup and the increment are one atomic store operation. A missing slug
// is an expected outcome reported via found=false, not an error.
func (s *LinkService) Resolve(ctx context.Context, slug string) (string, bool, error) {
	return s.links.ResolveSlug(ctx, slug)
}

// Delete removes a link after verifying the requester owns it. Anonymous
// links have no owner and can never be deleted through this path.
func (s *LinkService) Delete(ctx context.Context, linkID, requesterID string) error {
	link, err := s.links.GetLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("short URL not found")
		}
		return fmt.Errorf("error fetching link: %w", err)
	}

	if link.UserID == "" || link.UserID != requesterID {
		return apperr.Forbidden("you are not authorized to delete this URL")
	}

	if err := s.links.DeleteLink(ctx, linkID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("short URL not found")
		}
		return fmt.Errorf("error deleting link: %w", err)
	}

	return nil
}

// ListForUser returns the user's links with absolute short URLs, newest
// first.
func (s *LinkService) ListForUser(ctx context.Context, userID string) ([]model.UserLink, error) {
	links, err := s.links.GetLinksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing user links: %w", err)
	}

	result := make([]model.UserLink, 0, len(links))
	for _, link := range links {
		result = append(result, model.UserLink{
			ID:        link.ID,
			ShortURL:  s.ShortURL(link.Slug),
			TargetURL: link.TargetURL,
			Clicks:    link.Clicks,
		})
	}

	return result, nil
}
