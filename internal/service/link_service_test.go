package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/generator"
	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
	"github.com/Naman-Bagoria17/shortify/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLinkStore struct {
	saveFunc      func(link *model.ShortLink) error
	resolveFunc   func(slug string) (string, bool, error)
	getByIDFunc   func(id string) (*model.ShortLink, error)
	deleteFunc    func(id string) error
	getByUserFunc func(userID string) ([]*model.ShortLink, error)
	saveCalls     int
}

func (m *mockLinkStore) SaveLink(ctx context.Context, link *model.ShortLink) error {
	m.saveCalls++
	if m.saveFunc != nil {
		return m.saveFunc(link)
	}
	return nil
}

func (m *mockLinkStore) ResolveSlug(ctx context.Context, slug string) (string, bool, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(slug)
	}
	return "", false, nil
}

func (m *mockLinkStore) GetLinkByID(ctx context.Context, id string) (*model.ShortLink, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(id)
	}
	return nil, storage.ErrNotFound
}

func (m *mockLinkStore) DeleteLink(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(id)
	}
	return nil
}

func (m *mockLinkStore) GetLinksByUser(ctx context.Context, userID string) ([]*model.ShortLink, error) {
	if m.getByUserFunc != nil {
		return m.getByUserFunc(userID)
	}
	return nil, nil
}

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestLinkService_Allocate_Generated(t *testing.T) {
	store := &mockLinkStore{}
	svc := NewLinkService(store, "http://localhost:8080")

	link, err := svc.Allocate(context.Background(), "https://example.com/long/path", "", "")
	require.NoError(t, err)

	assert.Len(t, link.Slug, generator.SlugLength)
	assert.Regexp(t, urlSafe, link.Slug)
	assert.Equal(t, "https://example.com/long/path", link.TargetURL)
	assert.Empty(t, link.UserID)
	assert.NotEmpty(t, link.ID)
	assert.Equal(t, 1, store.saveCalls)
}

func TestLinkService_Allocate_AnonymousIgnoresCustomSlug(t *testing.T) {
	store := &mockLinkStore{}
	svc := NewLinkService(store, "http://localhost:8080")

	// No owner: the desired slug must be ignored and a slug generated.
	link, err := svc.Allocate(context.Background(), "https://example.com", "", "my-brand")
	require.NoError(t, err)
	assert.NotEqual(t, "my-brand", link.Slug)
	assert.Len(t, link.Slug, generator.SlugLength)
}

func TestLinkService_Allocate_CustomSlug(t *testing.T) {
	store := &mockLinkStore{}
	svc := NewLinkService(store, "http://localhost:8080")

	link, err := svc.Allocate(context.Background(), "https://example.com", "user-1", "my_Brand-42")
	require.NoError(t, err)
	assert.Equal(t, "my_Brand-42", link.Slug)
	assert.Equal(t, "user-1", link.UserID)
}

func TestLinkService_Allocate_InvalidSlugFormat(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{name: "spaces", slug: "my slug"},
		{name: "slash", slug: "a/b"},
		{name: "unicode", slug: "héllo"},
		{name: "percent", slug: "a%20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockLinkStore{}
			svc := NewLinkService(store, "http://localhost:8080")

			_, err := svc.Allocate(context.Background(), "https://example.com", "user-1", tt.slug)
			require.Error(t, err)

			appErr, ok := apperr.From(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
			assert.Zero(t, store.saveCalls, "invalid slug must not reach the store")
		})
	}
}

func TestLinkService_Allocate_CustomSlugConflict(t *testing.T) {
	store := &mockLinkStore{
		saveFunc: func(link *model.ShortLink) error {
			return storage.ErrSlugExists
		},
	}
	svc := NewLinkService(store, "http://localhost:8080")

	_, err := svc.Allocate(context.Background(), "https://example.com", "user-1", "taken")
	require.Error(t, err)

	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, appErr.Kind)
	assert.Equal(t, 1, store.saveCalls, "a claimed custom slug must not be retried")
}

func TestLinkService_Allocate_GeneratedSlugConflictRetries(t *testing.T) {
	calls := 0
	store := &mockLinkStore{
		saveFunc: func(link *model.ShortLink) error {
			calls++
			if calls == 1 {
				return storage.ErrSlugExists
			}
			return nil
		},
	}
	svc := NewLinkService(store, "http://localhost:8080")

	link, err := svc.Allocate(context.Background(), "https://example.com", "", "")
	require.NoError(t, err)
	assert.Len(t, link.Slug, generator.SlugLength)
	assert.Equal(t, 2, calls)
}

func TestLinkService_Allocate_GeneratedSlugExhaustsRetries(t *testing.T) {
	store := &mockLinkStore{
		saveFunc: func(link *model.ShortLink) error {
			return storage.ErrSlugExists
		},
	}
	svc := NewLinkService(store, "http://localhost:8080")

	_, err := svc.Allocate(context.Background(), "https://example.com", "", "")
	require.Error(t, err)
	assert.Equal(t, allocateRetries, store.saveCalls)
}

func TestLinkService_AllocateResolve_RoundTrip(t *testing.T) {
	store := memory.NewStorage()
	svc := NewLinkService(store, "http://localhost:8080")
	ctx := context.Background()

	link, err := svc.Allocate(ctx, "https://example.com/exact?q=1", "", "")
	require.NoError(t, err)

	target, found, err := svc.Resolve(ctx, link.Slug)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "https://example.com/exact?q=1", target, "target must come back unmodified")
}

func TestLinkService_Resolve_Miss(t *testing.T) {
	svc := NewLinkService(memory.NewStorage(), "http://localhost:8080")

	target, found, err := svc.Resolve(context.Background(), "never-allocated")
	require.NoError(t, err, "a miss is not an error")
	assert.False(t, found)
	assert.Empty(t, target)
}

func TestLinkService_Delete(t *testing.T) {
	owned := &model.ShortLink{ID: "l1", Slug: "abc", UserID: "owner"}
	anonymous := &model.ShortLink{ID: "l2", Slug: "anon"}

	tests := []struct {
		name        string
		linkID      string
		requesterID string
		stored      *model.ShortLink
		wantKind    apperr.Kind
		wantErr     bool
	}{
		{
			name:        "owner deletes own link",
			linkID:      "l1",
			requesterID: "owner",
			stored:      owned,
			wantErr:     false,
		},
		{
			name:        "other user is forbidden",
			linkID:      "l1",
			requesterID: "intruder",
			stored:      owned,
			wantErr:     true,
			wantKind:    apperr.KindForbidden,
		},
		{
			name:        "anonymous link can never be deleted",
			linkID:      "l2",
			requesterID: "owner",
			stored:      anonymous,
			wantErr:     true,
			wantKind:    apperr.KindForbidden,
		},
		{
			name:        "unknown link id",
			linkID:      "missing",
			requesterID: "owner",
			stored:      nil,
			wantErr:     true,
			wantKind:    apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockLinkStore{
				getByIDFunc: func(id string) (*model.ShortLink, error) {
					if tt.stored != nil && tt.stored.ID == id {
						return tt.stored, nil
					}
					return nil, storage.ErrNotFound
				},
			}
			svc := NewLinkService(store, "http://localhost:8080")

			err := svc.Delete(context.Background(), tt.linkID, tt.requesterID)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			appErr, ok := apperr.From(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, appErr.Kind)
		})
	}
}

func TestLinkService_ListForUser(t *testing.T) {
	store := &mockLinkStore{
		getByUserFunc: func(userID string) ([]*model.ShortLink, error) {
			return []*model.ShortLink{
				{ID: "l1", Slug: "abc1234", TargetURL: "https://example.com", Clicks: 3, UserID: userID},
			}, nil
		},
	}
	svc := NewLinkService(store, "http://localhost:8080")

	links, err := svc.ListForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "http://localhost:8080/abc1234", links[0].ShortURL)
	assert.Equal(t, "https://example.com", links[0].TargetURL)
	assert.Equal(t, int64(3), links[0].Clicks)
}
