package app

import (
	"context"
	"sync"

	"github.com/leadmarket/leadmarket/pkg/apis/models"
	"github.com/leadmarket/leadmarket/pkg/storage"
)

// fakeUserStore is an in-memory UserStore for handler tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User

	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return storage.ErrDuplicate
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

// fakeLeadStore is an in-memory LeadStore for handler tests.
type fakeLeadStore struct {
	mu    sync.Mutex
	leads map[string]*models.Lead
	users *fakeUserStore
}

func newFakeLeadStore(users *fakeUserStore) *fakeLeadStore {
	return &fakeLeadStore{leads: map[string]*models.Lead{}, users: users}
}

func (f *fakeLeadStore) Create(_ context.Context, lead *models.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *lead
	f.leads[lead.ID] = &copied
	return nil
}

func (f *fakeLeadStore) GetByID(_ context.Context, id string) (*models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if lead, ok := f.leads[id]; ok && lead.DeletedAt == nil {
		return lead, nil
	}
	return nil, storage.ErrNotFound
}

func (f *fakeLeadStore) ListByOwner(_ context.Context, userID string) ([]models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	leads := []models.Lead{}
	for _, lead := range f.leads {
		if lead.UserID == userID && lead.DeletedAt == nil {
			leads = append(leads, *lead)
		}
	}
	return leads, nil
}

func (f *fakeLeadStore) ListWithOwners(ctx context.Context) ([]models.LeadWithOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	leads := []models.LeadWithOwner{}
	for _, lead := range f.leads {
		if lead.DeletedAt != nil {
			continue
		}
		withOwner := models.LeadWithOwner{Lead: *lead}
		if f.users != nil {
			if owner, err := f.users.GetByID(ctx, lead.UserID); err == nil {
				withOwner.OwnerUsername = owner.Username
				withOwner.OwnerEmail = owner.Email
			}
		}
		leads = append(leads, withOwner)
	}
	return leads, nil
}

func (f *fakeLeadStore) Update(_ context.Context, lead *models.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.leads[lead.ID]
	if !ok || existing.DeletedAt != nil || existing.UserID != lead.UserID {
		return storage.ErrNotFound
	}
	lead.CreatedAt = existing.CreatedAt
	copied := *lead
	f.leads[lead.ID] = &copied
	return nil
}

func (f *fakeLeadStore) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.leads[id]
	if !ok || existing.DeletedAt != nil || existing.UserID != userID {
		return storage.ErrNotFound
	}
	now := existing.UpdatedAt
	existing.DeletedAt = &now
	return nil
}
