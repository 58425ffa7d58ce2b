package service

import (
	"context"
	"encoding/hex"
	"time"

	"commentboard/api/internal/models"
	"commentboard/api/internal/repository"
)

// In-memory store fakes. They mirror the repository semantics the services
// rely on: sentinel not-found errors, upsert-by-key, idempotent deletes.

type fakeUserStore struct {
	users map[string]models.User // by ID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) SetResetToken(_ context.Context, id string, token string, expiry time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	f.users[id] = user
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id string, passwordHash []byte) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	f.users[id] = user
	return nil
}

type fakeSessionStore struct {
	sessions map[string]models.Session // by refresh hash
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]models.Session{}}
}

func (f *fakeSessionStore) Create(_ context.Context, session models.Session) error {
	f.sessions[hex.EncodeToString(session.RefreshTokenHash)] = session
	return nil
}

func (f *fakeSessionStore) FindByRefreshHash(_ context.Context, refreshHash []byte) (models.Session, error) {
	session, ok := f.sessions[hex.EncodeToString(refreshHash)]
	if !ok {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionStore) DeleteAllForUser(_ context.Context, userID string) error {
	for key, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, key)
		}
	}
	return nil
}

func (f *fakeSessionStore) DeleteByRefreshHash(_ context.Context, refreshHash []byte) error {
	delete(f.sessions, hex.EncodeToString(refreshHash))
	return nil
}

type fakePermissionStore struct {
	sets map[string]models.PermissionSet
}

func newFakePermissionStore() *fakePermissionStore {
	return &fakePermissionStore{sets: map[string]models.PermissionSet{}}
}

func (f *fakePermissionStore) Get(_ context.Context, userID string) (models.PermissionSet, error) {
	set, ok := f.sets[userID]
	if !ok {
		return models.PermissionSet{}, nil
	}
	return set, nil
}

func (f *fakePermissionStore) Set(_ context.Context, userID string, set models.PermissionSet) error {
	f.sets[userID] = set
	return nil
}

type fakeCommentStore struct {
	comments []models.Comment // newest first
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	comment.CreatedAt = time.Now()
	f.comments = append([]models.Comment{*comment}, f.comments...)
	return nil
}

func (f *fakeCommentStore) ListNewestFirst(_ context.Context) ([]models.Comment, error) {
	return f.comments, nil
}

func (f *fakeCommentStore) GetByID(_ context.Context, id string) (models.Comment, error) {
	for _, comment := range f.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return models.Comment{}, repository.ErrCommentNotFound
}

func (f *fakeCommentStore) Delete(_ context.Context, id string) error {
	for i, comment := range f.comments {
		if comment.ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrCommentNotFound
}
