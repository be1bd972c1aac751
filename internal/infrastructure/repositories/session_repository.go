package repositories

import (
	"context"
	"errors"

	"github.com/you/learnsphere/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository. The session
// record holds a single object: the one current session per profile, which
// a new login overwrites.
type SessionRepositoryImpl struct {
	store domain.Store
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(store domain.Store) domain.SessionRepository {
	return &SessionRepositoryImpl{store: store}
}

// Put implements domain.SessionRepository.
func (r *SessionRepositoryImpl) Put(ctx context.Context, session *domain.Session) error {
	return r.store.Save(ctx, SessionRecord, session)
}

// Current implements domain.SessionRepository. Expiry is not checked here;
// the account service evaluates it lazily against its clock.
func (r *SessionRepositoryImpl) Current(ctx context.Context) (*domain.Session, error) {
	var session domain.Session
	err := r.store.Load(ctx, SessionRecord, &session)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete implements domain.SessionRepository.
func (r *SessionRepositoryImpl) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, SessionRecord)
}
