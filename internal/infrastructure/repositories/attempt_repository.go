package repositories

import (
	"context"
	"errors"

	"github.com/you/learnsphere/domain"
)

// AttemptRepositoryImpl implements domain.AttemptRepository over one of the
// attempt list records. Two instances exist: login failures and OTP
// generation requests.
type AttemptRepositoryImpl struct {
	store  domain.Store
	record string
}

// NewLoginAttemptRepository tracks failed login attempts.
func NewLoginAttemptRepository(store domain.Store) domain.AttemptRepository {
	return &AttemptRepositoryImpl{store: store, record: LoginAttemptsRecord}
}

// NewOTPAttemptRepository tracks OTP generation requests.
func NewOTPAttemptRepository(store domain.Store) domain.AttemptRepository {
	return &AttemptRepositoryImpl{store: store, record: OTPAttemptsRecord}
}

func (r *AttemptRepositoryImpl) all(ctx context.Context) ([]domain.AttemptRecord, error) {
	var recs []domain.AttemptRecord
	err := r.store.Load(ctx, r.record, &recs)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Find implements domain.AttemptRepository. A missing record returns
// (nil, nil): no attempts on file.
func (r *AttemptRepositoryImpl) Find(ctx context.Context, email string) (*domain.AttemptRecord, error) {
	recs, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].Email == email {
			return &recs[i], nil
		}
	}
	return nil, nil
}

// Put implements domain.AttemptRepository.
func (r *AttemptRepositoryImpl) Put(ctx context.Context, rec *domain.AttemptRecord) error {
	recs, err := r.all(ctx)
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, a := range recs {
		if a.Email == rec.Email {
			continue
		}
		kept = append(kept, a)
	}
	kept = append(kept, *rec)
	return r.store.Save(ctx, r.record, kept)
}

// Clear implements domain.AttemptRepository.
func (r *AttemptRepositoryImpl) Clear(ctx context.Context, email string) error {
	recs, err := r.all(ctx)
	if err != nil {
		return err
	}
	kept := recs[:0]
	for _, a := range recs {
		if a.Email == email {
			continue
		}
		kept = append(kept, a)
	}
	return r.store.Save(ctx, r.record, kept)
}
