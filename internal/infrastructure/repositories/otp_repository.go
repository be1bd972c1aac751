package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/you/learnsphere/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository over a flat OTP list.
type OTPRepositoryImpl struct {
	store domain.Store
}

// NewOTPRepository creates a new OTP repository.
func NewOTPRepository(store domain.Store) domain.OTPRepository {
	return &OTPRepositoryImpl{store: store}
}

func (r *OTPRepositoryImpl) all(ctx context.Context) ([]domain.OTPEntry, error) {
	var entries []domain.OTPEntry
	err := r.store.Load(ctx, OTPsRecord, &entries)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Find implements domain.OTPRepository.
func (r *OTPRepositoryImpl) Find(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPEntry, error) {
	entries, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Email == email && entries[i].Purpose == purpose {
			return &entries[i], nil
		}
	}
	return nil, domain.ErrOTPNotFound
}

// Put implements domain.OTPRepository, replacing any prior entry for the
// same (email, purpose) pair so at most one stays live.
func (r *OTPRepositoryImpl) Put(ctx context.Context, entry *domain.OTPEntry) error {
	entries, err := r.all(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Email == entry.Email && e.Purpose == entry.Purpose {
			continue
		}
		kept = append(kept, e)
	}
	kept = append(kept, *entry)
	return r.store.Save(ctx, OTPsRecord, kept)
}

// Remove implements domain.OTPRepository.
func (r *OTPRepositoryImpl) Remove(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	entries, err := r.all(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Email == email && e.Purpose == purpose {
			continue
		}
		kept = append(kept, e)
	}
	return r.store.Save(ctx, OTPsRecord, kept)
}

// PurgeExpired implements domain.OTPRepository.
func (r *OTPRepositoryImpl) PurgeExpired(ctx context.Context, now time.Time) error {
	entries, err := r.all(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Expired(now) {
			continue
		}
		kept = append(kept, e)
	}
	return r.store.Save(ctx, OTPsRecord, kept)
}
