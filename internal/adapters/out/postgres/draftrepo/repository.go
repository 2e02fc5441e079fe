package draftrepo

import (
	"context"
	"errors"
	"time"

	"shiplabel/internal/core/domain/model/checkout"
	"shiplabel/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDraftRepository implements DraftRepository using GORM.
type GormDraftRepository struct {
	db *gorm.DB
}

// NewGormDraftRepository creates a new GORM draft repository.
func NewGormDraftRepository(db *gorm.DB) *GormDraftRepository {
	return &GormDraftRepository{db: db}
}

// Add saves a new draft to the database.
func (r *GormDraftRepository) Add(ctx context.Context, draft *checkout.Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	dto := fromDomain(draft)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Consume atomically claims the draft for the given intent id.
//
// The guarded UPDATE flips the consumed flag only if it is still unset, so
// exactly one caller across all processes ever gets the draft back; everyone
// else receives errs.ErrObjectNotFound.
func (r *GormDraftRepository) Consume(ctx context.Context, intentID string) (*checkout.Draft, error) {
	if intentID == "" {
		return nil, errs.NewValueIsRequiredError("intent id")
	}

	result := r.db.WithContext(ctx).
		Model(&DraftDTO{}).
		Where("intent_id = ? AND consumed = ?", intentID, false).
		Update("consumed", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("draft", intentID)
	}

	var dto DraftDTO
	if err := r.db.WithContext(ctx).First(&dto, "intent_id = ?", intentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draft", intentID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the draft for the given intent id, if present.
func (r *GormDraftRepository) Delete(ctx context.Context, intentID string) error {
	if intentID == "" {
		return errs.NewValueIsRequiredError("intent id")
	}

	return r.db.WithContext(ctx).Delete(&DraftDTO{}, "intent_id = ?", intentID).Error
}

// DeleteExpired removes drafts created before the cutoff, consumed or not.
// A settled purchase deletes its draft in the purchase transaction, so the
// sweep sees abandoned drafts plus the occasional consumed row left behind
// by a purchase that died between claim and commit.
func (r *GormDraftRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&DraftDTO{}, "created_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
