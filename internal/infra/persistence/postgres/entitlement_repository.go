package postgres

import (
	"context"

	"panel/internal/domain/entity"
	"panel/internal/domain/repository"
	"panel/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// entitlementRepository implements the domain.EntitlementRepository interface.
type entitlementRepository struct {
	db *gorm.DB
}

// NewEntitlementRepository is the constructor for entitlementRepository.
func NewEntitlementRepository(db *gorm.DB) repository.EntitlementRepository {
	return &entitlementRepository{db: db}
}

// FindByUserID retrieves the entitlement record for one user.
func (repo *entitlementRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserEntitlement, error) {
	return repo.findByUserID(ctx, userID, false)
}

// FindByUserIDForUpdate retrieves the record with SELECT ... FOR UPDATE.
// Inside a transaction this blocks concurrent reconcilers on the same user,
// so two captures extend the VIP period serially instead of both reading the
// same expiry and overwriting each other on the upsert.
func (repo *entitlementRepository) FindByUserIDForUpdate(ctx context.Context, userID string) (*entity.UserEntitlement, error) {
	return repo.findByUserID(ctx, userID, true)
}

func (repo *entitlementRepository) findByUserID(ctx context.Context, userID string, forUpdate bool) (*entity.UserEntitlement, error) {
	query := repo.db.WithContext(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var entitlementM model.UserEntitlementModel
	err := query.
		Where("user_id = ?", userID).
		First(&entitlementM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEntitlementNotFound
		}

		return nil, wrapStorageError(err, "failed to find entitlement")
	}

	return toEntitlementDomain(&entitlementM), nil
}

// Save upserts the record in a single statement keyed by user ID, so a
// trial claim or payment confirmation is one atomic document write.
func (repo *entitlementRepository) Save(ctx context.Context, entitlement *entity.UserEntitlement) error {
	entitlementM := fromEntitlementDomain(entitlement)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"vip_expires_at", "used_trial", "updated_at"}),
		}).
		Create(entitlementM).Error
	if err != nil {
		return wrapStorageError(err, "failed to save entitlement")
	}

	entitlement.CreatedAt = entitlementM.CreatedAt
	entitlement.UpdatedAt = entitlementM.UpdatedAt

	return nil
}

// paymentCaptureRepository implements the domain.PaymentCaptureRepository interface.
type paymentCaptureRepository struct {
	db *gorm.DB
}

// NewPaymentCaptureRepository is the constructor for paymentCaptureRepository.
func NewPaymentCaptureRepository(db *gorm.DB) repository.PaymentCaptureRepository {
	return &paymentCaptureRepository{db: db}
}

// Create inserts the capture record. A duplicate capture ID violates the
// primary key and surfaces as ErrDuplicateCapture, which is the signal the
// reconciler short-circuits on.
func (repo *paymentCaptureRepository) Create(ctx context.Context, capture *entity.PaymentCapture) error {
	captureM := &model.PaymentCaptureModel{
		CaptureID:  capture.CaptureID,
		UserID:     capture.UserID,
		CapturedAt: capture.CapturedAt,
	}

	if err := repo.db.WithContext(ctx).Create(captureM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCapture
		}

		return wrapStorageError(err, "failed to record payment capture")
	}

	capture.CreatedAt = captureM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toEntitlementDomain converts a GORM model to a domain entity.
func toEntitlementDomain(data *model.UserEntitlementModel) *entity.UserEntitlement {
	if data == nil {
		return nil
	}

	return &entity.UserEntitlement{
		UserID:       data.UserID,
		VIPExpiresAt: data.VIPExpiresAt,
		UsedTrial:    data.UsedTrial,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromEntitlementDomain converts a domain entity to a GORM model.
func fromEntitlementDomain(data *entity.UserEntitlement) *model.UserEntitlementModel {
	if data == nil {
		return nil
	}

	return &model.UserEntitlementModel{
		UserID:       data.UserID,
		VIPExpiresAt: data.VIPExpiresAt,
		UsedTrial:    data.UsedTrial,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
