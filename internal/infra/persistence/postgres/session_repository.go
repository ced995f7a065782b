// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"panel/internal/domain/entity"
	"panel/internal/domain/repository"
	"panel/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session. GORM's Create returns only after the
// statement is committed, so the OAuth callback can safely redirect once
// this call succeeds.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return wrapStorageError(err, "failed to create session")
	}

	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByToken retrieves a session by its opaque token. Expired rows are
// treated as absent and removed on the way out.
func (repo *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, wrapStorageError(err, "failed to find session")
	}

	session := toSessionDomain(&sessionM)

	if session.Expired(time.Now()) {
		// Opportunistic cleanup; the sweeper catches anything missed.
		repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "token = ?", token)

		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

// DeleteByToken removes a session. An absent token is not an error, so
// logout stays idempotent.
func (repo *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.SessionModel{}, "token = ?", token).Error; err != nil {
		return wrapStorageError(err, "failed to delete session")
	}

	return nil
}

// DeleteExpired removes all sessions past their expiry.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Delete(&model.SessionModel{}, "expires_at <= ?", time.Now())
	if result.Error != nil {
		return 0, wrapStorageError(result.Error, "failed to delete expired sessions")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		Token:       data.Token,
		UserID:      data.UserID,
		Username:    data.Username,
		Avatar:      data.Avatar,
		AccessToken: data.AccessToken,
		ExpiresAt:   data.ExpiresAt,
		CreatedAt:   data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		Token:       data.Token,
		UserID:      data.UserID,
		Username:    data.Username,
		Avatar:      data.Avatar,
		AccessToken: data.AccessToken,
		ExpiresAt:   data.ExpiresAt,
		CreatedAt:   data.CreatedAt,
	}
}
