package postgres

import (
	"context"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevokedTokenRepository is the SQL denylist used when Redis is not
// configured. Expired rows are purged on insert.
type RevokedTokenRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRevokedTokenRepository(db *gorm.DB) repositories.TokenDenylist {
	return &RevokedTokenRepository{db: db, now: time.Now}
}

func (r *RevokedTokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("expires_at < ?", r.now().UTC()).Delete(&RevokedTokenModel{}).Error; err != nil {
		return false, err
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&RevokedTokenModel{
		Jti:       jti,
		ExpiresAt: expiresAt.UTC(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RevokedTokenModel{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
