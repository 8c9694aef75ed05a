package repos

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openmcp/openmcp-backend/internal/domain"
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/types"
)

// AdminRepo answers whether a login may run privileged operations.
type AdminRepo interface {
	IsAdmin(ctx context.Context, login string) (bool, error)
	Seed(ctx context.Context, logins []string) error
}

type adminRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminRepo(db *gorm.DB, baseLog *logger.Logger) AdminRepo {
	repoLog := baseLog.With("repo", "AdminRepo")
	return &adminRepo{db: db, log: repoLog}
}

func (r *adminRepo) IsAdmin(ctx context.Context, login string) (bool, error) {
	login = strings.TrimSpace(strings.ToLower(login))
	if login == "" {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&types.Admin{}).
		Where("login = ?", login).
		Count(&count).Error
	if err != nil {
		return false, domain.MapError("repos.IsAdmin", err)
	}
	return count > 0, nil
}

// Seed inserts the bootstrap admin logins, skipping ones already there.
func (r *adminRepo) Seed(ctx context.Context, logins []string) error {
	now := time.Now().UTC()
	for _, login := range logins {
		login = strings.TrimSpace(strings.ToLower(login))
		if login == "" {
			continue
		}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&types.Admin{Login: login, CreatedAt: now}).Error
		if err != nil {
			return domain.MapError("repos.SeedAdmins", err)
		}
		r.log.Debug("Admin login seeded", "login", login)
	}
	return nil
}
