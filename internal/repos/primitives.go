package repos

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/openmcp/openmcp-backend/internal/domain"
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/types"
)

// PrimitiveRepo persists one primitive kind. The (name, version) unique
// index is the single source of truth for version races: a losing
// insert surfaces as a conflict, never as a silent overwrite.
type PrimitiveRepo[T any, PT types.VersionedPtr[T]] interface {
	Insert(ctx context.Context, rec PT) error
	GetByNameAndVersion(ctx context.Context, name string, version int) (PT, error)
	GetLatest(ctx context.Context, name string) (PT, error)
	GetLatestApproved(ctx context.Context, name string) (PT, error)
	GetActual(ctx context.Context, name string) (PT, error)
	ListActual(ctx context.Context, query string) ([]PT, error)
	ListLatestApproved(ctx context.Context, query string) ([]PT, error)
	History(ctx context.Context, name string) ([]PT, error)
	UpdateStatus(ctx context.Context, name string, version int, status types.VersionStatus, adminLogin string, now time.Time) error
	DeleteOne(ctx context.Context, name string, version int) error
	DeleteAll(ctx context.Context, name string) error
}

type primitiveRepo[T any, PT types.VersionedPtr[T]] struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptRepo(db *gorm.DB, baseLog *logger.Logger) PrimitiveRepo[types.Prompt, *types.Prompt] {
	repoLog := baseLog.With("repo", "PromptRepo")
	return &primitiveRepo[types.Prompt, *types.Prompt]{db: db, log: repoLog}
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) PrimitiveRepo[types.Resource, *types.Resource] {
	repoLog := baseLog.With("repo", "ResourceRepo")
	return &primitiveRepo[types.Resource, *types.Resource]{db: db, log: repoLog}
}

func (r *primitiveRepo[T, PT]) Insert(ctx context.Context, rec PT) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return domain.MapError("repos.Insert", err)
	}
	return nil
}

func (r *primitiveRepo[T, PT]) GetByNameAndVersion(ctx context.Context, name string, version int) (PT, error) {
	var rec T
	err := r.db.WithContext(ctx).
		Where("name = ? AND version = ?", name, version).
		First(&rec).Error
	if err != nil {
		return nil, domain.MapError("repos.GetByNameAndVersion", err)
	}
	return &rec, nil
}

func (r *primitiveRepo[T, PT]) GetLatest(ctx context.Context, name string) (PT, error) {
	var rec T
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("version DESC").
		First(&rec).Error
	if err != nil {
		return nil, domain.MapError("repos.GetLatest", err)
	}
	return &rec, nil
}

func (r *primitiveRepo[T, PT]) GetLatestApproved(ctx context.Context, name string) (PT, error) {
	var rec T
	err := r.db.WithContext(ctx).
		Where("name = ? AND status = ?", name, types.StatusApproved).
		Order("version DESC").
		First(&rec).Error
	if err != nil {
		return nil, domain.MapError("repos.GetLatestApproved", err)
	}
	return &rec, nil
}

// GetActual resolves the externally visible version of a family: the
// highest approved version when one exists, otherwise the highest
// version of any status. An unreviewed draft stays visible only until
// the family's first approval ever happens.
func (r *primitiveRepo[T, PT]) GetActual(ctx context.Context, name string) (PT, error) {
	approved, err := r.GetLatestApproved(ctx, name)
	if err == nil {
		return approved, nil
	}
	if !domain.IsCode(err, domain.CodeNotFound) {
		return nil, err
	}
	return r.GetLatest(ctx, name)
}

func (r *primitiveRepo[T, PT]) ListActual(ctx context.Context, query string) ([]PT, error) {
	var all []T
	err := withQueryFilter(r.db.WithContext(ctx), query).
		Order("name ASC, version DESC").
		Find(&all).Error
	if err != nil {
		return nil, domain.MapError("repos.ListActual", err)
	}

	// Rows come grouped per name, highest version first. The winner per
	// name is the first approved row, else the first row.
	var result []PT
	var relevant PT
	for i := range all {
		rec := PT(&all[i])
		if relevant == nil || relevant.PrimitiveName() != rec.PrimitiveName() {
			if relevant != nil {
				result = append(result, relevant)
			}
			relevant = rec
			continue
		}
		if relevant.PrimitiveStatus() != types.StatusApproved && rec.PrimitiveStatus() == types.StatusApproved {
			relevant = rec
		}
	}
	if relevant != nil {
		result = append(result, relevant)
	}
	return result, nil
}

func (r *primitiveRepo[T, PT]) ListLatestApproved(ctx context.Context, query string) ([]PT, error) {
	var all []T
	err := withQueryFilter(r.db.WithContext(ctx), query).
		Where("status = ?", types.StatusApproved).
		Order("name ASC, version DESC").
		Find(&all).Error
	if err != nil {
		return nil, domain.MapError("repos.ListLatestApproved", err)
	}

	var result []PT
	lastName := ""
	for i := range all {
		rec := PT(&all[i])
		if rec.PrimitiveName() != lastName {
			result = append(result, rec)
			lastName = rec.PrimitiveName()
		}
	}
	return result, nil
}

func (r *primitiveRepo[T, PT]) History(ctx context.Context, name string) ([]PT, error) {
	var all []T
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at DESC, version DESC").
		Find(&all).Error
	if err != nil {
		return nil, domain.MapError("repos.History", err)
	}
	result := make([]PT, 0, len(all))
	for i := range all {
		result = append(result, &all[i])
	}
	return result, nil
}

// UpdateStatus flips the approval state of one version. Approval stamps
// updated_at/updated_by; any other target status clears them.
func (r *primitiveRepo[T, PT]) UpdateStatus(ctx context.Context, name string, version int, status types.VersionStatus, adminLogin string, now time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == types.StatusApproved {
		updates["updated_at"] = now
		updates["updated_by"] = adminLogin
	} else {
		updates["updated_at"] = nil
		updates["updated_by"] = nil
	}

	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("name = ? AND version = ?", name, version).
		Updates(updates)
	if res.Error != nil {
		return domain.MapError("repos.UpdateStatus", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewError(domain.CodeNotFound, "repos.UpdateStatus", "VERSION_NOT_FOUND", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *primitiveRepo[T, PT]) DeleteOne(ctx context.Context, name string, version int) error {
	err := r.db.WithContext(ctx).
		Where("name = ? AND version = ?", name, version).
		Delete(new(T)).Error
	if err != nil {
		return domain.MapError("repos.DeleteOne", err)
	}
	return nil
}

func (r *primitiveRepo[T, PT]) DeleteAll(ctx context.Context, name string) error {
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(new(T)).Error
	if err != nil {
		return domain.MapError("repos.DeleteAll", err)
	}
	return nil
}

// withQueryFilter applies the case-insensitive substring match over
// name/title used by the list operations.
func withQueryFilter(tx *gorm.DB, query string) *gorm.DB {
	q := strings.TrimSpace(query)
	if q == "" {
		return tx
	}
	like := "%" + strings.ToLower(q) + "%"
	return tx.Where("LOWER(name) LIKE ? OR LOWER(title) LIKE ?", like, like)
}
