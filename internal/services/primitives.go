package services

import (
	"context"
	"strings"
	"time"

	"github.com/openmcp/openmcp-backend/internal/domain"
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/repos"
	"github.com/openmcp/openmcp-backend/internal/types"
)

// primitives is the lifecycle core shared by both primitive kinds:
// monotonic version allocation, the approval state machine, actual
// version resolution, and admin authorization. Kind services embed it
// and add their content rules.
type primitives[T any, PT types.VersionedPtr[T]] struct {
	repo   repos.PrimitiveRepo[T, PT]
	admins repos.AdminRepo
	log    *logger.Logger
}

// create normalizes the record's name, allocates the next version for
// the family and persists the record as pending. A lost allocation race
// surfaces as a conflict from the repository; callers may retry.
func (s *primitives[T, PT]) create(ctx context.Context, rec PT, createdBy string) (PT, error) {
	const op = "services.Create"

	if strings.TrimSpace(createdBy) == "" {
		return nil, domain.NewError(domain.CodeValidation, op, "CREATED_BY_REQUIRED", nil)
	}
	name, err := domain.NormalizeKey(rec.PrimitiveName())
	if err != nil {
		return nil, err
	}

	var current *int
	latest, err := s.repo.GetLatest(ctx, name)
	if err != nil && !domain.IsCode(err, domain.CodeNotFound) {
		return nil, err
	}
	if err == nil {
		v := latest.PrimitiveVersion()
		current = &v
	}

	rec.SetKey(name, domain.NextVersion(current))
	rec.SetStatus(types.StatusPending)
	rec.SetCreated(time.Now().UTC(), createdBy)

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}
	s.log.Info("Primitive version created", "name", name, "version", rec.PrimitiveVersion(), "createdBy", createdBy)
	return rec, nil
}

// SetStatus runs the approval state machine for one version. Admin only.
func (s *primitives[T, PT]) SetStatus(ctx context.Context, name string, version int, status types.VersionStatus, adminLogin string) error {
	const op = "services.SetStatus"

	name, err := domain.NormalizeKey(name)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(ctx, op, adminLogin); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, name, version, status, adminLogin, time.Now().UTC()); err != nil {
		return err
	}
	s.log.Info("Primitive status changed", "name", name, "version", version, "status", status, "admin", adminLogin)
	return nil
}

// GetActual resolves the externally visible version of a family.
func (s *primitives[T, PT]) GetActual(ctx context.Context, name string) (PT, error) {
	name, err := domain.NormalizeKey(name)
	if err != nil {
		return nil, err
	}
	return s.repo.GetActual(ctx, name)
}

// ListActual returns the actual version of every family matching query.
func (s *primitives[T, PT]) ListActual(ctx context.Context, query string) ([]PT, error) {
	return s.repo.ListActual(ctx, query)
}

// GetLatestApproved returns the newest approved version of a family.
func (s *primitives[T, PT]) GetLatestApproved(ctx context.Context, name string) (PT, error) {
	name, err := domain.NormalizeKey(name)
	if err != nil {
		return nil, err
	}
	return s.repo.GetLatestApproved(ctx, name)
}

// ListLatestApproved returns the newest approved version per family.
func (s *primitives[T, PT]) ListLatestApproved(ctx context.Context, query string) ([]PT, error) {
	return s.repo.ListLatestApproved(ctx, query)
}

// History returns every version of a family, newest first.
func (s *primitives[T, PT]) History(ctx context.Context, name string) ([]PT, error) {
	name, err := domain.NormalizeKey(name)
	if err != nil {
		return nil, err
	}
	return s.repo.History(ctx, name)
}

// Delete removes a single version. Admin only.
func (s *primitives[T, PT]) Delete(ctx context.Context, name string, version int, adminLogin string) error {
	const op = "services.Delete"

	name, err := domain.NormalizeKey(name)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(ctx, op, adminLogin); err != nil {
		return err
	}
	if _, err := s.repo.GetByNameAndVersion(ctx, name, version); err != nil {
		return err
	}
	if err := s.repo.DeleteOne(ctx, name, version); err != nil {
		return err
	}
	s.log.Info("Primitive version deleted", "name", name, "version", version, "admin", adminLogin)
	return nil
}

// DeleteAll removes every version of a family. Admin only.
func (s *primitives[T, PT]) DeleteAll(ctx context.Context, name string, adminLogin string) error {
	const op = "services.DeleteAll"

	name, err := domain.NormalizeKey(name)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(ctx, op, adminLogin); err != nil {
		return err
	}
	if _, err := s.repo.GetLatest(ctx, name); err != nil {
		return err
	}
	if err := s.repo.DeleteAll(ctx, name); err != nil {
		return err
	}
	s.log.Info("Primitive deleted", "name", name, "admin", adminLogin)
	return nil
}

func (s *primitives[T, PT]) requireAdmin(ctx context.Context, op, adminLogin string) error {
	ok, err := s.admins.IsAdmin(ctx, adminLogin)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.CodeUnauthorized, op, "NOT_ADMIN", nil)
	}
	return nil
}
