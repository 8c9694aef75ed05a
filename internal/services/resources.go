package services

import (
	"context"

	"gorm.io/datatypes"

	"github.com/openmcp/openmcp-backend/internal/domain"
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/realtime"
	"github.com/openmcp/openmcp-backend/internal/repos"
	"github.com/openmcp/openmcp-backend/internal/types"
)

// CreateResourceInput carries the kind-specific content of one resource
// version. Everything is optional except the family name.
type CreateResourceInput struct {
	Name        string
	Title       string
	URI         *string
	Text        *string
	Description *string
	MimeType    *string
	Annotations *types.Annotations
}

type ResourceService interface {
	Create(ctx context.Context, in CreateResourceInput, createdBy string) (*types.Resource, error)
	SetStatus(ctx context.Context, name string, version int, status types.VersionStatus, adminLogin string) error
	GetActual(ctx context.Context, name string) (*types.Resource, error)
	ListActual(ctx context.Context, query string) ([]*types.Resource, error)
	GetLatestApproved(ctx context.Context, name string) (*types.Resource, error)
	ListLatestApproved(ctx context.Context, query string) ([]*types.Resource, error)
	History(ctx context.Context, name string) ([]*types.Resource, error)
	Delete(ctx context.Context, name string, version int, adminLogin string) error
	DeleteAll(ctx context.Context, name string, adminLogin string) error
}

type resourceService struct {
	primitives[types.Resource, *types.Resource]
	notifier realtime.ChangeNotifier
}

func NewResourceService(repo repos.PrimitiveRepo[types.Resource, *types.Resource], admins repos.AdminRepo, notifier realtime.ChangeNotifier, baseLog *logger.Logger) ResourceService {
	svcLog := baseLog.With("service", "ResourceService")
	return &resourceService{
		primitives: primitives[types.Resource, *types.Resource]{repo: repo, admins: admins, log: svcLog},
		notifier:   notifier,
	}
}

func (s *resourceService) Create(ctx context.Context, in CreateResourceInput, createdBy string) (*types.Resource, error) {
	var size *int64
	if in.Text != nil && *in.Text != "" {
		n := int64(len(*in.Text))
		size = &n
	}

	rec := &types.Resource{
		Name:        in.Name,
		Title:       in.Title,
		URI:         in.URI,
		Text:        in.Text,
		Description: in.Description,
		MimeType:    in.MimeType,
		Annotations: datatypes.NewJSONType(in.Annotations),
		Size:        size,
	}
	return s.create(ctx, rec, createdBy)
}

// SetStatus additionally pushes a change event to every session
// watching the resource. Notification failures never fail the mutation.
func (s *resourceService) SetStatus(ctx context.Context, name string, version int, status types.VersionStatus, adminLogin string) error {
	normalized, err := domain.NormalizeKey(name)
	if err != nil {
		return err
	}
	if err := s.primitives.SetStatus(ctx, normalized, version, status, adminLogin); err != nil {
		return err
	}
	s.notifyChanged(ctx, normalized)
	return nil
}

func (s *resourceService) Delete(ctx context.Context, name string, version int, adminLogin string) error {
	normalized, err := domain.NormalizeKey(name)
	if err != nil {
		return err
	}
	if err := s.primitives.Delete(ctx, normalized, version, adminLogin); err != nil {
		return err
	}
	s.notifyChanged(ctx, normalized)
	return nil
}

func (s *resourceService) DeleteAll(ctx context.Context, name string, adminLogin string) error {
	normalized, err := domain.NormalizeKey(name)
	if err != nil {
		return err
	}
	if err := s.primitives.DeleteAll(ctx, normalized, adminLogin); err != nil {
		return err
	}
	s.notifyChanged(ctx, normalized)
	return nil
}

func (s *resourceService) notifyChanged(ctx context.Context, name string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyResourceUpdated(ctx, realtime.ResourceURI(name))
}
