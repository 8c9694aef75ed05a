package services

import (
	"context"

	"gorm.io/datatypes"

	"github.com/openmcp/openmcp-backend/internal/domain"
	"github.com/openmcp/openmcp-backend/internal/logger"
	"github.com/openmcp/openmcp-backend/internal/prompts"
	"github.com/openmcp/openmcp-backend/internal/realtime"
	"github.com/openmcp/openmcp-backend/internal/repos"
	"github.com/openmcp/openmcp-backend/internal/types"
)

// RenderedContent is one delivered content part: inline text or an
// embedded resource resolved from a link.
type RenderedContent struct {
	Type     string `json:"type"` // "text" | "resource"
	Text     string `json:"text,omitempty"`
	URI      string `json:"uri,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

type RenderedMessage struct {
	Role    string          `json:"role"`
	Content RenderedContent `json:"content"`
}

// RenderedPrompt is a prompt assembled for delivery: arguments applied
// and resource links resolved.
type RenderedPrompt struct {
	Name     string            `json:"name"`
	Version  int               `json:"version"`
	Title    string            `json:"title,omitempty"`
	Messages []RenderedMessage `json:"messages"`
}

type PromptService interface {
	Create(ctx context.Context, name, title string, messages []prompts.Message, arguments []prompts.Argument, createdBy string) (*types.Prompt, error)
	SetStatus(ctx context.Context, name string, version int, status types.VersionStatus, adminLogin string) error
	GetActual(ctx context.Context, name string) (*types.Prompt, error)
	ListActual(ctx context.Context, query string) ([]*types.Prompt, error)
	GetLatestApproved(ctx context.Context, name string) (*types.Prompt, error)
	ListLatestApproved(ctx context.Context, query string) ([]*types.Prompt, error)
	History(ctx context.Context, name string) ([]*types.Prompt, error)
	Delete(ctx context.Context, name string, version int, adminLogin string) error
	DeleteAll(ctx context.Context, name string, adminLogin string) error
	Render(ctx context.Context, name string, arguments map[string]string) (*RenderedPrompt, error)
}

type promptService struct {
	primitives[types.Prompt, *types.Prompt]
	resources ResourceService
}

func NewPromptService(repo repos.PrimitiveRepo[types.Prompt, *types.Prompt], admins repos.AdminRepo, resources ResourceService, baseLog *logger.Logger) PromptService {
	svcLog := baseLog.With("service", "PromptService")
	return &promptService{
		primitives: primitives[types.Prompt, *types.Prompt]{repo: repo, admins: admins, log: svcLog},
		resources:  resources,
	}
}

func (s *promptService) Create(ctx context.Context, name, title string, messages []prompts.Message, arguments []prompts.Argument, createdBy string) (*types.Prompt, error) {
	const op = "services.PromptCreate"

	if len(messages) == 0 {
		return nil, domain.NewError(domain.CodeValidation, op, "MESSAGES_REQUIRED", nil)
	}
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return nil, domain.Wrap(domain.CodeValidation, op, err)
		}
	}
	for _, a := range arguments {
		if err := a.Validate(); err != nil {
			return nil, domain.Wrap(domain.CodeValidation, op, err)
		}
	}

	rec := &types.Prompt{
		Name:      name,
		Title:     title,
		Messages:  datatypes.NewJSONType(messages),
		Arguments: datatypes.NewJSONType(arguments),
	}
	return s.create(ctx, rec, createdBy)
}

// Render assembles the actual version of a prompt for delivery.
// Arguments are substituted into user-role text; assistant text passes
// through untouched. Resource links resolve against the approved
// metadata of the referenced resource.
func (s *promptService) Render(ctx context.Context, name string, arguments map[string]string) (*RenderedPrompt, error) {
	const op = "services.PromptRender"

	rec, err := s.GetActual(ctx, name)
	if err != nil {
		return nil, err
	}

	messages := rec.Messages.Data()
	out := &RenderedPrompt{
		Name:     rec.Name,
		Version:  rec.Version,
		Title:    rec.Title,
		Messages: make([]RenderedMessage, 0, len(messages)),
	}
	for _, m := range messages {
		switch m.Content.Type {
		case prompts.ContentTypeText:
			text := m.Content.Text
			if m.Role == prompts.RoleUser {
				text = prompts.ApplyArguments(text, arguments)
			}
			out.Messages = append(out.Messages, RenderedMessage{
				Role:    m.Role,
				Content: RenderedContent{Type: "text", Text: text},
			})
		case prompts.ContentTypeResourceLink:
			embedded, err := s.resolveLink(ctx, m.Content.InternalName)
			if err != nil {
				return nil, err
			}
			out.Messages = append(out.Messages, RenderedMessage{Role: m.Role, Content: *embedded})
		default:
			return nil, domain.NewError(domain.CodeInternal, op, "unknown content type: "+m.Content.Type, nil)
		}
	}
	return out, nil
}

// resolveLink turns a resource link into an embedded-resource part. The
// link only resolves against an approved version with text content.
func (s *promptService) resolveLink(ctx context.Context, internalName string) (*RenderedContent, error) {
	const op = "services.PromptResolveLink"

	res, err := s.resources.GetLatestApproved(ctx, internalName)
	if err != nil {
		return nil, err
	}
	if res.Text == nil || *res.Text == "" {
		return nil, domain.NewError(domain.CodeNotFound, op, "RESOURCE_HAS_NO_TEXT", nil)
	}

	mimeType := "text/plain"
	if res.MimeType != nil && *res.MimeType != "" {
		mimeType = *res.MimeType
	}
	return &RenderedContent{
		Type:     "resource",
		URI:      realtime.ResourceURI(res.Name),
		Text:     *res.Text,
		MimeType: mimeType,
	}, nil
}
