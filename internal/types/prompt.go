package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openmcp/openmcp-backend/internal/prompts"
)

// Prompt is one immutable version of a prompt family. (name, version)
// is unique; editing always inserts a new row.
type Prompt struct {
	ID        uuid.UUID                                `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string                                   `gorm:"not null;uniqueIndex:idx_prompt_name_version,priority:1;column:name" json:"name"`
	Version   int                                      `gorm:"not null;uniqueIndex:idx_prompt_name_version,priority:2;column:version" json:"version"`
	Status    VersionStatus                            `gorm:"not null;default:'pending';column:status" json:"status"`
	Title     string                                   `gorm:"column:title" json:"title"`
	Messages  datatypes.JSONType[[]prompts.Message]    `gorm:"column:messages" json:"messages"`
	Arguments datatypes.JSONType[[]prompts.Argument]   `gorm:"column:arguments" json:"arguments"`
	CreatedAt time.Time                                `gorm:"not null;column:created_at" json:"created_at"`
	CreatedBy string                                   `gorm:"not null;column:created_by" json:"created_by"`
	UpdatedAt *time.Time                               `gorm:"autoUpdateTime:false;column:updated_at" json:"updated_at,omitempty"`
	UpdatedBy *string                                  `gorm:"column:updated_by" json:"updated_by,omitempty"`
}

func (Prompt) TableName() string {
	return "prompts"
}

func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Prompt) PrimitiveName() string          { return p.Name }
func (p *Prompt) PrimitiveVersion() int          { return p.Version }
func (p *Prompt) PrimitiveStatus() VersionStatus { return p.Status }
func (p *Prompt) PrimitiveTitle() string         { return p.Title }

func (p *Prompt) SetKey(name string, version int) {
	p.Name = name
	p.Version = version
}

func (p *Prompt) SetStatus(status VersionStatus) {
	p.Status = status
}

func (p *Prompt) SetCreated(at time.Time, by string) {
	p.CreatedAt = at
	p.CreatedBy = by
}
