package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Annotations is optional structured metadata attached to a resource
// version, passed through to protocol clients untouched.
type Annotations struct {
	Audience     []string   `json:"audience,omitempty"`
	Priority     *float64   `json:"priority,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// Resource is one immutable version of a resource family.
type Resource struct {
	ID          uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                              `gorm:"not null;uniqueIndex:idx_resource_name_version,priority:1;column:name" json:"name"`
	Version     int                                 `gorm:"not null;uniqueIndex:idx_resource_name_version,priority:2;column:version" json:"version"`
	Status      VersionStatus                       `gorm:"not null;default:'pending';column:status" json:"status"`
	Title       string                              `gorm:"column:title" json:"title"`
	URI         *string                             `gorm:"column:uri" json:"uri,omitempty"`
	Text        *string                             `gorm:"column:text" json:"text,omitempty"`
	Description *string                             `gorm:"column:description" json:"description,omitempty"`
	MimeType    *string                             `gorm:"column:mime_type" json:"mime_type,omitempty"`
	Annotations datatypes.JSONType[*Annotations]    `gorm:"column:annotations" json:"annotations"`
	Size        *int64                              `gorm:"column:size" json:"size,omitempty"`
	CreatedAt   time.Time                           `gorm:"not null;column:created_at" json:"created_at"`
	CreatedBy   string                              `gorm:"not null;column:created_by" json:"created_by"`
	UpdatedAt   *time.Time                          `gorm:"autoUpdateTime:false;column:updated_at" json:"updated_at,omitempty"`
	UpdatedBy   *string                             `gorm:"column:updated_by" json:"updated_by,omitempty"`
}

func (Resource) TableName() string {
	return "resources"
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Resource) PrimitiveName() string          { return r.Name }
func (r *Resource) PrimitiveVersion() int          { return r.Version }
func (r *Resource) PrimitiveStatus() VersionStatus { return r.Status }
func (r *Resource) PrimitiveTitle() string         { return r.Title }

func (r *Resource) SetKey(name string, version int) {
	r.Name = name
	r.Version = version
}

func (r *Resource) SetStatus(status VersionStatus) {
	r.Status = status
}

func (r *Resource) SetCreated(at time.Time, by string) {
	r.CreatedAt = at
	r.CreatedBy = by
}
