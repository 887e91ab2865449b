// Package registry holds read models for tenants, users, clients and
// functionalities. Their CRUD lives outside this service.
package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/orderbridge-backend/internal/domain/orders"
	"gorm.io/gorm"
)

type Tenant struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string           `gorm:"not null" json:"name"`
	Lifecycle orders.Lifecycle `gorm:"not null;index" json:"-"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`
}

func (Tenant) TableName() string { return "tenants" }

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Lifecycle == "" {
		t.Lifecycle = orders.LifecycleActive
	}
	return nil
}

type User struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  *uuid.UUID       `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	Name      string           `gorm:"not null" json:"name"`
	Role      string           `gorm:"not null" json:"role"`
	Active    bool             `gorm:"not null;index" json:"active"`
	Lifecycle orders.Lifecycle `gorm:"not null;index" json:"-"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Lifecycle == "" {
		u.Lifecycle = orders.LifecycleActive
	}
	return nil
}

type Client struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string           `gorm:"not null" json:"name"`
	Lifecycle orders.Lifecycle `gorm:"not null;index" json:"-"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Lifecycle == "" {
		c.Lifecycle = orders.LifecycleActive
	}
	return nil
}

type Functionality struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string           `gorm:"not null" json:"name"`
	Lifecycle orders.Lifecycle `gorm:"not null;index" json:"-"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time        `gorm:"not null" json:"updated_at"`
}

func (Functionality) TableName() string { return "functionalities" }

func (f *Functionality) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Lifecycle == "" {
		f.Lifecycle = orders.LifecycleActive
	}
	return nil
}
