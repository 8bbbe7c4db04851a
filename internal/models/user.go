package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	StableID uint   `json:"stable_id"`
	Stable   Stable `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stable"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'member'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleMember  = "member"
)

// CanManage diz se o papel pode aprovar/rejeitar reservas e editar instalações
func CanManage(role string) bool {
	return role == RoleOwner || role == RoleManager
}
