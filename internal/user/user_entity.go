package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the login account. Exactly one of StaffID/MemberID is set
// for branch personnel and members; superadmins carry neither and no
// branch. Role is the single source for authorization, resolved into
// the policy engine on every request.
type User struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID *uuid.UUID `gorm:"column:branch_id;type:uuid;index"`
	StaffID  *uuid.UUID `gorm:"column:staff_id;type:uuid;uniqueIndex"`
	MemberID *uuid.UUID `gorm:"column:member_id;type:uuid;uniqueIndex"`
	Name     string     `gorm:"column:name;type:varchar(255)"`
	Role     string     `gorm:"column:role;type:varchar(50);not null"`
	Email    string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	Password string     `gorm:"column:password;type:text;not null"`
	IsActive bool       `gorm:"column:is_active;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
