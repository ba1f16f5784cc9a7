package models

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleSeeker    UserRole = "seeker"
	UserRoleRecruiter UserRole = "recruiter"
)

type User struct {
	BaseModel
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"not null;default:'seeker'" json:"role"`

	// Company affiliation. Users without one are skipped by the
	// company-jobs notification pass.
	CompanyID   *string `gorm:"index" json:"company_id"`
	CompanyName string  `json:"company_name"`
}
