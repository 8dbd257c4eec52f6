package membership

import "time"

// Tier values accepted on an application.
const (
	TierFull      = "full"
	TierAssociate = "associate"
	TierAcademic  = "academic"
	TierHonorary  = "honorary"
)

// Application statuses move new → reviewed → approved|rejected; only an
// administrator mutates them.
const (
	StatusNew      = "new"
	StatusReviewed = "reviewed"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Application captures a public membership application. Specializations are
// stored as a JSON array to preserve tag order.
type Application struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName       string    `gorm:"column:first_name;size:190;not null" json:"first_name"`
	LastName        string    `gorm:"column:last_name;size:190;not null" json:"last_name"`
	Email           string    `gorm:"column:email;size:320;not null" json:"email"`
	Company         string    `gorm:"column:company;size:320" json:"company"`
	Position        string    `gorm:"column:position;size:320" json:"position"`
	Country         string    `gorm:"column:country;size:190" json:"country"`
	Experience      string    `gorm:"column:experience;type:text" json:"experience"`
	Tier            string    `gorm:"column:tier;size:32;not null;default:'full'" json:"tier"`
	Specializations string    `gorm:"column:specializations;type:text;not null;default:'[]'" json:"specializations"`
	Status          string    `gorm:"column:status;size:32;not null;default:'new'" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName provides the explicit table binding for GORM.
func (Application) TableName() string {
	return "membership_applications"
}
