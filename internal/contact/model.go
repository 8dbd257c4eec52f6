package contact

import "time"

// Message statuses move new → read → replied.
const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

// Message captures a public contact-form submission.
type Message struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:320;not null" json:"name"`
	Email     string    `gorm:"column:email;size:320;not null" json:"email"`
	Subject   string    `gorm:"column:subject;size:512" json:"subject"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	Status    string    `gorm:"column:status;size:32;not null;default:'new'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName provides the explicit table binding for GORM.
func (Message) TableName() string {
	return "contact_messages"
}
