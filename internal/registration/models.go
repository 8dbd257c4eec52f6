package registration

import "time"

// Webinar registration statuses move registered → attended|missed.
const (
	StatusRegistered = "registered"
	StatusAttended   = "attended"
	StatusMissed     = "missed"
)

// WebinarRegistration records one attendee of a webinar. WebinarID is a weak
// reference: the webinar row may be absent or deleted later. WebinarTitle is
// a denormalized snapshot taken at registration time. The composite unique
// index backs the duplicate gate, but only for rows whose webinar resolved
// at registration time; ungated rows stay outside it and may repeat.
type WebinarRegistration struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"column:name;size:320;not null" json:"name"`
	Email           string    `gorm:"column:email;size:320;not null;uniqueIndex:idx_webinar_reg_pair,priority:2" json:"email"`
	Phone           string    `gorm:"column:phone;size:64" json:"phone"`
	Citizenship     string    `gorm:"column:citizenship;size:190" json:"citizenship"`
	Telegram        string    `gorm:"column:telegram;size:190" json:"telegram"`
	WebinarID       *int64    `gorm:"column:webinar_id;uniqueIndex:idx_webinar_reg_pair,priority:1,where:webinar_resolved" json:"webinar_id"`
	WebinarResolved bool      `gorm:"column:webinar_resolved;not null;default:false" json:"webinar_resolved"`
	WebinarTitle    string    `gorm:"column:webinar_title;type:text" json:"webinar_title"`
	Status          string    `gorm:"column:status;size:32;not null;default:'registered'" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName provides the explicit table binding for GORM.
func (WebinarRegistration) TableName() string {
	return "webinar_registrations"
}

// EventRegistration records one attendee of an event. Unlike webinars, the
// referenced event must exist at registration time.
type EventRegistration struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventID     int64     `gorm:"column:event_id;not null;uniqueIndex:idx_event_reg_pair,priority:1" json:"event_id"`
	Name        string    `gorm:"column:name;size:320;not null" json:"name"`
	Email       string    `gorm:"column:email;size:320;not null;uniqueIndex:idx_event_reg_pair,priority:2" json:"email"`
	Phone       string    `gorm:"column:phone;size:64" json:"phone"`
	Citizenship string    `gorm:"column:citizenship;size:190" json:"citizenship"`
	Telegram    string    `gorm:"column:telegram;size:190" json:"telegram"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName provides the explicit table binding for GORM.
func (EventRegistration) TableName() string {
	return "event_registrations"
}
