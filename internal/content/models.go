package content

import "time"

// Event models a conference, seminar, webinar, workshop or meeting entry
// with RU/UZ/EN localized text columns.
type Event struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"column:title;type:text" json:"title"`
	TitleUz         string    `gorm:"column:title_uz;type:text" json:"title_uz"`
	TitleEn         string    `gorm:"column:title_en;type:text" json:"title_en"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	DescriptionUz   string    `gorm:"column:description_uz;type:text" json:"description_uz"`
	DescriptionEn   string    `gorm:"column:description_en;type:text" json:"description_en"`
	Summary         string    `gorm:"column:summary;type:text" json:"summary"`
	SummaryUz       string    `gorm:"column:summary_uz;type:text" json:"summary_uz"`
	SummaryEn       string    `gorm:"column:summary_en;type:text" json:"summary_en"`
	EventDate       string    `gorm:"column:event_date;size:32" json:"event_date"`
	EventTime       string    `gorm:"column:event_time;size:32" json:"event_time"`
	Location        string    `gorm:"column:location;size:320" json:"location"`
	Type            string    `gorm:"column:type;size:32" json:"type"`
	Format          string    `gorm:"column:format;size:32" json:"format"`
	ImageURL        string    `gorm:"column:image_url;size:512" json:"image_url"`
	Gallery         string    `gorm:"column:gallery;type:text" json:"gallery"`
	MaxCapacity     int64     `gorm:"column:max_capacity;not null;default:200" json:"max_capacity"`
	RegisteredCount int64     `gorm:"column:registered_count;not null;default:0" json:"registered_count"`
	Status          string    `gorm:"column:status;size:32;not null;default:'active'" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName provides the explicit table binding for GORM.
func (Event) TableName() string {
	return "events"
}

// Webinar models an online session with a speaker, track and capacity.
type Webinar struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"column:title;type:text" json:"title"`
	TitleUz         string    `gorm:"column:title_uz;type:text" json:"title_uz"`
	TitleEn         string    `gorm:"column:title_en;type:text" json:"title_en"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	DescriptionUz   string    `gorm:"column:description_uz;type:text" json:"description_uz"`
	DescriptionEn   string    `gorm:"column:description_en;type:text" json:"description_en"`
	Speaker         string    `gorm:"column:speaker;size:320" json:"speaker"`
	Date            string    `gorm:"column:date;size:32" json:"date"`
	Duration        string    `gorm:"column:duration;size:64" json:"duration"`
	Track           string    `gorm:"column:track;size:32" json:"track"`
	ImageURL        string    `gorm:"column:image_url;size:512" json:"image_url"`
	MaxCapacity     int64     `gorm:"column:max_capacity;not null;default:300" json:"max_capacity"`
	RegisteredCount int64     `gorm:"column:registered_count;not null;default:0" json:"registered_count"`
	Status          string    `gorm:"column:status;size:32;not null;default:'active'" json:"status"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName provides the explicit table binding for GORM.
func (Webinar) TableName() string {
	return "webinars"
}

// Publication models a downloadable article, report or newsletter.
type Publication struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title;type:text" json:"title"`
	TitleUz   string    `gorm:"column:title_uz;type:text" json:"title_uz"`
	TitleEn   string    `gorm:"column:title_en;type:text" json:"title_en"`
	Author    string    `gorm:"column:author;size:320" json:"author"`
	Category  string    `gorm:"column:category;size:64" json:"category"`
	Excerpt   string    `gorm:"column:excerpt;type:text" json:"excerpt"`
	ExcerptUz string    `gorm:"column:excerpt_uz;type:text" json:"excerpt_uz"`
	ExcerptEn string    `gorm:"column:excerpt_en;type:text" json:"excerpt_en"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	ContentUz string    `gorm:"column:content_uz;type:text" json:"content_uz"`
	ContentEn string    `gorm:"column:content_en;type:text" json:"content_en"`
	ImageURL  string    `gorm:"column:image_url;size:512" json:"image_url"`
	FileURL   string    `gorm:"column:file_url;size:512" json:"file_url"`
	Downloads int64     `gorm:"column:downloads;not null;default:0" json:"downloads"`
	Status    string    `gorm:"column:status;size:32;not null;default:'draft'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName provides the explicit table binding for GORM.
func (Publication) TableName() string {
	return "publications"
}

// News models a news post with a free-text category and a view counter.
type News struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title;type:text" json:"title"`
	TitleUz   string    `gorm:"column:title_uz;type:text" json:"title_uz"`
	TitleEn   string    `gorm:"column:title_en;type:text" json:"title_en"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	ContentUz string    `gorm:"column:content_uz;type:text" json:"content_uz"`
	ContentEn string    `gorm:"column:content_en;type:text" json:"content_en"`
	Excerpt   string    `gorm:"column:excerpt;type:text" json:"excerpt"`
	ExcerptUz string    `gorm:"column:excerpt_uz;type:text" json:"excerpt_uz"`
	ExcerptEn string    `gorm:"column:excerpt_en;type:text" json:"excerpt_en"`
	Category  string    `gorm:"column:category;size:64" json:"category"`
	ImageURL  string    `gorm:"column:image_url;size:512" json:"image_url"`
	Views     int64     `gorm:"column:views;not null;default:0" json:"views"`
	Status    string    `gorm:"column:status;size:32;not null;default:'draft'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName provides the explicit table binding for GORM.
func (News) TableName() string {
	return "news"
}
