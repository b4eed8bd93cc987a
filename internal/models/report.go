package models

type Report struct {
	BaseModel
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Category    string       `gorm:"type:varchar(30);not null" json:"category"`
	Status      ReportStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Latitude    float64      `json:"latitude"`
	Longitude   float64      `json:"longitude"`
	ReporterID  uint         `gorm:"not null;index" json:"reporterId"`

	Reporter *User    `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Votes    []Vote   `gorm:"foreignKey:ReportID" json:"-"`
	Follows  []Follow `gorm:"foreignKey:ReportID" json:"-"`
}

// Vote is one supporting vote; the composite unique index enforces at most
// one vote per user per report.
type Vote struct {
	BaseModel
	UserID   uint `gorm:"not null;uniqueIndex:idx_votes_user_report" json:"userId"`
	ReportID uint `gorm:"not null;uniqueIndex:idx_votes_user_report;index" json:"reportId"`
}

// Follow subscribes a user to a report's progress.
type Follow struct {
	BaseModel
	UserID   uint `gorm:"not null;uniqueIndex:idx_follows_user_report" json:"userId"`
	ReportID uint `gorm:"not null;uniqueIndex:idx_follows_user_report;index" json:"reportId"`
}
