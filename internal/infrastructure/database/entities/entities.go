package entities

import "time"

// Report is the persisted report row. Schema is owned by migrations/.
type Report struct {
	ID            uint    `gorm:"primaryKey"`
	ReportNo      string  `gorm:"type:varchar(32);uniqueIndex;not null"`
	Description   string  `gorm:"type:varchar(4000);not null"`
	ShapeAndCut   string  `gorm:"type:varchar(255);not null"`
	TotEstWeight  string  `gorm:"type:varchar(255);not null"`
	Color         string  `gorm:"type:varchar(64)"`
	Clarity       string  `gorm:"type:varchar(64)"`
	StyleNumber   *string `gorm:"type:varchar(255);uniqueIndex"`
	ImageFilename *string `gorm:"type:varchar(512)"`
	Comment       *string `gorm:"type:varchar(1000)"`
	Isecopy       bool    `gorm:"not null;default:false"`
	CompanyLogo   *string
	NoticeImage   bool      `gorm:"not null;default:false"`
	IgiLogo       bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Report) TableName() string {
	return "reports"
}

// UploadedPDF logs every seeded report PDF.
type UploadedPDF struct {
	ID         uint      `gorm:"primaryKey"`
	ReportNo   string    `gorm:"not null;index"`
	Filename   string    `gorm:"not null"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (UploadedPDF) TableName() string {
	return "uploaded_pdfs"
}

// User is an account allowed to use the API.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"type:varchar(254);uniqueIndex;not null"`
	HashedPassword string `gorm:"type:varchar(128);not null"`
}

func (User) TableName() string {
	return "users"
}
