package report

import (
	"strings"
	"time"
)

// Report is a single gemological report record.
type Report struct {
	ReportNo      string    `json:"report_no"`
	Description   string    `json:"description"`
	ShapeAndCut   string    `json:"shape_and_cut"`
	TotEstWeight  string    `json:"tot_est_weight"`
	Color         string    `json:"color"`
	Clarity       string    `json:"clarity"`
	StyleNumber   *string   `json:"style_number"`
	ImageFilename *string   `json:"image_filename"`
	Comment       *string   `json:"comment"`
	CompanyLogo   *string   `json:"company_logo"`
	NoticeImage   bool      `json:"notice_image"`
	Isecopy       bool      `json:"isecopy"`
	IgiLogo       bool      `json:"igi_logo"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListFilter narrows the report listing.
type ListFilter struct {
	Query string
	Page  int
	Size  int
}

// ListItem is the compact listing projection.
type ListItem struct {
	ReportNo    string  `json:"report_no"`
	StyleNumber *string `json:"style_number"`
}

// ListResult is one page of the listing.
type ListResult struct {
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Total int64      `json:"total"`
	Items []ListItem `json:"items"`
}

// Upload is an uploaded file held in memory.
type Upload struct {
	Filename string
	Data     []byte
}

// Ext returns the lower-cased extension without the dot.
func (u *Upload) Ext() string {
	idx := strings.LastIndex(u.Filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(u.Filename[idx+1:])
}

// UpdateParams carries a partial update; nil fields are left unchanged.
type UpdateParams struct {
	Description   *string
	ShapeAndCut   *string
	TotEstWeight  *string
	Color         *string
	Clarity       *string
	StyleNumber   *string
	ImageFilename *string
	Comment       *string
	NoticeImage   *bool
	Isecopy       *bool
	IgiLogo       *bool
	Image         *Upload
	CompanyLogo   *Upload
}

// UpdateResult mirrors the fields clients care about after an update.
type UpdateResult struct {
	Msg           string  `json:"msg"`
	ReportNo      string  `json:"report_no"`
	ImageFilename *string `json:"image_filename"`
	CompanyLogo   *string `json:"company_logo"`
	IgiLogo       bool    `json:"igi_logo"`
}

// ItemFailure reports why one item of a batch failed.
type ItemFailure struct {
	ReportNo string `json:"report_no"`
	Error    string `json:"error"`
}

// BatchDeleteResult summarizes a batch delete.
type BatchDeleteResult struct {
	Msg     string        `json:"msg"`
	Deleted int           `json:"deleted"`
	Failed  []ItemFailure `json:"failed"`
	Total   int           `json:"total"`
}

// PDFArchiveResult summarizes a PDF zip seeding run.
type PDFArchiveResult struct {
	Msg     string        `json:"msg"`
	Reports []string      `json:"reports"`
	Failed  []ItemFailure `json:"failed"`
}

// PublicReport is either a link to a seeded PDF or the stored record.
type PublicReport struct {
	PDFPath string
	Report  *Report
}

var imageExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true, "webp": true}

// AllowedImageExt reports whether ext is accepted for report images and logos.
func AllowedImageExt(ext string) bool {
	return imageExtensions[strings.ToLower(ext)]
}

var truthyTokens = map[string]bool{"true": true, "1": true, "yes": true, "y": true, "t": true}

// ParseTruthy interprets spreadsheet flag cells. Anything outside the token set is false.
func ParseTruthy(raw string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// ImageKey is the store key of a report image.
func ImageKey(filename string) string {
	return filename
}

// LogoKey is the store key of a company logo.
func LogoKey(filename string) string {
	return "logo/" + filename
}

// PDFKey is the store key of a seeded report PDF.
func PDFKey(reportNo string) string {
	return "pdfs/" + reportNo + ".pdf"
}

// StringPtr returns nil for blank strings and a pointer to the trimmed value otherwise.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
