package minireport

import (
	"context"
	"image"
	"io"
	"time"
)

// GradingReport is the parsed grading record returned for one PDF. The JSON
// keys are part of the public contract.
type GradingReport struct {
	ReportNumber   string         `json:"ReportNumber"`
	ReportDate     string         `json:"ReportDate"`
	Identification Identification `json:"GIANATURALDIAMONDGRADINGREPORT"`
	Results        GradingResults `json:"GRADINGRESULTS"`
	Additional     AdditionalInfo `json:"ADDITIONALGRADINGINFORMATION"`
	Images         Images         `json:"Images"`
}

type Identification struct {
	GIAReportNumber      string `json:"GIAReportNumber"`
	ShapeAndCuttingStyle string `json:"ShapeandCuttingStyle"`
	Measurements         string `json:"Measurements"`
}

type GradingResults struct {
	CaratWeight  string `json:"CaratWeight"`
	ColorGrade   string `json:"ColorGrade"`
	ClarityGrade string `json:"ClarityGrade"`
	CutGrade     string `json:"CutGrade"`
}

type AdditionalInfo struct {
	Polish                 string `json:"Polish"`
	Symmetry               string `json:"Symmetry"`
	Fluorescence           string `json:"Fluorescence"`
	ClarityCharacteristics string `json:"ClarityCharacteristics"`
}

// Images holds public URLs of the generated artifacts. Proportions is empty
// when the diagram could not be located.
type Images struct {
	Proportions string     `json:"Proportions"`
	QRCode      string     `json:"QRCode"`
	Barcode10   BarcodeRef `json:"Barcode10"`
	Barcode12   BarcodeRef `json:"Barcode12"`
}

type BarcodeRef struct {
	Number string `json:"number"`
	Image  string `json:"image"`
}

// Result is the response body of a mini-report request.
type Result struct {
	Count   int              `json:"count"`
	Reports []*GradingReport `json:"reports"`
}

// Upload is one submitted PDF.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Rect is a page region in PDF points with a top-left origin.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Document is an opened PDF.
type Document interface {
	// Text returns the text of every page, concatenated in page order.
	Text() string
	// FindText returns the first page (0-based) containing needle, compared
	// case-insensitively, and the bounding box of the match.
	FindText(needle string) (page int, box Rect, ok bool)
	// EmbeddedImages returns the raster images embedded in the document in page order.
	EmbeddedImages() ([]image.Image, error)
	// RenderClip rasterizes clip of page at dpi.
	RenderClip(page int, clip Rect, dpi int) (image.Image, error)
	Close() error
}

// DocumentOpener validates and opens PDF bytes.
type DocumentOpener interface {
	Open(data []byte) (Document, error)
}

// CodeGenerator renders the verification QR code and random barcodes as PNG.
type CodeGenerator interface {
	VerificationQR(content string) ([]byte, error)
	Barcode(digits int) (number string, png []byte, err error)
}

// ArtifactStore persists generated images.
type ArtifactStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
