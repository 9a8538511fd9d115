package minireport

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

const sampleText = `GIA NATURAL DIAMOND GRADING REPORT
February 14, 2024
GIA Report Number
2141438171
Shape and Cutting Style
Round Brilliant
Measurements
6.45 - 6.48 x 3.99 mm
GRADING RESULTS
Carat Weight
1.01 carat
Color Grade
G
Clarity Grade
VS1
Cut Grade
Excellent
ADDITIONAL GRADING INFORMATION
Polish
Excellent
Symmetry
Very Good
Fluorescence
None
Clarity Characteristics
Crystal, Feather, Needle
PROPORTIONS
`

var pdfBytes = []byte("%PDF-1.4\n%fake\n")

type fakeDocument struct {
	text      string
	findFunc  func(needle string) (int, Rect, bool)
	images    []image.Image
	imagesErr error
	clipFunc  func(page int, clip Rect, dpi int) (image.Image, error)
	closed    bool
}

func (d *fakeDocument) Text() string { return d.text }

func (d *fakeDocument) FindText(needle string) (int, Rect, bool) {
	if d.findFunc != nil {
		return d.findFunc(needle)
	}
	return 0, Rect{}, false
}

func (d *fakeDocument) EmbeddedImages() ([]image.Image, error) { return d.images, d.imagesErr }

func (d *fakeDocument) RenderClip(page int, clip Rect, dpi int) (image.Image, error) {
	if d.clipFunc != nil {
		return d.clipFunc(page, clip, dpi)
	}
	return nil, errors.New("no renderer")
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

type fakeOpener struct {
	doc *fakeDocument
	err error
}

func (o *fakeOpener) Open([]byte) (Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

type fakeCodes struct {
	mu        sync.Mutex
	qrContent []string
}

func (c *fakeCodes) VerificationQR(content string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.qrContent = append(c.qrContent, content)
	return []byte("qr"), nil
}

func (c *fakeCodes) Barcode(digits int) (string, []byte, error) {
	return "1" + strings.Repeat("0", digits-1), []byte("barcode"), nil
}

type memoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryStore() *memoryStore { return &memoryStore{files: map[string][]byte{}} }

func (m *memoryStore) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = data
	return nil
}

func (m *memoryStore) PurgeOlderThan(context.Context, time.Time) (int, error) { return 0, nil }

func newTestService(doc *fakeDocument) (*Service, *fakeCodes, *memoryStore) {
	cfg := &config.Config{
		ReportCheckBaseURL:   "https://www.gia.edu/report-check",
		MiniReportsURLPrefix: "/mini-reports",
	}
	codes := &fakeCodes{}
	store := newMemoryStore()
	return NewService(cfg, &fakeOpener{doc: doc}, codes, store, zerolog.Nop()), codes, store
}

func pdfUpload(name string) Upload {
	return Upload{Filename: name, ContentType: "application/pdf", Data: pdfBytes}
}

func solid(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 255})
		}
	}
	return img
}

func TestParseText(t *testing.T) {
	rep := ParseText(sampleText)

	assert.Equal(t, "2141438171", rep.ReportNumber)
	assert.Equal(t, "February 14, 2024", rep.ReportDate)
	assert.Equal(t, "2141438171", rep.Identification.GIAReportNumber)
	assert.Equal(t, "Round Brilliant", rep.Identification.ShapeAndCuttingStyle)
	assert.Equal(t, "6.45 - 6.48 x 3.99 mm", rep.Identification.Measurements)
	assert.Equal(t, "1.01 carat", rep.Results.CaratWeight)
	assert.Equal(t, "G", rep.Results.ColorGrade)
	assert.Equal(t, "VS1", rep.Results.ClarityGrade)
	assert.Equal(t, "Excellent", rep.Results.CutGrade)
	assert.Equal(t, "Excellent", rep.Additional.Polish)
	assert.Equal(t, "Very Good", rep.Additional.Symmetry)
	assert.Equal(t, "None", rep.Additional.Fluorescence)
	assert.Equal(t, "Crystal, Feather, Needle", rep.Additional.ClarityCharacteristics)
}

func TestParseTextMissingFieldsAreEmpty(t *testing.T) {
	rep := ParseText("nothing useful here")
	assert.Empty(t, rep.ReportNumber)
	assert.Empty(t, rep.Results.ClarityGrade)
	assert.Empty(t, rep.Identification.ShapeAndCuttingStyle)
}

func TestParseTextShapeFallback(t *testing.T) {
	rep := ParseText("12345 Oval Brilliant\n")
	assert.Equal(t, "Oval Brilliant", rep.Identification.ShapeAndCuttingStyle)
}

func TestParseTextReportNumberNeedsSevenDigits(t *testing.T) {
	assert.Empty(t, ParseText("GIA Report Number 123456").ReportNumber)
	assert.Equal(t, "1234567", ParseText("GIA Report Number: 1234567").ReportNumber)
}

func TestParseTextClarityGradeEnum(t *testing.T) {
	assert.Empty(t, ParseText("Clarity Grade\nVS3").Results.ClarityGrade)
	assert.Equal(t, "Internally Flawless", ParseText("Clarity Grade\nInternally Flawless").Results.ClarityGrade)
	assert.Equal(t, "Very Good", ParseText("Cut Grade: Very Good").Results.CutGrade)
}

func TestLocateProportionsWithoutLabel(t *testing.T) {
	doc := &fakeDocument{text: "no diagram"}
	assert.Nil(t, LocateProportions(doc, zerolog.Nop()))
}

func TestLocateProportionsClip(t *testing.T) {
	var gotClip Rect
	var gotDPI int
	doc := &fakeDocument{
		findFunc: func(needle string) (int, Rect, bool) {
			return 1, Rect{X0: 100, Y0: 200, X1: 180, Y1: 212}, true
		},
		clipFunc: func(page int, clip Rect, dpi int) (image.Image, error) {
			gotClip, gotDPI = clip, dpi
			return solid(4, 4), nil
		},
	}

	data := LocateProportions(doc, zerolog.Nop())
	require.NotNil(t, data)
	assert.Equal(t, Rect{X0: 92, Y0: 214, X1: 208, Y1: 292}, gotClip)
	assert.Equal(t, 300, gotDPI)
}

func TestLocateProportionsRenderFailure(t *testing.T) {
	doc := &fakeDocument{
		findFunc: func(string) (int, Rect, bool) { return 0, Rect{}, true },
	}
	assert.Nil(t, LocateProportions(doc, zerolog.Nop()))
}

func TestLocateQRCode(t *testing.T) {
	doc := &fakeDocument{images: []image.Image{solid(300, 100), solid(120, 120), solid(200, 205)}}
	data := LocateQRCode(doc, zerolog.Nop())
	require.NotNil(t, data)

	img, err := imageproc.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 205, img.Bounds().Dy())

	assert.Nil(t, LocateQRCode(&fakeDocument{images: []image.Image{solid(149, 149)}}, zerolog.Nop()))
}

func TestProcessGeneratesArtifacts(t *testing.T) {
	doc := &fakeDocument{text: sampleText}
	svc, codes, store := newTestService(doc)

	res, err := svc.Process(context.Background(), []Upload{pdfUpload("x.pdf")})
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	rep := res.Reports[0]

	assert.True(t, doc.closed)
	assert.Empty(t, rep.Images.Proportions)
	assert.Equal(t, "/mini-reports/2141438171/qrcode.png", rep.Images.QRCode)
	assert.Equal(t, "/mini-reports/2141438171/barcode10.png", rep.Images.Barcode10.Image)
	assert.Equal(t, "1000000000", rep.Images.Barcode10.Number)
	assert.Equal(t, "100000000000", rep.Images.Barcode12.Number)
	assert.Equal(t, []string{"https://www.gia.edu/report-check?reportno=2141438171"}, codes.qrContent)

	assert.Contains(t, store.files, "2141438171/qrcode.png")
	assert.Contains(t, store.files, "2141438171/barcode12.png")
	assert.NotContains(t, store.files, "2141438171/proportions.png")
}

func TestProcessUsesEmbeddedQRAndFilenameStem(t *testing.T) {
	doc := &fakeDocument{text: "unreadable", images: []image.Image{solid(160, 160)}}
	svc, codes, store := newTestService(doc)

	res, err := svc.Process(context.Background(), []Upload{pdfUpload("scan_001.pdf")})
	require.NoError(t, err)
	rep := res.Reports[0]

	assert.Empty(t, rep.ReportNumber)
	assert.Equal(t, "/mini-reports/scan_001/qrcode.png", rep.Images.QRCode)
	assert.Empty(t, codes.qrContent)
	assert.NotEqual(t, []byte("qr"), store.files["scan_001/qrcode.png"])
}

func TestProcessValidation(t *testing.T) {
	svc, _, _ := newTestService(&fakeDocument{})
	ctx := context.Background()

	_, err := svc.Process(ctx, nil)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	three := []Upload{pdfUpload("a.pdf"), pdfUpload("b.pdf"), pdfUpload("c.pdf")}
	_, err = svc.Process(ctx, three)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Process(ctx, []Upload{{Filename: "a.txt", ContentType: "text/plain", Data: pdfBytes}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.txt is not a valid PDF")

	_, err = svc.Process(ctx, []Upload{{Filename: "fake.pdf", ContentType: "application/pdf", Data: []byte("hello")}})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestProcessRejectsUnreadablePDF(t *testing.T) {
	cfg := &config.Config{MiniReportsURLPrefix: "/mini-reports"}
	svc := NewService(cfg, &fakeOpener{err: errors.New("broken xref")}, &fakeCodes{}, newMemoryStore(), zerolog.Nop())

	_, err := svc.Process(context.Background(), []Upload{pdfUpload("broken.pdf")})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "report", fileStem(".pdf"))
	assert.Equal(t, "abc", fileStem(`C:\tmp\abc.pdf`))
	assert.Equal(t, "abc", fileStem("../../abc.pdf"))
}
