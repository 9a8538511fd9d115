package report

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/igi-pe/report-api/internal/domain/report"
)

// UploadedPDFEntry is one row of the in-memory uploaded PDF log.
type UploadedPDFEntry struct {
	ReportNo   string
	Filename   string
	UploadedAt time.Time
}

// InMemoryRepository is a thread-safe repository useful for local runs and tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report
	seq     map[string]uint64
	counter uint64
	pdfs    []UploadedPDFEntry
	now     func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		reports: make(map[string]*domain.Report),
		seq:     make(map[string]uint64),
		now:     time.Now,
	}
}

func (r *InMemoryRepository) FindByReportNo(ctx context.Context, reportNo string) (*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[reportNo]
	if !ok {
		return nil, nil
	}
	return clone(rep), nil
}

func (r *InMemoryRepository) ExistsReportNo(ctx context.Context, reportNo string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.reports[reportNo]
	return ok, nil
}

func (r *InMemoryRepository) ExistsStyleNumber(ctx context.Context, styleNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.styleTakenLocked(styleNumber, ""), nil
}

func (r *InMemoryRepository) LogoInUse(ctx context.Context, logo, exceptReportNo string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rep := range r.reports {
		if rep.ReportNo != exceptReportNo && rep.CompanyLogo != nil && *rep.CompanyLogo == logo {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) styleTakenLocked(styleNumber, exceptReportNo string) bool {
	for _, rep := range r.reports {
		if rep.ReportNo != exceptReportNo && rep.StyleNumber != nil && *rep.StyleNumber == styleNumber {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) Create(ctx context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[rep.ReportNo]; ok {
		return conflict(ctx, nil)
	}
	if rep.StyleNumber != nil && r.styleTakenLocked(*rep.StyleNumber, "") {
		return conflict(ctx, nil)
	}
	rep.CreatedAt = r.now()
	r.counter++
	r.seq[rep.ReportNo] = r.counter
	r.reports[rep.ReportNo] = clone(rep)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.reports[rep.ReportNo]
	if !ok {
		return notFound(ctx)
	}
	if rep.StyleNumber != nil && r.styleTakenLocked(*rep.StyleNumber, rep.ReportNo) {
		return conflict(ctx, nil)
	}
	updated := clone(rep)
	updated.CreatedAt = existing.CreatedAt
	r.reports[rep.ReportNo] = updated
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, reportNo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[reportNo]; !ok {
		return notFound(ctx)
	}
	delete(r.reports, reportNo)
	delete(r.seq, reportNo)
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Report, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.Query)
	var matched []*domain.Report
	for _, rep := range r.reports {
		if needle == "" || strings.Contains(strings.ToLower(rep.ReportNo), needle) {
			matched = append(matched, rep)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return r.olderLocked(matched[j], matched[i])
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Size
	if start >= len(matched) {
		return []*domain.Report{}, total, nil
	}
	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]*domain.Report, 0, end-start)
	for _, rep := range matched[start:end] {
		out = append(out, clone(rep))
	}
	return out, total, nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		out = append(out, clone(rep))
	}
	sort.Slice(out, func(i, j int) bool {
		return r.olderLocked(out[i], out[j])
	})
	return out, nil
}

// olderLocked orders by creation time, falling back to insertion order.
func (r *InMemoryRepository) olderLocked(a, b *domain.Report) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return r.seq[a.ReportNo] < r.seq[b.ReportNo]
}

func (r *InMemoryRepository) RecordUploadedPDF(ctx context.Context, reportNo, filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pdfs = append(r.pdfs, UploadedPDFEntry{ReportNo: reportNo, Filename: filename, UploadedAt: r.now()})
	return nil
}

// UploadedPDFs returns a copy of the uploaded PDF log.
func (r *InMemoryRepository) UploadedPDFs() []UploadedPDFEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]UploadedPDFEntry(nil), r.pdfs...)
}

func clone(rep *domain.Report) *domain.Report {
	out := *rep
	out.StyleNumber = cloneString(rep.StyleNumber)
	out.ImageFilename = cloneString(rep.ImageFilename)
	out.Comment = cloneString(rep.Comment)
	out.CompanyLogo = cloneString(rep.CompanyLogo)
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
