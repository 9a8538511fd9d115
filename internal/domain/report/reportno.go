package report

import (
	"context"
	"math/big"
	"regexp"

	"github.com/google/uuid"

	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

const maxReportNoAttempts = 10

// ReportNoPattern matches generated report numbers: two digits, "J", nine digits.
var ReportNoPattern = regexp.MustCompile(`^\d{2}J\d{9}$`)

// GenerateReportNo builds a report number from the decimal form of two random UUIDs.
func GenerateReportNo() string {
	return uuidDigits(2) + "J" + uuidDigits(9)
}

func uuidDigits(n int) string {
	for {
		id := uuid.New()
		digits := new(big.Int).SetBytes(id[:]).String()
		if len(digits) >= n {
			return digits[:n]
		}
	}
}

// NextReportNo returns a generated report number not yet used by repo.
func NextReportNo(ctx context.Context, repo Repository) (string, error) {
	for attempt := 0; attempt < maxReportNoAttempts; attempt++ {
		candidate := GenerateReportNo()
		exists, err := repo.ExistsReportNo(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
		"could not allocate a unique report number", nil, "4b0d2c71-9a55-4f4e-8d0a-3f1c6e2b7a90")
}
