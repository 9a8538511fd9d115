package fileid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lower-case ULID, sortable by creation time.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}

// CompanyLogoName returns a unique stored name for an uploaded company logo.
func CompanyLogoName(ext string) string {
	return "company_logo_" + New() + "." + strings.TrimPrefix(strings.ToLower(ext), ".")
}

// IsValid reports whether value parses as a ULID.
func IsValid(value string) bool {
	_, err := ulid.Parse(strings.ToUpper(strings.TrimSpace(value)))
	return err == nil
}
