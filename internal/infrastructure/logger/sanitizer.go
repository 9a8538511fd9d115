package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var sensitiveParams = map[string]bool{
	"token":        true,
	"access_token": true,
	"password":     true,
}

// Sanitizer masks credentials and email addresses before they reach access logs.
// Emails are replaced by a salted hash so one user's requests still correlate.
type Sanitizer struct {
	salt         string
	emailPattern *regexp.Regexp
}

func NewSanitizer(salt string) *Sanitizer {
	return &Sanitizer{
		salt:         salt,
		emailPattern: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	}
}

// Query redacts credential parameters and hashes emails in a raw query string.
// Parameter order is preserved.
func (s *Sanitizer) Query(raw string) string {
	if raw == "" {
		return ""
	}
	pairs := strings.Split(raw, "&")
	for i, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(key)
		if err != nil {
			name = key
		}
		if sensitiveParams[strings.ToLower(name)] {
			pairs[i] = key + "=" + redacted
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil && s.emailPattern.MatchString(decoded) {
			pairs[i] = key + "=" + s.Email(decoded)
		}
	}
	return strings.Join(pairs, "&")
}

// Email replaces every email address in text with its hash.
func (s *Sanitizer) Email(text string) string {
	return s.emailPattern.ReplaceAllStringFunc(text, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", s.hash(strings.ToLower(match)))
	})
}

func (s *Sanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}
