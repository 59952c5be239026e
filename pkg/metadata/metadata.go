// Package metadata signs exported report documents and verifies them later.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- REPORT_META_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "REPORT_META_END -->"
	// Version is written into every block this package produces.
	Version = "1"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
	ErrVersion         = errors.New("unsupported metadata version")
	ErrReportMismatch  = errors.New("report id mismatch")
)

// Metadata describes a signed export.
type Metadata struct {
	GeneratedAt time.Time
	ReportID    string
	Version     string
	Hash        string
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_META_START\s*\n(.*?)\n\s*REPORT_META_END\s*-->`)

// now is replaced in tests.
var now = time.Now

// Extract removes the metadata block from content and returns both the metadata and the cleaned content.
// The cleaned content is what gets hashed.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	cleanContent := strings.TrimRight(metadataRegex.ReplaceAllString(content, ""), "\n")

	if len(match) < 2 {
		return nil, cleanContent
	}

	meta := &Metadata{}

	for _, line := range strings.Split(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch strings.TrimSpace(key) {
		case "REPORT_ID":
			meta.ReportID = val
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.GeneratedAt = t
			}
		case "HASH":
			meta.Hash = val
		case "VERSION":
			meta.Version = val
		}
	}

	return meta, cleanContent
}

// CalculateHash computes the SHA-256 hash of the content, excluding any metadata block.
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign replaces any existing metadata block with one carrying a fresh hash and timestamp.
func Sign(content, reportID string) string {
	_, clean := Extract(content)

	block := fmt.Sprintf("\n\n%s\nREPORT_ID: %s\nVERSION: %s\nGENERATED_AT: %s\nHASH: %s\n%s",
		TagStart, reportID, Version, now().UTC().Format(time.RFC3339), CalculateHash(clean), TagEnd)

	return clean + block
}

// Verify checks if the content matches the hash in its metadata.
func Verify(content string) (*Metadata, error) {
	meta, clean := Extract(content)
	if meta == nil {
		return nil, ErrNoMetadataBlock
	}

	if meta.Version != "" && meta.Version != Version {
		return meta, fmt.Errorf("%w: %s", ErrVersion, meta.Version)
	}

	if meta.Hash == "" {
		return meta, ErrNoHashFound
	}

	if calculated := CalculateHash(clean); calculated != meta.Hash {
		return meta, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return meta, nil
}

// VerifyReport verifies content and checks that it was exported from reportID.
func VerifyReport(content, reportID string) (*Metadata, error) {
	meta, err := Verify(content)
	if err != nil {
		return meta, err
	}

	if meta.ReportID != reportID {
		return meta, fmt.Errorf("%w: document is %q, want %q", ErrReportMismatch, meta.ReportID, reportID)
	}

	return meta, nil
}
