package domain

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record id prefixes.
const (
	PrefixJob     = "job"
	PrefixCompany = "ent"
	PrefixSchool  = "eco"
	PrefixAdvice  = "conseil"
)

// frenchDateLayout is the DD/MM/YYYY layout used for every record date.
const frenchDateLayout = "02/01/2006"

const suffixSpace = 36 * 36 * 36 * 36 * 36

// NewRecordID returns "<prefix>-<unix millis>-<5 base36 chars>".
func NewRecordID(prefix string, now time.Time) string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % suffixSpace
	suffix := strconv.FormatUint(n, 36)
	if len(suffix) < 5 {
		suffix = strings.Repeat("0", 5-len(suffix)) + suffix
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix)
}

// FormatDate renders t the way record dates are shown (DD/MM/YYYY).
func FormatDate(t time.Time) string {
	return t.Format(frenchDateLayout)
}
