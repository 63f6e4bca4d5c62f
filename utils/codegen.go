// Package utils provides utility functions for the application.
package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomCode returns n characters drawn from the uppercase alphanumeric alphabet.
// Uniqueness is not checked here; the unique index on the code column is the
// authority, and callers retry on a constraint violation.
func randomCode(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// GenerateAffiliateCode returns a new partnership tracking code (AFF + 8 chars)
func GenerateAffiliateCode() string {
	return AffiliateCodePrefix + randomCode(8)
}

// GenerateProgramCode returns a new program code (PRG + 6 chars)
func GenerateProgramCode() string {
	return ProgramCodePrefix + randomCode(6)
}

// GenerateClickID returns a click identifier of the form clk_<unix-millis>_<rand36>.
// The millisecond timestamp plus a random base36 suffix keeps collisions
// practically impossible under concurrent load without a central counter.
func GenerateClickID() string {
	suffix := strconv.FormatUint(rand.Uint64(), 36)
	if len(suffix) > 13 {
		suffix = suffix[:13]
	}
	return fmt.Sprintf("%s_%d_%s", ClickIDPrefix, time.Now().UnixMilli(), suffix)
}
