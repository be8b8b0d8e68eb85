package id

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)
var multiDash = regexp.MustCompile(`-+`)

// Kebab lowercases s and joins its alphanumeric runs with single dashes.
func Kebab(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// PlanID builds YYYY-MM-DD-<kebab-workout>-NN where NN is xxhash(seed)%100.
// It tags a generated plan in logs and on the page; it is never persisted.
func PlanID(dateISO, workout string, seedInput []byte) string {
	h := xxhash.Sum64(seedInput) % 100
	return fmt.Sprintf("%s-%s-%02d", dateISO, Kebab(workout), h)
}
