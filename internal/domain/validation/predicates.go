package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailPattern    = regexp.MustCompile(`^[a-z0-9_]{3,}@[a-z]{3,}\.[a-z]{2,}$`)
	titlePattern    = regexp.MustCompile(`^[a-zA-Z]+( [a-zA-Z]+)*$`)
	contentPattern  = regexp.MustCompile(`^[a-zA-Z]+[a-zA-Z0-9 ?!.,\-+:;()"'&#@$%]*$`)
)

// Titles and content must not open with an SQL keyword, in any case.
var deniedPrefixes = []string{"INSERT", "TRUNCATE", "DELETE", "DROP", "SELECT", "UPDATE"}

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"giff": true, // historical misspelling kept accepted
}

func lengthBetween(s string, min, max int) bool {
	return validate.Var(s, fmt.Sprintf("min=%d,max=%d", min, max)) == nil
}

func startsWithDigitOrUnderscore(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '_' || (c >= '0' && c <= '9')
}

func hasDeniedPrefix(s string) bool {
	upper := strings.ToUpper(s)
	for _, p := range deniedPrefixes {
		if strings.HasPrefix(upper, p) {
			return true
		}
	}
	return false
}

func validUsername(s string) bool {
	return usernamePattern.MatchString(s) && !startsWithDigitOrUnderscore(s)
}

func validEmail(s string) bool {
	return emailPattern.MatchString(s) && !startsWithDigitOrUnderscore(s)
}

func validPassword(s string) bool {
	return passwordPattern.MatchString(s)
}

func validTitle(s string) bool {
	return !hasDeniedPrefix(s) && titlePattern.MatchString(s)
}

func validContent(s string) bool {
	return !hasDeniedPrefix(s) && contentPattern.MatchString(s)
}

func validImageName(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return imageExtensions[strings.ToLower(ext)]
}
