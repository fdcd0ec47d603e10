package advisor

import (
	"regexp"
	"strings"
)

// The classifier's reply is free text carrying two labeled fields. A field
// that is simply absent is a normal outcome here, not an error; policy for
// missing fields lives with the caller.

var (
	categoryFieldRe = regexp.MustCompile(`(?mi)^\s*category:\s*(\w+)`)
	stockFieldRe    = regexp.MustCompile(`(?mi)^\s*stock:\s*(.+)$`)
)

type classifierFields struct {
	Category      string
	CategoryFound bool
	Stock         string
	StockFound    bool
}

// parseClassifierOutput extracts the category and stock fields from the
// raw model reply.
func parseClassifierOutput(raw string) classifierFields {
	var f classifierFields

	if m := categoryFieldRe.FindStringSubmatch(raw); m != nil {
		f.Category = strings.TrimSpace(m[1])
		f.CategoryFound = true
	}
	if m := stockFieldRe.FindStringSubmatch(raw); m != nil {
		f.Stock = strings.TrimSpace(m[1])
		f.StockFound = true
	}

	return f
}
