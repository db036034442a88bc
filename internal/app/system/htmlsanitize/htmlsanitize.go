// Package htmlsanitize cleans rich text submitted through the API (biography,
// long project descriptions). It uses bluemonday to strip dangerous HTML while
// preserving safe formatting the client renders.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  *bluemonday.Policy
	plainPolicy *bluemonday.Policy
	policyOnce  sync.Once
)

func initPolicies() {
	policyOnce.Do(func() {
		// UGC base: links, lists, emphasis, code blocks.
		richPolicy = bluemonday.UGCPolicy()
		richPolicy.AllowElements("u", "s", "sub", "sup", "mark")
		richPolicy.RequireNoFollowOnLinks(true)
		richPolicy.AddTargetBlankToFullyQualifiedLinks(true)

		plainPolicy = bluemonday.StrictPolicy()
	})
}

// Rich sanitizes HTML content, keeping safe formatting.
func Rich(html string) string {
	if html == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(richPolicy.Sanitize(html))
}

// Plain strips every tag, leaving only text.
func Plain(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}

// IsPlainText checks if content appears to be plain text (no HTML tags).
func IsPlainText(content string) bool {
	if content == "" {
		return true
	}
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}

// Field sanitizes a free-text field that may carry HTML. Plain text passes
// through untouched so characters like '&' are not entity-escaped.
func Field(content string) string {
	if IsPlainText(content) {
		return content
	}
	return Rich(content)
}
