// Package markup rewrites formula source before it leaves the editor.
package markup

import (
	"fmt"
	"strings"
)

// synonyms are applied in order. None of the canonical forms contains a
// synonym, so applying the rewrite twice is the same as applying it once.
var synonyms = strings.NewReplacer(
	`\land`, `\wedge`,
	`\lor`, `\vee`,
	`\lnot`, `\neg`,
)

// Preprocess rewrites command synonyms the render service does not know to
// their canonical names. Everything else passes through untouched.
func Preprocess(text string) string {
	return synonyms.Replace(text)
}

const snippetTemplate = "[tex:%s]"

// Snippet wraps the preprocessed formula in wiki tex syntax
func Snippet(text string) string {
	return fmt.Sprintf(snippetTemplate, Preprocess(text))
}
