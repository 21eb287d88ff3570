// Package tokenize splits file names into alphanumeric substrings.
package tokenize

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	regexptokenizer "github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
)

// alphanumericRun matches a maximal run of ASCII letters and digits.
var alphanumericRun = regexp.MustCompile(`[a-zA-Z0-9]+`)

// nameTokenizer is shared by all callers; bleve's regexp tokenizer holds no state between calls.
var nameTokenizer analysis.Tokenizer = regexptokenizer.NewRegexpTokenizer(alphanumericRun)

// BaseName returns a file name without its directory and without its last extension.
// "report_v1.txt" becomes "report_v1"; ".bashrc" becomes "".
func BaseName(fileName string) string {
	name := filepath.Base(fileName)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Tokens returns the maximal alphanumeric runs of name in the order they appear.
// Casing is preserved and repeated runs are returned each time they occur.
func Tokens(name string) []string {
	if name == "" {
		return nil
	}
	stream := nameTokenizer.Tokenize([]byte(name))
	if len(stream) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(stream))
	for _, token := range stream {
		tokens = append(tokens, string(token.Term))
	}
	return tokens
}

// FileTokens tokenizes the base name of fileName.
func FileTokens(fileName string) []string {
	return Tokens(BaseName(fileName))
}
