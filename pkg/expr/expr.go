// Package expr evaluates the file-name placeholder templates used for
// move-existing destinations, temp-file names and done-file names.
//
// The supported grammar is deliberately tiny: a handful of ${file:...}
// tokens (and their $simple{...} alias forms) over the attributes of a
// single file name. Substitution is literal and first-match; any
// placeholder syntax left after substitution is a configuration error,
// never passed through verbatim.
package expr

import (
	"strings"

	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/paths"
)

// FileContext is the read-only evaluation context built from one file
// name. These three attributes are the only ones templates can see.
type FileContext struct {
	// Name is the file name as handed to the publisher, including any
	// directory component.
	Name string

	// OnlyName is the base name without directory.
	OnlyName string

	// Parent is the directory component, "" when there is none.
	Parent string
}

// NewFileContext builds the evaluation context for name.
func NewFileContext(name string) FileContext {
	return FileContext{
		Name:     name,
		OnlyName: paths.StripPath(name),
		Parent:   paths.OnlyPath(name),
	}
}

// tokens maps each supported placeholder to its context attribute.
// Longer tokens come first so that ${file:name} never consumes the
// prefix of ${file:name.noext}.
func (c FileContext) tokens() []struct{ token, value string } {
	noext := paths.StripExt(c.OnlyName)
	return []struct{ token, value string }{
		{"${file:name.noext}", noext},
		{"$simple{file:name.noext}", noext},
		{"${file:onlyname}", c.OnlyName},
		{"$simple{file:onlyname}", c.OnlyName},
		{"${file:parent}", c.Parent},
		{"$simple{file:parent}", c.Parent},
		{"${file:name}", c.Name},
		{"$simple{file:name}", c.Name},
	}
}

// Evaluate substitutes the supported placeholders in template against
// ctx. Each placeholder is replaced at its first occurrence only, so a
// template that repeats a token leaves the later occurrences in place
// and fails. Remaining placeholder syntax after substitution fails
// with UNRESOLVED_PLACEHOLDER.
func Evaluate(template string, ctx FileContext) (string, error) {
	out := template
	for _, t := range ctx.tokens() {
		out = strings.Replace(out, t.token, t.value, 1)
	}

	if HasStartToken(out) {
		return "", errors.Newf(errors.ErrUnresolvedPlaceholder,
			"%s. Cannot resolve reminder: %s", ctx.Name, out)
	}

	return out, nil
}

// HasStartToken reports whether s still contains placeholder syntax,
// in either the ${ } or the $simple{ } form.
func HasStartToken(s string) bool {
	return strings.Contains(s, "${") || strings.Contains(s, "$simple{")
}
