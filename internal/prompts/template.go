package prompts

import "regexp"

// placeholderRe matches {{ name }} tokens. Only word characters are
// allowed inside the braces; path separators and dots do not form a
// placeholder.
var placeholderRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Placeholders returns the distinct placeholder names in template, in
// order of first appearance.
func Placeholders(template string) []string {
	matches := placeholderRe.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

// ApplyArguments substitutes matched tokens with their argument values.
// A token whose name is absent from arguments is left verbatim;
// arguments are optional at the protocol level, so pass-through is not
// an error.
func ApplyArguments(template string, arguments map[string]string) string {
	if len(arguments) == 0 {
		return template
	}
	return placeholderRe.ReplaceAllStringFunc(template, func(token string) string {
		name := placeholderRe.FindStringSubmatch(token)[1]
		if value, ok := arguments[name]; ok {
			return value
		}
		return token
	})
}
