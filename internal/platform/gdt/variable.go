package gdt

import "regexp"

var placeholderPattern = regexp.MustCompile(`#GDT_([0-9]{4})_([A-Z0-9_]*)#`)

// ParseVariable extracts the code from a placeholder of the form
// #GDT_<code>_<NAME>#. The code is not checked against the registry.
func ParseVariable(s string) (code string, ok bool) {
	m := placeholderPattern.FindStringSubmatch(s)
	if m == nil || m[0] != s {
		return "", false
	}
	return m[1], true
}

// FindVariables returns the placeholders found in text, in order of
// appearance, duplicates included.
func FindVariables(text string) []string {
	return placeholderPattern.FindAllString(text, -1)
}
