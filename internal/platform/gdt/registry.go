// Package gdt holds the GDT (Gerätedatentransfer) field registry used to map
// form elements to practice-management-system fields.
package gdt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mapping describes one GDT field identifier.
type Mapping struct {
	Code        string `json:"code"`
	Bezeichnung string `json:"bezeichnung"`
	Length      int    `json:"length"`
	Type        string `json:"type"`
	Rule        string `json:"rule,omitempty"`
	Example     string `json:"example,omitempty"`
}

// ruleEnv is the expression environment for Mapping.Rule.
type ruleEnv struct {
	Value string `expr:"value"`
}

var (
	byCode map[string]Mapping
	rules  map[string]*vm.Program
)

func init() {
	byCode = make(map[string]Mapping, len(mappingTable))
	rules = make(map[string]*vm.Program)
	for _, m := range mappingTable {
		if _, dup := byCode[m.Code]; dup {
			panic(fmt.Sprintf("gdt: duplicate code %s", m.Code))
		}
		byCode[m.Code] = m
		if m.Rule == "" {
			continue
		}
		program, err := expr.Compile(m.Rule, expr.Env(ruleEnv{}), expr.AsBool())
		if err != nil {
			panic(fmt.Sprintf("gdt: rule for %s: %v", m.Code, err))
		}
		rules[m.Code] = program
	}
}

// GetMapping returns the mapping registered for code.
func GetMapping(code string) (Mapping, bool) {
	m, ok := byCode[code]
	return m, ok
}

// IsValidCode reports whether code is in the registry.
func IsValidCode(code string) bool {
	_, ok := byCode[code]
	return ok
}

// AllCodes returns every registered code in table order.
func AllCodes() []string {
	codes := make([]string, len(mappingTable))
	for i, m := range mappingTable {
		codes[i] = m.Code
	}
	return codes
}

// All returns a copy of every mapping in table order.
func All() []Mapping {
	out := make([]Mapping, len(mappingTable))
	copy(out, mappingTable)
	return out
}

// SearchByName returns the mappings whose name contains term, ignoring case,
// in table order. An empty term matches everything.
func SearchByName(term string) []Mapping {
	folder := cases.Fold()
	needle := folder.String(term)

	var out []Mapping
	for _, m := range mappingTable {
		if strings.Contains(folder.String(m.Bezeichnung), needle) {
			out = append(out, m)
		}
	}
	return out
}

var nonAlnumRun = regexp.MustCompile(`[^A-Z0-9]+`)

// CodeToVariable derives the placeholder #GDT_<code>_<NAME># for code. The
// name is uppercased, every run of characters outside [A-Z0-9] becomes a
// single underscore and surrounding underscores are trimmed. ok is false for
// unknown codes.
func CodeToVariable(code string) (variable string, ok bool) {
	m, ok := byCode[code]
	if !ok {
		return "", false
	}
	return "#GDT_" + m.Code + "_" + variableName(m.Bezeichnung) + "#", true
}

// variableName uppercases with full Unicode case mapping, so "ß" becomes
// "SS" rather than being dropped as a non-letter.
func variableName(name string) string {
	upper := cases.Upper(language.Und).String(name)
	return strings.Trim(nonAlnumRun.ReplaceAllString(upper, "_"), "_")
}
