// Package css parses the small stylesheet language of markup documents:
// rules of simple selectors and property declarations.
package css

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Rule is a selector list and its declarations
type Rule struct {
	Selectors    []string
	Declarations []*Declaration
}

// Declaration is a property-value pair
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Stylesheet is a parsed stylesheet. Rules keep their source order.
type Stylesheet struct {
	Rules []*Rule
}

// ParseString parses a stylesheet from a string
func ParseString(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	var result *multierror.Error

	for _, ruleStr := range splitRules(removeComments(content)) {
		rule, err := parseRule(ruleStr)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		sheet.Rules = append(sheet.Rules, rule)
	}
	return sheet, result.ErrorOrNil()
}

// Parse parses a stylesheet from r
func Parse(r io.Reader) (*Stylesheet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(content))
}

func parseRule(ruleStr string) (*Rule, error) {
	selectorStr, body, ok := strings.Cut(ruleStr, "{")
	if !ok {
		return nil, fmt.Errorf("rule %q: missing '{'", strings.TrimSpace(ruleStr))
	}
	selectorStr = strings.TrimSpace(selectorStr)
	body = strings.TrimSuffix(strings.TrimSpace(body), "}")

	selectors := parseSelectors(selectorStr)
	if len(selectors) == 0 {
		return nil, fmt.Errorf("rule without selector")
	}
	decls, err := ParseDeclarations(body)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", selectorStr, err)
	}
	return &Rule{Selectors: selectors, Declarations: decls}, nil
}

func parseSelectors(selectorStr string) []string {
	selectors := strings.Split(selectorStr, ",")
	result := make([]string, 0, len(selectors))
	for _, selector := range selectors {
		if selector = strings.TrimSpace(selector); selector != "" {
			result = append(result, selector)
		}
	}
	return result
}

// ParseDeclarations parses a declaration block without braces, as found in a
// style attribute. Property names are lowercased.
func ParseDeclarations(block string) ([]*Declaration, error) {
	var result []*Declaration
	for _, declStr := range strings.Split(block, ";") {
		declStr = strings.TrimSpace(declStr)
		if declStr == "" {
			continue
		}
		property, value, ok := strings.Cut(declStr, ":")
		if !ok {
			return nil, fmt.Errorf("declaration %q: missing ':'", declStr)
		}
		property = strings.ToLower(strings.TrimSpace(property))
		value = strings.TrimSpace(value)
		if property == "" {
			return nil, fmt.Errorf("declaration %q: missing property", declStr)
		}

		important := false
		if v, ok := strings.CutSuffix(value, "!important"); ok {
			important = true
			value = strings.TrimSpace(v)
		}
		result = append(result, &Declaration{Property: property, Value: value, Important: important})
	}
	return result, nil
}

func removeComments(content string) string {
	var result strings.Builder
	i := 0
	for i < len(content) {
		if i+1 < len(content) && content[i] == '/' && content[i+1] == '*' {
			end := strings.Index(content[i+2:], "*/")
			if end == -1 {
				break
			}
			i += end + 4
			continue
		}
		result.WriteByte(content[i])
		i++
	}
	return result.String()
}

// splitRules splits content into "selector { ... }" chunks
func splitRules(content string) []string {
	var rules []string
	var current strings.Builder
	depth := 0

	for i := 0; i < len(content); i++ {
		char := content[i]
		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				current.WriteByte(char)
				rules = append(rules, current.String())
				current.Reset()
				continue
			}
		}
		if depth > 0 || !isWhitespace(char) || current.Len() > 0 {
			current.WriteByte(char)
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		rules = append(rules, rest)
	}
	return rules
}

func isWhitespace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}
