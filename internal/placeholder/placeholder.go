// Package placeholder substitutes {token} placeholders in message templates.
package placeholder

import "strings"

// Fields maps a token name (without braces) to its value. A nil value renders as "".
type Fields map[string]*string

var (
	FleetTokens = []string{"company_name", "contact_person", "phone", "email", "number_of_cars", "fuel_type", "address", "status"}
	POSTokens   = []string{"client_code", "client_name", "department", "phone", "status"}
)

// Render replaces every occurrence of each known {token} in tpl. Replacement is a
// single pass, so substituted values are never expanded again. Unknown tokens are
// left untouched.
func Render(tpl string, fields Fields) string {
	if tpl == "" || len(fields) == 0 {
		return tpl
	}
	pairs := make([]string, 0, len(fields)*2)
	for name, v := range fields {
		val := ""
		if v != nil {
			val = *v
		}
		pairs = append(pairs, "{"+name+"}", val)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// RenderPtr renders a nullable template; nil stays "".
func RenderPtr(tpl *string, fields Fields) string {
	if tpl == nil {
		return ""
	}
	return Render(*tpl, fields)
}
