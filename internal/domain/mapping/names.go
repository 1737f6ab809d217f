package mapping

import "strings"

// nameAliases maps secondary-division register names to the short form
// the top flight uses for the same club.
var nameAliases = map[string]string{
	"Leicester City": "Leicester",
	"Leeds United":   "Leeds",
	"Southampton FC": "Southampton",
	"Norwich City":   "Norwich",
	"Watford FC":     "Watford",
	"Burnley FC":     "Burnley",
}

// ResolveTeamName matches a division-table name against candidate team
// names: exact match first, then the alias table, then the first
// candidate sharing any whitespace-delimited token. candidates must be
// sorted so the token fallback stays deterministic.
func ResolveTeamName(name string, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if candidate == name {
			return candidate, true
		}
	}

	if alias, ok := nameAliases[name]; ok {
		for _, candidate := range candidates {
			if candidate == alias {
				return candidate, true
			}
		}
	}

	tokens := tokenSet(name)
	for _, candidate := range candidates {
		for token := range tokenSet(candidate) {
			if _, ok := tokens[token]; ok {
				return candidate, true
			}
		}
	}
	return "", false
}

func tokenSet(name string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(name))
	tokens := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		tokens[field] = struct{}{}
	}
	return tokens
}
