package mocktest

// Filter decides whether a test should run, based on its name.
type Filter func(name string) bool

// Match is a nil-safe way to call the filter; a nil Filter matches
// everything.
func (f Filter) Match(name string) bool {
	return f == nil || f(name)
}

// GlobFilters selects tests by glob patterns, where '*' matches any run of
// characters and '?' matches exactly one. A test runs if it matches at least
// one Run pattern (or Run is empty) and matches no Skip pattern.
type GlobFilters struct {
	Run  []string
	Skip []string
}

// AsFilter converts the pattern lists into a Filter.
func (g GlobFilters) AsFilter() Filter {
	return func(name string) bool {
		if len(g.Run) != 0 {
			matched := false
			for _, p := range g.Run {
				if matchGlob(p, name) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		for _, p := range g.Skip {
			if matchGlob(p, name) {
				return false
			}
		}
		return true
	}
}

// matchGlob matches name against pattern. Only '*' and '?' are special;
// there are no character classes and no escaping.
func matchGlob(pattern, name string) bool {
	// Iterative matching with single-star backtracking.
	var starPat, starName = -1, 0
	p, n := 0, 0
	for n < len(name) {
		switch {
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == name[n]):
			p++
			n++
		case p < len(pattern) && pattern[p] == '*':
			starPat = p
			starName = n
			p++
		case starPat >= 0:
			// Mismatch after a star: let the star absorb one more byte.
			starName++
			p = starPat + 1
			n = starName
		default:
			return false
		}
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}
