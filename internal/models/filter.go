package models

// TagFilter is the include/exclude tag configuration for a run.
// It is a pure value; Passes performs no I/O and never fails.
type TagFilter struct {
	Include map[string]struct{}
	Exclude map[string]struct{}
}

// NewTagFilter builds a TagFilter from include and exclude tag lists.
// Empty strings are ignored; duplicates collapse.
func NewTagFilter(include, exclude []string) TagFilter {
	return TagFilter{
		Include: toTagSet(include),
		Exclude: toTagSet(exclude),
	}
}

func toTagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// Passes evaluates the inclusion predicate over a document's tags:
// (Include empty OR tags intersect Include) AND tags do not intersect
// Exclude. Exclusion wins when a document carries both an included and
// an excluded tag.
func (f TagFilter) Passes(tags []string) bool {
	for _, t := range tags {
		if _, excluded := f.Exclude[t]; excluded {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, t := range tags {
		if _, included := f.Include[t]; included {
			return true
		}
	}
	return false
}
