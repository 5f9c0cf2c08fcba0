package service

// Actor identifies who performed a mutation.
type Actor struct {
	ID   string
	Name string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
