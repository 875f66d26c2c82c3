package config

// Ptr returns a pointer to v. It keeps literal configuration overrides short.
func Ptr[T any](v T) *T { return &v }

func strSlicePtr(ss []string) *[]string { return &ss }

func sliceContains(ss []string, s string) bool {
	for _, item := range ss {
		if item == s {
			return true
		}
	}
	return false
}
