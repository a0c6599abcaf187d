package workspace

import "path/filepath"

// Resolve turns a configured file reference into an absolute path. Absolute
// references are returned unchanged; relative ones are joined onto root.
// Existence is not checked. With an empty root the result is the cleaned
// relative reference and callers must validate it.
func Resolve(root, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(root, ref)
}

// ResolveAll resolves every reference in order.
func ResolveAll(root string, refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, Resolve(root, ref))
	}
	return out
}

// Relativize expresses ref relative to root. References that cannot be
// expressed relative to root (e.g. another volume) are returned as given.
func Relativize(root, ref string) string {
	rel, err := filepath.Rel(root, Resolve(root, ref))
	if err != nil {
		return ref
	}
	return rel
}
