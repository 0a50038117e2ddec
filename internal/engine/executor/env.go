package executor

import (
	"os"
	"regexp"
)

// envRefPattern matches %NAME%, ${NAME} and $NAME references.
var envRefPattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%|\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandEnv replaces environment-variable references in s using lookup.
// Both the Windows %NAME% form and the POSIX $NAME / ${NAME} forms are
// recognized. References to undefined variables are left untouched.
func ExpandEnv(s string, lookup func(string) (string, bool)) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		groups := envRefPattern.FindStringSubmatch(ref)
		name := groups[1] + groups[2] + groups[3]
		if value, ok := lookup(name); ok {
			return value
		}
		return ref
	})
}
