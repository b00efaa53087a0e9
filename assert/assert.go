package assert

import "github.com/oomph-ac/thirdperson/oerror"

// IsTrue panics with a formatted error when ok is false. It guards programmer errors that must
// never happen at runtime, such as reading a history slot that was never written.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}
