//go:build !shareassert

package sharemap

// debugAssert is a no-op outside the shareassert build tag.
func debugAssert(cond bool, msg string) {}
