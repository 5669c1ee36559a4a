package feature

import (
	"fmt"
	"testing"
)

// TestSetFlag sets a feature flag to the given value until the test finishes.
func TestSetFlag(t testing.TB, f *FlagSet, flag FlagName, value bool) {
	current := f.Enabled(flag)

	panicIfCalled := func(msg string) {
		panic(msg)
	}

	if err := f.Apply(fmt.Sprintf("%s=%v", flag, value), panicIfCalled); err != nil {
		// not reachable
		panic(err)
	}

	t.Cleanup(func() {
		if err := f.Apply(fmt.Sprintf("%s=%v", flag, current), panicIfCalled); err != nil {
			// not reachable
			panic(err)
		}
	})
}
