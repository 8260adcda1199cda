package profiler_test

import (
	"fmt"

	"github.com/anne-lang/profiler"
)

func Example() {
	p := profiler.New()

	scope := p.StartScope("test_scope2")
	scope.End()

	if err := p.Close(); err != nil {
		fmt.Println("close:", err)

		return
	}

	for _, r := range p.Records() {
		fmt.Println(r.Name)
	}

	// Output:
	// test_scope2
}
