package outline_test

import (
	"fmt"

	"github.com/matzehuels/mindmap/pkg/outline"
)

func ExampleParse() {
	forest := outline.Parse("# Project\n## Goals\n### Speed\n## Risks\nbody text is ignored")
	fmt.Print(forest)
	// Output:
	// Project
	//   Goals
	//     Speed
	//   Risks
}
