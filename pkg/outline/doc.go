// Package outline turns heading-structured text into a tree of titles.
//
// # Overview
//
// A document is scanned line by line for markdown-style headings
// (`# Title`, `## Subtitle`, ... up to six `#`). Every other line is ignored,
// so body text never reaches the diagram. The recorded headings are then
// nested with a level-aware stack:
//
//	# A          A
//	## B         ├── B
//	### C        │   └── C
//	## D         └── D
//
// A heading of level L becomes a child of the nearest preceding heading with a
// level lower than L.
//
// # Scanners
//
// [ScanHeadings] is the default line scanner (`^#{1,6}\s+.+$`). [ScanMarkdown]
// walks a full goldmark AST instead, which additionally understands setext
// headings and skips `#` lines inside fenced code blocks.
//
// # Error Handling
//
// Malformed input is never an error: lines that do not match are dropped and
// a document without headings yields an empty [Forest].
package outline
