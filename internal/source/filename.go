package source

import "strings"

// FilenamePrefix is prepended to every derived join key; the extraction
// pipeline names its outputs the same way.
const FilenamePrefix = "extracted_"

var unsafeChars = strings.NewReplacer("/", "_", ":", "_", ".", "_")

// DeriveFilename turns a raw document identifier into the join key shared by
// score rows, PDFs and markdown files: "10.1234/abc.def" becomes
// "extracted_10_1234_abc_def". Every component that needs a key must go
// through this function.
func DeriveFilename(rawID string) string {
	return FilenamePrefix + unsafeChars.Replace(rawID)
}
