package gen

import (
	"github.com/apccurtiss/langlang"
)

func unknownEntryError(name string) *langlang.Error {
	if name == "" {
		return langlang.FormatError(langlang.UnknownEntryError, "grammar defines no rules")
	}
	return langlang.FormatError(langlang.UnknownEntryError, "unknown entry rule %q", name)
}
