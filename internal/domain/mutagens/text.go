package mutagens

import "strings"

const longTextLength = 10000

func injectInvalidBoolean(_, text string) Result {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "false":
		// Already a boolean field: hand it a token xs:boolean rejects.
		return Applied("yes")
	default:
		return Applied("true")
	}
}

func injectLongText(_, _ string) Result {
	return Applied(strings.Repeat("A", longTextLength))
}

func injectSpecialChars(_, _ string) Result {
	return Applied("<>&'\"\x00\n")
}

func injectUnicode(_, _ string) Result {
	return Applied("💉🌐😀")
}
