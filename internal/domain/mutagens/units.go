package mutagens

const unitTag = "unit"

// unitSwaps pairs each recognized unit with its concentration counterpart.
var unitSwaps = map[string]string{
	"kg":   "kg/l",
	"kg/l": "kg",
	"mg":   "mg/l",
	"mg/l": "mg",
	"ug":   "ug/l",
	"ug/l": "ug",
}

func swapUnit(tag, text string) Result {
	if tag != unitTag {
		return Skipped()
	}

	swapped, ok := unitSwaps[text]
	if !ok {
		return Skipped()
	}

	return Applied(swapped)
}

func injectInvalidUnit(_, _ string) Result {
	return Applied("liters/kg")
}

func injectEmpty(_, _ string) Result {
	return Applied("")
}
