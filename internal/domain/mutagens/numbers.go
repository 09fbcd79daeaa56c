package mutagens

const (
	scaleFactor  = 1000
	extremeValue = "1e+308"
)

func zeroNumeric(_, text string) Result {
	if _, ok := parseNumber(text); !ok {
		return Skipped()
	}

	return Applied("0")
}

func negateNumeric(_, text string) Result {
	v, ok := parseNumber(text)
	if !ok {
		return Skipped()
	}

	return Applied(formatNumber(-v))
}

func scaleNumeric(_, text string) Result {
	v, ok := parseNumber(text)
	if !ok {
		return Skipped()
	}

	return Applied(formatNumber(v * scaleFactor))
}

func injectNaN(_, _ string) Result {
	return Applied("NaN")
}

func injectExtreme(_, _ string) Result {
	return Applied(extremeValue)
}

func injectMalformedNumeric(_, _ string) Result {
	return Applied("12..34")
}
