package mutagens

func injectInvalidDate(_, _ string) Result {
	return Applied("31/02/2023")
}

func injectAmbiguousDate(_, _ string) Result {
	return Applied("9999-99-99")
}

func injectBadTimezone(_, _ string) Result {
	return Applied("2023-05-12T00:00:00+25:00")
}
