package taxonomy

// DefaultSeverityOf returns the built-in severity for a warning kind.
// Missing-tag and malformed-tag findings block CI by default; orphaned
// tags are informational; everything else is a plain warning.
func DefaultSeverityOf(k Kind) Severity {
	sev, ok := severityMap[k]
	if !ok {
		return SeverityWarning // unknown kinds default to warning
	}
	return sev
}

var severityMap = map[Kind]Severity{
	MissingPriorityTag: SeverityError,
	MissingTypeTag:     SeverityError,
	MalformedTag:       SeverityError,

	LowValueTag:   SeverityWarning,
	DuplicateTag:  SeverityWarning,
	ExcessiveTags: SeverityWarning,
	TagTypo:       SeverityWarning,
	AmbiguousTag:  SeverityWarning,

	OrphanedTag: SeverityInfo,

	LongScenario:         SeverityWarning,
	TooFewSteps:          SeverityWarning,
	MissingGiven:         SeverityWarning,
	MissingWhen:          SeverityWarning,
	MissingThen:          SeverityWarning,
	UIFocusedStep:        SeverityWarning,
	ImplementationDetail: SeverityWarning,
	LongScenarioName:     SeverityWarning,
	LongStepText:         SeverityWarning,
	IncorrectStepOrder:   SeverityWarning,
	AmbiguousPronoun:     SeverityWarning,
	InconsistentTense:    SeverityWarning,
	ConjunctionInStep:    SeverityWarning,
	MissingExamples:      SeverityWarning,
	TooFewExamples:       SeverityWarning,
}
