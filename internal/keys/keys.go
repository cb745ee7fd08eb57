// Package keys defines the storage key layout shared by every component
// that touches the key-value store.
//
// Three disjoint tag prefixes partition the namespace:
//
//	survey:<surveyID>                  one record per survey
//	response:<surveyID>:<responseID>   one record per submission
//	meta:counters:<surveyID>           incrementally maintained tallies
//
// Survey and response ids come from a fixed-alphabet generator (UUID), so
// an id never contains the separator and keys cannot alias across prefixes
// or across surveys.
package keys

const (
	// SurveyScanPrefix scopes a scan to every survey record in the
	// instance's namespace.
	SurveyScanPrefix = "survey:"

	responseTag = "response:"
	countersTag = "meta:counters:"
)

// ForSurvey returns the point-lookup key for a survey record.
func ForSurvey(surveyID string) string {
	return SurveyScanPrefix + surveyID
}

// ResponsePrefix returns the prefix that scopes a scan to exactly one
// survey's responses. Every key produced by ForResponse(surveyID, ...)
// starts with this prefix, and no other survey's response keys do.
func ResponsePrefix(surveyID string) string {
	return responseTag + surveyID + ":"
}

// ForResponse returns the storage key for one response record.
func ForResponse(surveyID, responseID string) string {
	return ResponsePrefix(surveyID) + responseID
}

// ForCounters returns the key of a survey's running counters record.
func ForCounters(surveyID string) string {
	return countersTag + surveyID
}
