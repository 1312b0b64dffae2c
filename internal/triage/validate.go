package triage

import "strings"

// AnswerLookup is the read side of an answer store.
type AnswerLookup interface {
	Answer(questionKey string) (string, bool)
}

// RequiredKeys returns, in rendering order and without duplicates, every
// question key that must be answered for the given flags: the union of each
// set flag's generic subset and specific questions. Unlockable auxiliary
// fields and photo slots are never required.
func RequiredKeys(flags ConditionFlags, keyPrefix string) []string {
	var keys []string
	seen := map[string]bool{}

	for _, group := range SelectQuestionGroups(flags) {
		for _, q := range group.Questions {
			if seen[q.Key] {
				continue
			}
			seen[q.Key] = true
			keys = append(keys, keyPrefix+q.Key)
		}
	}

	return keys
}

// CanProceed reports whether every required question for the flags has a
// non-empty answer. No flags set means nothing to validate: always true.
// Pure: safe to re-derive on every navigation attempt regardless of what is
// currently rendered.
func CanProceed(flags ConditionFlags, answers AnswerLookup, keyPrefix string) bool {
	for _, key := range RequiredKeys(flags, keyPrefix) {
		v, ok := answers.Answer(key)
		if !ok || strings.TrimSpace(v) == "" {
			return false
		}
	}

	return true
}
