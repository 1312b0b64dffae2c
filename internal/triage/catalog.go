package triage

import "strings"

// ConditionFlags is the fixed set of symptom categories the questionnaire
// branches on. A fixed struct rather than a map so a mistyped flag name fails
// to compile instead of silently never matching.
type ConditionFlags struct {
	NeedsQuestions           bool // vomiting / diarrhea / cough / cries
	HasLossOfAppetite        bool
	HasBloodInStool          bool
	HasUrinaryProblems       bool
	HasSkinItching           bool
	HasWound                 bool
	HasEarProblems           bool
	HasEyeDischarge          bool
	HasLameness              bool
	HasBreathingDifficulties bool
	HasLump                  bool
	HasAggression            bool
}

func (f ConditionFlags) Any() bool {
	return f != ConditionFlags{}
}

// catalogRule maps keywords to one flag. Keywords cover the canonical symptom
// identifier plus its French synonyms, accented and unaccented spellings both,
// since client free text comes in either form.
type catalogRule struct {
	keywords []string
	set      func(*ConditionFlags)
	isSet    func(ConditionFlags) bool
}

// catalog order is the flag-detection order; question groups render in this
// order after the shared generic group.
var catalog = []catalogRule{
	{
		keywords: []string{
			"vomissement", "vomit", "vomi",
			"diarrhée", "diarrhee",
			"toux", "tousse",
			"pleure", "pleurs", "gémissement", "gemissement",
		},
		set:   func(f *ConditionFlags) { f.NeedsQuestions = true },
		isSet: func(f ConditionFlags) bool { return f.NeedsQuestions },
	},
	{
		keywords: []string{"appétit", "appetit", "anorexie", "ne mange pas", "ne mange plus"},
		set:      func(f *ConditionFlags) { f.HasLossOfAppetite = true },
		isSet:    func(f ConditionFlags) bool { return f.HasLossOfAppetite },
	},
	{
		keywords: []string{"sang dans les selles", "selles avec du sang", "selle sanglante"},
		set:      func(f *ConditionFlags) { f.HasBloodInStool = true },
		isSet:    func(f ConditionFlags) bool { return f.HasBloodInStool },
	},
	{
		keywords: []string{"urin", "pipi", "cystite"},
		set:      func(f *ConditionFlags) { f.HasUrinaryProblems = true },
		isSet:    func(f ConditionFlags) bool { return f.HasUrinaryProblems },
	},
	{
		keywords: []string{"démangeaison", "demangeaison", "gratte", "prurit"},
		set:      func(f *ConditionFlags) { f.HasSkinItching = true },
		isSet:    func(f ConditionFlags) bool { return f.HasSkinItching },
	},
	{
		keywords: []string{"plaie", "blessure", "coupure"},
		set:      func(f *ConditionFlags) { f.HasWound = true },
		isSet:    func(f ConditionFlags) bool { return f.HasWound },
	},
	{
		keywords: []string{"oreille", "otite"},
		set:      func(f *ConditionFlags) { f.HasEarProblems = true },
		isSet:    func(f ConditionFlags) bool { return f.HasEarProblems },
	},
	{
		keywords: []string{"écoulement oculaire", "ecoulement oculaire", "oeil", "œil", "yeux", "conjonctivite"},
		set:      func(f *ConditionFlags) { f.HasEyeDischarge = true },
		isSet:    func(f ConditionFlags) bool { return f.HasEyeDischarge },
	},
	{
		keywords: []string{"boiterie", "boite", "boitement", "patte"},
		set:      func(f *ConditionFlags) { f.HasLameness = true },
		isSet:    func(f ConditionFlags) bool { return f.HasLameness },
	},
	{
		keywords: []string{"respir", "essouffle", "halète", "halete"},
		set:      func(f *ConditionFlags) { f.HasBreathingDifficulties = true },
		isSet:    func(f ConditionFlags) bool { return f.HasBreathingDifficulties },
	},
	{
		keywords: []string{"grosseur", "boule", "masse"},
		set:      func(f *ConditionFlags) { f.HasLump = true },
		isSet:    func(f ConditionFlags) bool { return f.HasLump },
	},
	{
		keywords: []string{"agress", "mord"},
		set:      func(f *ConditionFlags) { f.HasAggression = true },
		isSet:    func(f ConditionFlags) bool { return f.HasAggression },
	},
}

// ComputeConditionFlags derives flags from the selected symptoms and the free
// text. Matching is case-insensitive substring matching, lenient on purpose:
// a false positive costs one extra question, a false negative skips a
// follow-up the vet needed. Unknown symptom strings produce no flags.
func ComputeConditionFlags(selectedSymptoms []string, customSymptom string) ConditionFlags {
	var flags ConditionFlags

	custom := strings.ToLower(customSymptom)

	lowered := make([]string, 0, len(selectedSymptoms))
	for _, s := range selectedSymptoms {
		lowered = append(lowered, strings.ToLower(s))
	}

	for _, rule := range catalog {
		for _, kw := range rule.keywords {
			if custom != "" && strings.Contains(custom, kw) {
				rule.set(&flags)
				break
			}

			matched := false
			for _, sym := range lowered {
				if strings.Contains(sym, kw) {
					matched = true
					break
				}
			}
			if matched {
				rule.set(&flags)
				break
			}
		}
	}

	return flags
}
