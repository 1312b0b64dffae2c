package triage

// Question is one closed-set single-choice follow-up question. Unlock, when
// set, describes an optional auxiliary field revealed by specific answers; the
// auxiliary field is never part of the required keys.
type Question struct {
	Key     string   `json:"key"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Unlock  *Unlock  `json:"unlock,omitempty"`
}

type Unlock struct {
	AnswerValues []string `json:"answer_values"`
	FieldKey     string   `json:"field_key"`
	Kind         string   `json:"kind"` // "text" or "photo"
}

// QuestionGroup is a named cluster of questions rendered together. PhotoKey,
// when non-empty, offers an optional photo attachment slot for the group.
type QuestionGroup struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	PhotoKey  string     `json:"photo_key,omitempty"`
}

// Generic question keys, in their fixed rendering order.
const (
	KeyGeneralForm    = "general_form"
	KeyEating         = "eating"
	KeyDrinking       = "drinking"
	KeyPainComplaints = "pain_complaints"
)

var genericQuestions = map[string]Question{
	KeyGeneralForm: {
		Key:     KeyGeneralForm,
		Prompt:  "Quel est l'état général de votre animal ?",
		Options: []string{"En forme", "Fatigué", "Abattu", "Très abattu"},
	},
	KeyEating: {
		Key:     KeyEating,
		Prompt:  "Votre animal mange-t-il normalement ?",
		Options: []string{"Oui, normalement", "Moins que d'habitude", "Ne mange plus"},
	},
	KeyDrinking: {
		Key:     KeyDrinking,
		Prompt:  "Votre animal boit-il normalement ?",
		Options: []string{"Oui, normalement", "Plus que d'habitude", "Moins que d'habitude", "Ne boit plus"},
	},
	KeyPainComplaints: {
		Key:     KeyPainComplaints,
		Prompt:  "Votre animal se plaint-il (gémissements, cris) ?",
		Options: []string{"Non", "Parfois", "Souvent"},
	},
}

var genericOrder = []string{KeyGeneralForm, KeyEating, KeyDrinking, KeyPainComplaints}

// groupRule binds one flag to its generic-question subset and its specific
// group. The table is the authoritative source of truth for the conditional
// questionnaire; iteration order is catalog order.
type groupRule struct {
	isSet   func(ConditionFlags) bool
	generic []string
	group   *QuestionGroup
}

var groupRules = []groupRule{
	{
		isSet:   func(f ConditionFlags) bool { return f.NeedsQuestions },
		generic: []string{KeyGeneralForm, KeyEating, KeyDrinking},
	},
	{
		isSet:   func(f ConditionFlags) bool { return f.HasLossOfAppetite },
		generic: []string{KeyGeneralForm, KeyDrinking},
	},
	{
		isSet: func(f ConditionFlags) bool { return f.HasBloodInStool },
		group: &QuestionGroup{
			ID: "stool",
			Questions: []Question{
				{
					Key:     "stool_consistency",
					Prompt:  "Quelle est la consistance des selles ?",
					Options: []string{"Normales", "Molles", "Liquides", "Avec du sang"},
				},
			},
		},
	},
	{
		isSet: func(f ConditionFlags) bool { return f.HasUrinaryProblems },
		group: &QuestionGroup{
			ID: "urinary",
			Questions: []Question{
				{
					Key:     "urination_frequency",
					Prompt:  "À quelle fréquence votre animal urine-t-il ?",
					Options: []string{"Normale", "Plus souvent", "Moins souvent", "Plus du tout"},
				},
				{
					Key:     "urine_quantity",
					Prompt:  "Quelle quantité d'urine observez-vous ?",
					Options: []string{"Normale", "Petites quantités", "Grandes quantités"},
				},
				{
					Key:     "blood_in_urine",
					Prompt:  "Y a-t-il du sang dans les urines ?",
					Options: []string{"Non", "Oui", "Je ne sais pas"},
				},
				{
					Key:     "genital_licking",
					Prompt:  "Votre animal se lèche-t-il les parties génitales ?",
					Options: []string{"Non", "Parfois", "Fréquemment"},
				},
			},
		},
	},
	{
		isSet: func(f ConditionFlags) bool { return f.HasSkinItching },
		group: &QuestionGroup{
			ID: "itching",
			Questions: []Question{
				{
					Key:     "itching_areas",
					Prompt:  "Quelles zones votre animal se gratte-t-il ?",
					Options: []string{"Oreilles", "Dos", "Pattes", "Tout le corps"},
				},
				{
					Key:     "antiparasitic_treatment",
					Prompt:  "Le traitement antiparasitaire est-il à jour ?",
					Options: []string{"Oui", "Non", "Je ne sais pas"},
				},
				{
					Key:     "hair_loss",
					Prompt:  "Observez-vous une perte de poils ?",
					Options: []string{"Non", "Localisée", "Généralisée"},
				},
			},
		},
	},
	{
		isSet: func(f ConditionFlags) bool { return f.HasWound },
		group: &QuestionGroup{
			ID:       "wound",
			PhotoKey: "wound_photo",
			Questions: []Question{
				{
					Key:     "wound_location",
					Prompt:  "Où se situe la plaie ?",
					Options: []string{"Tête", "Corps", "Pattes", "Queue"},
				},
				{
					Key:     "wound_oozing",
					Prompt:  "La plaie suinte-t-elle ?",
					Options: []string{"Non", "Un peu", "Beaucoup"},
				},
				{
					Key:     "wound_depth",
					Prompt:  "La plaie semble-t-elle profonde ?",
					Options: []string{"Superficielle", "Profonde", "Je ne sais pas"},
				},
				{
					Key:     "wound_bleeding",
					Prompt:  "La plaie saigne-t-elle ?",
					Options: []string{"Non", "Légèrement", "Abondamment"},
				},
			},
		},
	},
	{
		isSet:   func(f ConditionFlags) bool { return f.HasEarProblems },
		generic: []string{KeyGeneralForm, KeyPainComplaints},
		group: &QuestionGroup{
			ID: "ears",
			Questions: []Question{
				{
					Key:     "ear_redness",
					Prompt:  "L'oreille est-elle rouge ou gonflée ?",
					Options: []string{"Non", "Rouge", "Rouge et gonflée"},
				},
				{
					Key:     "head_shaking",
					Prompt:  "Votre animal secoue-t-il la tête ?",
					Options: []string{"Non", "Parfois", "Souvent"},
				},
			},
		},
	},
	{
		isSet:   func(f ConditionFlags) bool { return f.HasEyeDischarge },
		generic: []string{KeyGeneralForm, KeyEating, KeyDrinking},
		group: &QuestionGroup{
			ID: "eyes",
			Questions: []Question{
				{
					Key:     "eye_condition",
					Prompt:  "Dans quel état est l'œil ?",
					Options: []string{"Rouge", "Fermé", "Écoulement clair", "Écoulement purulent"},
				},
			},
		},
	},
	{
		isSet:   func(f ConditionFlags) bool { return f.HasLameness },
		generic: []string{KeyGeneralForm, KeyEating, KeyPainComplaints},
		group: &QuestionGroup{
			ID: "lameness",
			Questions: []Question{
				{
					Key:     "paw_position",
					Prompt:  "Votre animal pose-t-il la patte ?",
					Options: []string{"Oui, normalement", "Partiellement", "Ne la pose plus"},
				},
				{
					Key:     "recent_event",
					Prompt:  "Un événement récent a-t-il pu causer la boiterie ?",
					Options: []string{"Non", "Chute", "Accident", "Bagarre"},
					Unlock: &Unlock{
						AnswerValues: []string{"Chute", "Accident"},
						FieldKey:     "event_details",
						Kind:         "text",
					},
				},
			},
		},
	},
	{
		isSet:   func(f ConditionFlags) bool { return f.HasBreathingDifficulties },
		generic: []string{KeyGeneralForm, KeyEating, KeyDrinking},
		group: &QuestionGroup{
			ID: "breathing",
			Questions: []Question{
				{
					Key:     "panting",
					Prompt:  "Votre animal halète-t-il au repos ?",
					Options: []string{"Non", "Parfois", "En permanence"},
				},
			},
		},
	},
	{
		isSet: func(f ConditionFlags) bool { return f.HasLump },
		group: &QuestionGroup{
			ID:       "lump",
			PhotoKey: "lump_photo",
			Questions: []Question{
				{
					Key:     "lump_body_area",
					Prompt:  "Où se situe la grosseur ?",
					Options: []string{"Tête", "Dos", "Ventre", "Pattes"},
				},
				{
					Key:     "lump_size_evolution",
					Prompt:  "La taille de la grosseur évolue-t-elle ?",
					Options: []string{"Stable", "Augmente", "Diminue"},
				},
			},
		},
	},
	{
		isSet: func(f ConditionFlags) bool { return f.HasAggression },
		group: &QuestionGroup{
			ID: "aggression",
			Questions: []Question{
				{
					Key:     "bite_history",
					Prompt:  "Votre animal a-t-il déjà mordu ?",
					Options: []string{"Non", "Une fois", "Plusieurs fois"},
				},
			},
		},
	},
}

// SelectQuestionGroups returns the flat ordered list of question groups for
// the given flags: the shared generic group first (deduplicated union of the
// subsets each flag needs, in fixed order), then each specific group in flag
// order. No group or question key appears twice. No flags means no groups.
func SelectQuestionGroups(flags ConditionFlags) []QuestionGroup {
	if !flags.Any() {
		return nil
	}

	needed := map[string]bool{}
	var groups []QuestionGroup
	seen := map[string]bool{}

	for _, rule := range groupRules {
		if !rule.isSet(flags) {
			continue
		}
		for _, key := range rule.generic {
			needed[key] = true
		}
	}

	if len(needed) > 0 {
		generic := QuestionGroup{ID: "general"}
		for _, key := range genericOrder {
			if needed[key] {
				generic.Questions = append(generic.Questions, genericQuestions[key])
			}
		}
		groups = append(groups, generic)
	}

	for _, rule := range groupRules {
		if !rule.isSet(flags) || rule.group == nil {
			continue
		}
		if seen[rule.group.ID] {
			continue
		}
		seen[rule.group.ID] = true
		groups = append(groups, *rule.group)
	}

	return groups
}
