// Package matching ranks projects against a user profile with a fixed
// weighted-sum heuristic and produces human-readable justifications.
package matching

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Factor weights sum to 1.0. The weights and the [50, 95] clamp are
// product-tuned values and must not be retuned without a product decision.
const (
	skillWeight      = 0.4
	strengthWeight   = 0.3
	typeWeight       = 0.2
	experienceWeight = 0.1

	neutralScore = 50
	minScore     = 50
	maxScore     = 95
)

// Profile is the subset of a user profile the scorer reads. Nil slices and an
// empty personality type are valid and simply mean "not set".
type Profile struct {
	Skills          []string
	Strengths       []string
	PersonalityType string
	ExperienceYears int
}

// Preferences is the subset of a project the scorer reads. Empty lists mean
// the project states no preference for that factor.
type Preferences struct {
	RequiredSkills     []string
	PreferredStrengths []string
	PreferredTypes     []string
}

// Score computes the compatibility between a profile and a project's
// preferences as an integer in [50, 95]. A nil profile scores the neutral 50
// without evaluating any factor.
func Score(p *Profile, prefs Preferences) int {
	if p == nil {
		return neutralScore
	}

	skillScore := float64(neutralScore)
	if len(prefs.RequiredSkills) > 0 {
		matched := 0
		for _, required := range prefs.RequiredSkills {
			if matchesAny(required, p.Skills) {
				matched++
			}
		}
		skillScore = float64(matched) / float64(len(prefs.RequiredSkills)) * 100
	}

	strengthScore := float64(neutralScore)
	if len(prefs.PreferredStrengths) > 0 && len(p.Strengths) > 0 {
		matched := len(intersect(p.Strengths, prefs.PreferredStrengths))
		denom := min(len(prefs.PreferredStrengths), len(p.Strengths))
		strengthScore = float64(matched) / float64(denom) * 100
	}

	typeScore := float64(neutralScore)
	if p.PersonalityType != "" && len(prefs.PreferredTypes) > 0 {
		if slices.Contains(prefs.PreferredTypes, p.PersonalityType) {
			typeScore = 100
		} else {
			typeScore = 30
		}
	}

	var experienceScore float64
	switch {
	case p.ExperienceYears >= 3:
		experienceScore = 80
	case p.ExperienceYears >= 1:
		experienceScore = 60
	default:
		experienceScore = 40
	}

	total := int(math.Round(skillScore*skillWeight +
		strengthScore*strengthWeight +
		typeScore*typeWeight +
		experienceScore*experienceWeight))

	if total < minScore {
		return minScore
	}
	if total > maxScore {
		return maxScore
	}
	return total
}

// Reasons explains a match in the board UI's wording. Sentences appear in a
// fixed order: skills, strengths, personality type, experience. A nil profile
// yields a prompt to fill the profile in; a profile with no matching factor
// yields a single generic fallback.
func Reasons(p *Profile, prefs Preferences) []string {
	if p == nil {
		return []string{"プロフィールを設定するとマッチング理由が表示されます"}
	}

	var reasons []string

	if len(prefs.RequiredSkills) > 0 {
		var matching []string
		for _, skill := range p.Skills {
			if matchesAny(skill, prefs.RequiredSkills) {
				matching = append(matching, skill)
			}
		}
		if len(matching) > 0 {
			reasons = append(reasons, fmt.Sprintf("あなたのスキル「%s」がプロジェクトの必要スキルと一致", strings.Join(matching, "、")))
		}
	}

	if len(prefs.PreferredStrengths) > 0 && len(p.Strengths) > 0 {
		matching := intersect(p.Strengths, prefs.PreferredStrengths)
		if len(matching) > 0 {
			names := make([]string, len(matching))
			for i, code := range matching {
				names[i] = StrengthDisplay(code)
			}
			reasons = append(reasons, fmt.Sprintf("あなたの資質「%s」がプロジェクトに適合", strings.Join(names, "、")))
		}
	}

	if p.PersonalityType != "" && slices.Contains(prefs.PreferredTypes, p.PersonalityType) {
		reasons = append(reasons, fmt.Sprintf("あなたの性格タイプ「%s」がプロジェクトの希望タイプと一致", p.PersonalityType))
	}

	if p.ExperienceYears >= 3 {
		reasons = append(reasons, fmt.Sprintf("%d年の豊富な経験がプロジェクトに活かせます", p.ExperienceYears))
	}

	if len(reasons) == 0 {
		return []string{"基本的なスキルセットが適合しています"}
	}
	return reasons
}

// matchesAny reports whether s and any element of list substring-match each
// other in either direction, case-insensitively.
func matchesAny(s string, list []string) bool {
	ls := strings.ToLower(s)
	for _, candidate := range list {
		lc := strings.ToLower(candidate)
		if strings.Contains(ls, lc) || strings.Contains(lc, ls) {
			return true
		}
	}
	return false
}

// intersect keeps the elements of a that also appear in b, preserving a's order.
func intersect(a, b []string) []string {
	var out []string
	for _, v := range a {
		if slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}
