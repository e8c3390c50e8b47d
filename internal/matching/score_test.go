package matching

import (
	"strings"
	"testing"
)

func TestScore_WorkedExample(t *testing.T) {
	t.Parallel()

	p := &Profile{
		Skills:          []string{"React", "Node"},
		Strengths:       []string{"Strategic", "Learner"},
		ExperienceYears: 5,
	}
	prefs := Preferences{
		RequiredSkills:     []string{"react", "python"},
		PreferredStrengths: []string{"Strategic"},
	}

	// skills 50*0.4 + strengths 100*0.3 + type 50*0.2 + experience 80*0.1
	if got := Score(p, prefs); got != 68 {
		t.Fatalf("Score = %d, want 68", got)
	}
}

func TestScore_NilProfile(t *testing.T) {
	t.Parallel()

	prefs := Preferences{RequiredSkills: []string{"Go"}}
	if got := Score(nil, prefs); got != 50 {
		t.Fatalf("Score(nil) = %d, want 50", got)
	}
}

func TestScore_TypeMatch(t *testing.T) {
	t.Parallel()

	p := &Profile{PersonalityType: "INTJ"}
	match := Preferences{PreferredTypes: []string{"INTJ", "ENTP"}}
	miss := Preferences{PreferredTypes: []string{"ESFJ"}}

	if s1, s2 := Score(p, match), Score(p, miss); s1 <= s2 {
		t.Fatalf("type match should score higher: match=%d miss=%d", s1, s2)
	}
}

func TestScore_ExperienceTiers(t *testing.T) {
	t.Parallel()

	score := func(years int) int {
		return Score(&Profile{ExperienceYears: years}, Preferences{})
	}

	if s0, s1, s3 := score(0), score(1), score(3); !(s0 <= s1 && s1 <= s3) {
		t.Fatalf("experience tiers not monotonic: %d %d %d", s0, s1, s3)
	}
}

func TestScore_Bounded(t *testing.T) {
	t.Parallel()

	profiles := []*Profile{
		nil,
		{},
		{Skills: []string{"Go", "React", "Python"}, Strengths: []string{"Strategic"}, PersonalityType: "INTJ", ExperienceYears: 10},
	}
	prefsList := []Preferences{
		{},
		{RequiredSkills: []string{"COBOL"}, PreferredStrengths: []string{"Harmony"}, PreferredTypes: []string{"ESFJ"}},
		{RequiredSkills: []string{"Go"}, PreferredStrengths: []string{"Strategic"}, PreferredTypes: []string{"INTJ"}},
	}

	for _, p := range profiles {
		for _, prefs := range prefsList {
			got := Score(p, prefs)
			if got < 50 || got > 95 {
				t.Errorf("Score out of [50, 95]: %d for %+v / %+v", got, p, prefs)
			}
		}
	}
}

func TestReasons_Ordering(t *testing.T) {
	t.Parallel()

	p := &Profile{
		Skills:          []string{"React"},
		Strengths:       []string{"Strategic"},
		ExperienceYears: 5,
	}
	prefs := Preferences{
		RequiredSkills:     []string{"react"},
		PreferredStrengths: []string{"Strategic"},
	}

	reasons := Reasons(p, prefs)
	if len(reasons) != 3 {
		t.Fatalf("expected 3 reasons, got %d: %v", len(reasons), reasons)
	}

	if !strings.Contains(reasons[0], "React") || !strings.Contains(reasons[0], "必要スキルと一致") {
		t.Errorf("skill reason wrong: %q", reasons[0])
	}
	if !strings.Contains(reasons[1], "戦略性") {
		t.Errorf("strength reason should use the display name: %q", reasons[1])
	}
	if !strings.Contains(reasons[2], "5年") {
		t.Errorf("experience reason wrong: %q", reasons[2])
	}
}

func TestReasons_NilProfile(t *testing.T) {
	t.Parallel()

	reasons := Reasons(nil, Preferences{})
	if len(reasons) != 1 || reasons[0] != "プロフィールを設定するとマッチング理由が表示されます" {
		t.Fatalf("unexpected reasons for nil profile: %v", reasons)
	}
}

func TestReasons_Fallback(t *testing.T) {
	t.Parallel()

	p := &Profile{Skills: []string{"Haskell"}}
	prefs := Preferences{RequiredSkills: []string{"Go"}}

	reasons := Reasons(p, prefs)
	if len(reasons) != 1 || reasons[0] != "基本的なスキルセットが適合しています" {
		t.Fatalf("expected the generic fallback, got %v", reasons)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	if len(Strengths) != 34 {
		t.Errorf("expected 34 strengths, got %d", len(Strengths))
	}
	if len(PersonalityTypes) != 16 {
		t.Errorf("expected 16 personality types, got %d", len(PersonalityTypes))
	}

	if !IsStrengthCode("Strategic") {
		t.Errorf("Strategic should be a valid strength code")
	}
	if IsStrengthCode("NotAStrength") {
		t.Errorf("NotAStrength should not be a valid strength code")
	}
	if !IsPersonalityTypeCode("INTJ") {
		t.Errorf("INTJ should be a valid personality type code")
	}

	if got := StrengthDisplay("Strategic"); got != "戦略性" {
		t.Errorf("StrengthDisplay(Strategic) = %q", got)
	}
	if got := StrengthDisplay("Unknown"); got != "Unknown" {
		t.Errorf("StrengthDisplay should fall back to the raw code, got %q", got)
	}
}
