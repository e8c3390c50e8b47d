package matching

// Strength is one of the 34 StrengthsFinder trait codes with its display name.
type Strength struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// Strengths is the fixed 34-entry StrengthsFinder catalog. A profile selects
// at most five of these.
var Strengths = []Strength{
	{Code: "Achiever", Display: "達成欲"},
	{Code: "Activator", Display: "活発性"},
	{Code: "Adaptability", Display: "適応性"},
	{Code: "Analytical", Display: "分析思考"},
	{Code: "Arranger", Display: "アレンジ"},
	{Code: "Belief", Display: "信念"},
	{Code: "Command", Display: "指令性"},
	{Code: "Communication", Display: "コミュニケーション"},
	{Code: "Competition", Display: "競争性"},
	{Code: "Connectedness", Display: "運命思考"},
	{Code: "Consistency", Display: "公平性"},
	{Code: "Context", Display: "背景思考"},
	{Code: "Deliberative", Display: "慎重さ"},
	{Code: "Developer", Display: "成長促進"},
	{Code: "Discipline", Display: "規律性"},
	{Code: "Empathy", Display: "共感性"},
	{Code: "Focus", Display: "目標志向"},
	{Code: "Futuristic", Display: "未来志向"},
	{Code: "Harmony", Display: "調和性"},
	{Code: "Ideation", Display: "着想"},
	{Code: "Includer", Display: "包含"},
	{Code: "Individualization", Display: "個別化"},
	{Code: "Input", Display: "収集心"},
	{Code: "Intellection", Display: "内省"},
	{Code: "Learner", Display: "学習欲"},
	{Code: "Maximizer", Display: "最上志向"},
	{Code: "Positivity", Display: "ポジティブ"},
	{Code: "Relator", Display: "親密性"},
	{Code: "Responsibility", Display: "責任感"},
	{Code: "Restorative", Display: "回復志向"},
	{Code: "Self-Assurance", Display: "自己確信"},
	{Code: "Significance", Display: "自我"},
	{Code: "Strategic", Display: "戦略性"},
	{Code: "Woo", Display: "社交性"},
}

// PersonalityType is one of the 16 personality type codes with its display name.
type PersonalityType struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// PersonalityTypes is the fixed 16-entry personality type catalog.
var PersonalityTypes = []PersonalityType{
	{Code: "INTJ", Display: "建築家型"},
	{Code: "INTP", Display: "論理学者型"},
	{Code: "ENTJ", Display: "指揮官型"},
	{Code: "ENTP", Display: "討論者型"},
	{Code: "INFJ", Display: "提唱者型"},
	{Code: "INFP", Display: "仲介者型"},
	{Code: "ENFJ", Display: "主人公型"},
	{Code: "ENFP", Display: "運動家型"},
	{Code: "ISTJ", Display: "管理者型"},
	{Code: "ISFJ", Display: "擁護者型"},
	{Code: "ESTJ", Display: "幹部型"},
	{Code: "ESFJ", Display: "領事官型"},
	{Code: "ISTP", Display: "巨匠型"},
	{Code: "ISFP", Display: "冒険家型"},
	{Code: "ESTP", Display: "起業家型"},
	{Code: "ESFP", Display: "エンターテイナー型"},
}

var strengthDisplay = func() map[string]string {
	m := make(map[string]string, len(Strengths))
	for _, s := range Strengths {
		m[s.Code] = s.Display
	}
	return m
}()

var personalityTypeCodes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(PersonalityTypes))
	for _, t := range PersonalityTypes {
		m[t.Code] = struct{}{}
	}
	return m
}()

// IsStrengthCode reports whether code is in the StrengthsFinder catalog.
func IsStrengthCode(code string) bool {
	_, ok := strengthDisplay[code]
	return ok
}

// IsPersonalityTypeCode reports whether code is in the personality type catalog.
func IsPersonalityTypeCode(code string) bool {
	_, ok := personalityTypeCodes[code]
	return ok
}

// StrengthDisplay returns the display name for a trait code, falling back to
// the raw code for unmapped entries.
func StrengthDisplay(code string) string {
	if display, ok := strengthDisplay[code]; ok {
		return display
	}
	return code
}
