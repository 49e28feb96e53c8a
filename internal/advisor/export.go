package advisor

import "strings"

const FileName = "my_health_plan.txt"

// Section headings of the downloadable plan.
const (
	HeadingTitle  = "🧠 Personalized Health Plan"
	HeadingTips   = "✅ First Steps:"
	HeadingMeal   = "🥗 Meal Suggestion:"
	HeadingWeekly = "📅 Weekly Healthy Living Plan:"
)

// Text renders the plan as the plain-text download.
func (p Plan) Text() string {
	var b strings.Builder
	b.WriteString(HeadingTitle + "\n\n")
	b.WriteString(HeadingTips + "\n" + p.Tips + "\n\n")
	b.WriteString(HeadingMeal + "\n" + p.Meal + "\n\n")
	b.WriteString(HeadingWeekly + "\n" + p.Weekly + "\n")
	return b.String()
}
