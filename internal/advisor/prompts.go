package advisor

import (
	"fmt"

	"github.com/Vovarama1992/ai-dietician/internal/ai"
)

const (
	TipsPersona   = "You are a supportive and practical health coach."
	MealPersona   = "You are a registered dietician who gives friendly and realistic meal suggestions."
	WeeklyPersona = "You are a friendly and supportive health coach."
)

const tipsPrompt = `This person is trying to lose weight and improve their health:

%s

Suggest three specific, beginner-friendly first steps they can start taking today to build better habits. Format them clearly as Tip 1, Tip 2, and Tip 3.`

const mealPrompt = `This person is trying to lose weight and eat healthier:

%s

Suggest one healthy, balanced meal they could eat today. Make sure it includes protein, vegetables, and fiber. Format as a full meal idea like you're recommending it to a friend.`

const weeklyPrompt = `This person is trying to lose weight and improve their health:

%s

Create a motivational 7-day health plan. Each day should include one small, realistic action to help them build healthy habits and lose weight. Format like: Day 1: ..., Day 2: ..., etc.`

func TipsMessages(info string) []ai.Message {
	return pair(TipsPersona, tipsPrompt, info)
}

func MealMessages(info string) []ai.Message {
	return pair(MealPersona, mealPrompt, info)
}

func WeeklyPlanMessages(info string) []ai.Message {
	return pair(WeeklyPersona, weeklyPrompt, info)
}

func pair(persona, tmpl, info string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Text: persona},
		{Role: ai.RoleUser, Text: fmt.Sprintf(tmpl, info)},
	}
}
