package chat

import (
	"fmt"
	"strings"

	"github.com/intelligrit/attraction-scout/internal/model"
)

// SystemPrompt is used when the config does not set one.
const SystemPrompt = `你是一个旅行助手，根据用户提供的城市和景点信息，用简洁的中文回答用户的问题，推荐值得游览的景点并说明理由。`

const augmentTemplate = "以下是关于\"%s\"的网络搜索结果：\n\n%s\n请根据以上搜索结果，对用户的问题\"%s\"进行全面的回答。"

// AugmentPrompt wraps question with a block of ranked attractions. With
// no attractions the question is returned unchanged.
func AugmentPrompt(question string, attractions []model.Attraction) string {
	if len(attractions) == 0 {
		return question
	}

	entries := make([]string, 0, len(attractions))
	for _, a := range attractions {
		entries = append(entries, fmt.Sprintf("标题: %s\n评分: %.1f\n点评: %s\n\n", a.Name, a.Rating, a.Reviews))
	}

	return fmt.Sprintf(augmentTemplate, question, strings.Join(entries, "---\n"), question)
}

// Conversation builds the message list for one question.
func Conversation(system, question string) []Message {
	if system == "" {
		system = SystemPrompt
	}
	return []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: question},
	}
}
