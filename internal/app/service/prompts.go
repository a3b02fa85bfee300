package service

import (
	"fmt"
	"strings"
	"tle_zone_assist/internal/domain/model"
	"tle_zone_assist/internal/platform/llm"
)

const completionSystemPrompt = `You are an inline code completion engine inside a coding-practice editor.
Continue the user's code from exactly where it ends.
Reply with the text to insert only: no explanations, no markdown fences, do not repeat the existing code.
Keep the suggestion short, at most a few lines.`

const reviewSystemPrompt = `You are a senior engineer reviewing an accepted solution to a programming problem.
Comment on time and space complexity, readability, naming, edge cases and idiomatic use of the language.
Suggest concrete improvements. Answer in Markdown.`

func completionMessages(lang model.Language, code string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: completionSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Language: %s\n\n%s", lang.Name(), code)},
	}
}

func reviewMessages(lang model.Language, code string, problem *model.Problem) []llm.Message {
	var b strings.Builder
	if problem != nil {
		fmt.Fprintf(&b, "Problem: %s", problem.Title)
		if problem.Difficulty != "" {
			fmt.Fprintf(&b, " (%s)", problem.Difficulty)
		}
		b.WriteString("\n\n")
		if problem.Description != "" {
			b.WriteString(problem.Description)
			b.WriteString("\n\n")
		}
	}
	fmt.Fprintf(&b, "Language: %s\n\n```%s\n%s\n```", lang.Name(), lang.Slug(), code)
	return []llm.Message{
		{Role: "system", Content: reviewSystemPrompt},
		{Role: "user", Content: b.String()},
	}
}

// cleanCompletion strips a markdown fence some models wrap completions in.
// Leading whitespace is significant and kept.
func cleanCompletion(content string) string {
	start := strings.Index(content, "```")
	if start < 0 {
		return strings.TrimRight(content, "\n")
	}
	body := content[start+3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:] // drop the info string
	}
	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimRight(body, "\n")
}
