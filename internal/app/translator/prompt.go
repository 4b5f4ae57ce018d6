package translator

import "strings"

// textPlaceholder marks where the paragraph text goes in a user-message
// template.
const textPlaceholder = "{{TEXT}}"

// RenderUserMessage interpolates the paragraph text into the template.
// An empty template sends the text as-is.
func RenderUserMessage(template, text string) string {
	if template == "" {
		return text
	}
	return strings.ReplaceAll(template, textPlaceholder, text)
}
