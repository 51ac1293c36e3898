package ai

import "fmt"

// DefaultLanguage is used when no target language is given.
const DefaultLanguage = "Chinese"

// PromptTemplates contains the instruction templates sent to the model
var PromptTemplates = struct {
	Translate string
}{
	Translate: "Translate this into %s. Only provide the translated text, nothing else: %s",
}

// BuildTranslatePrompt embeds text in the translation instruction.
func BuildTranslatePrompt(language, text string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf(PromptTemplates.Translate, language, text)
}
