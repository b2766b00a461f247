package reconstruct

import "fmt"

// promptTemplate is filled with the fragment by BuildPrompt.
const promptTemplate = `You are a digital archaeologist specializing in internet culture and historical context.

Reconstruct this fragmented internet/text message into proper English while providing
historical and cultural context where relevant:

"%s"

For internet slang and cultural references, provide the most accurate historical context.
Examples:
- "top 8" should reference MySpace's Top Friends feature
- "smh" should be expanded with cultural context
- Include explanations for platform-specific references

Provide only the reconstructed text with contextual explanations embedded naturally.
Do not add separate notes or explanations outside the main text.`

// BuildPrompt returns the prompt sent to the model for fragment.
func BuildPrompt(fragment string) string {
	return fmt.Sprintf(promptTemplate, fragment)
}
