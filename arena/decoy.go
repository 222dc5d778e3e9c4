package arena

import (
	"fmt"
	"math/rand"
)

var decoyTemplates = []string{
	`Thank you for your inquiry regarding "%s". I would be happy to assist you with this matter. Please provide any additional information you feel is relevant.`,
	`I appreciate your question. As an AI assistant, I am designed to help with a wide range of topics. In response to your query: %s...`,
	`I understand you are asking about this topic. Let me provide you with a comprehensive and accurate response to the best of my abilities.`,
	`Your question is an interesting one. I will attempt to address it thoroughly while maintaining objectivity and accuracy.`,
	`I am here to help. Based on my training data, I can provide the following information regarding your inquiry.`,
}

// DecoyResponse produces a deliberately formulaic, low-effort answer for
// honeypot matches. An attentive evaluator should never prefer it.
func DecoyResponse(prompt string) string {
	tpl := decoyTemplates[rand.Intn(len(decoyTemplates))]
	if !needsPrompt(tpl) {
		return tpl
	}
	snippet := prompt
	if len(snippet) > 50 {
		snippet = snippet[:50]
	}
	return fmt.Sprintf(tpl, snippet)
}

func needsPrompt(tpl string) bool {
	for i := 0; i+1 < len(tpl); i++ {
		if tpl[i] == '%' && tpl[i+1] == 's' {
			return true
		}
	}
	return false
}
