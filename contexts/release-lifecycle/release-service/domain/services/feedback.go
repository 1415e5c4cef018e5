package services

import (
	"fmt"
	"strings"

	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
)

type FeedbackTemplate string

const (
	FeedbackPromotional FeedbackTemplate = "promotional"
	FeedbackLength      FeedbackTemplate = "length"
	FeedbackClaims      FeedbackTemplate = "claims"
	FeedbackFormat      FeedbackTemplate = "format"
)

var feedbackTemplateText = map[FeedbackTemplate]string{
	FeedbackPromotional: "Conteúdo promocional excessivo → reescreva com dados técnicos",
	FeedbackLength:      "Conteúdo muito extenso → condense em parágrafos mais diretos",
	FeedbackClaims:      "Afirmações sem embasamento → inclua fontes ou dados",
	FeedbackFormat:      "Formatação inadequada → siga o template padrão",
}

const feedbackSeparator = "\n\n"

func FeedbackTemplateText(template FeedbackTemplate) (string, bool) {
	text, ok := feedbackTemplateText[template]
	return text, ok
}

// ComposeFeedback keeps the moderator's text first and appends each template
// verbatim in selection order, then the highlighted excerpt if any.
func ComposeFeedback(text string, templates []FeedbackTemplate, highlight string) (string, error) {
	parts := make([]string, 0, len(templates)+2)
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		parts = append(parts, trimmed)
	}
	for _, template := range templates {
		value, ok := feedbackTemplateText[template]
		if !ok {
			return "", fmt.Errorf("%w: %q", domainerrors.ErrUnknownFeedbackTemplate, template)
		}
		parts = append(parts, value)
	}
	if excerpt := strings.TrimSpace(highlight); excerpt != "" {
		parts = append(parts, "Trecho destacado: \""+excerpt+"\"\nSugestão: Revise este trecho.")
	}
	return strings.Join(parts, feedbackSeparator), nil
}
