// Package prompt turns user input into the completion requests of each flow.
package prompt

import (
	"fmt"

	"finance-assistant/internal/store"
	"finance-assistant/internal/types"
)

const (
	webSystem      = "You are a web search assistant providing clear, factual,detailed information and analysis."
	advisorySystem = "You are a personal finance assistant and market analyst."

	// webTemplate takes the news lines and the query. Indentation and trailing spaces are part of the prompt.
	webTemplate = "You are an AI assistant that provides factual, concise, and direct answers similar to a web search engine or browser. \n    Based on the following recent financial news and the user's query, provide a clear and informative response:\n\n    Recent financial news:\n    %s\n\n    User query: %s\n    \n    \n    Respond in a way that directly answers the query, incorporating relevant information from the news if applicable. \n    If the query can't be answered based on the given information, provide a general, factual response related to the topic."

	advisoryTemplate   = "%s\n\nAs a personal finance assistant and market analyst, please provide advice on the following: %s"
	commentaryTemplate = "Provide a brief analysis of %s stock based on recent performance."
)

// Composer builds CompletionRequests with the sampling parameters configured per flow
type Composer struct {
	web, advisory, commentary store.FlowConfig
}

func NewComposer(cfg *store.Config) *Composer {
	return &Composer{
		web:        cfg.Flow(store.FlowWeb),
		advisory:   cfg.Flow(store.FlowAdvisory),
		commentary: cfg.Flow(store.FlowCommentary),
	}
}

// Web grounds a free-form query in the current headlines
func (c *Composer) Web(query string, news types.NewsDigest) types.CompletionRequest {
	return request(store.FlowWeb, c.web, webSystem, fmt.Sprintf(webTemplate, news.Lines(), query))
}

// Advisory prefixes the query with the user context sentence, which may be empty
func (c *Composer) Advisory(userContext, query string) types.CompletionRequest {
	return request(store.FlowAdvisory, c.advisory, advisorySystem, fmt.Sprintf(advisoryTemplate, userContext, query))
}

// Commentary asks for a short take on a ticker. Only the ticker reaches the model.
func (c *Composer) Commentary(ticker string) types.CompletionRequest {
	query := fmt.Sprintf(commentaryTemplate, ticker)
	return request(store.FlowCommentary, c.commentary, advisorySystem, fmt.Sprintf(advisoryTemplate, "", query))
}

func request(flow string, fc store.FlowConfig, system, user string) types.CompletionRequest {
	return types.CompletionRequest{
		Flow:        flow,
		Model:       fc.Model,
		System:      system,
		User:        user,
		MaxTokens:   fc.MaxTokens,
		Temperature: fc.Temperature,
	}
}
