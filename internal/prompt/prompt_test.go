package prompt

import (
	"fmt"
	"strings"
	"testing"

	"finance-assistant/internal/store"
	"finance-assistant/internal/types"

	"github.com/shopspring/decimal"
)

func TestAdvisoryIncludesUserContext(t *testing.T) {
	c := NewComposer(store.DefaultConfig())
	uc := types.UserContext{
		Age:           34,
		Income:        decimal.NewFromInt(720000),
		Savings:       decimal.NewFromInt(125000),
		RiskTolerance: types.RiskMedium,
	}

	req := c.Advisory(uc.Sentence(), "Should I pay off my bond early?")

	for _, want := range []string{"34 years old", "R720000", "R125000", "medium risk tolerance", "Should I pay off my bond early?"} {
		if !strings.Contains(req.User, want) {
			t.Errorf("advisory prompt missing %q:\n%s", want, req.User)
		}
	}
	if !strings.HasPrefix(req.User, uc.Sentence()+"\n\n") {
		t.Errorf("context should lead the prompt: %q", req.User)
	}
	if req.Model != "gpt-3.5-turbo" || req.MaxTokens != 300 || req.Temperature != 0.5 || req.Flow != store.FlowAdvisory {
		t.Errorf("advisory parameters = %+v", req)
	}
	if req.System != "You are a personal finance assistant and market analyst." {
		t.Errorf("system = %q", req.System)
	}
}

func TestWebIncludesHeadlinesInOrder(t *testing.T) {
	c := NewComposer(store.DefaultConfig())
	var news types.NewsDigest
	for i := 1; i <= 5; i++ {
		news = append(news, types.NewsItem{Title: fmt.Sprintf("Title %d", i), Description: fmt.Sprintf("desc %d", i)})
	}

	req := c.Web("What moved the JSE today?", news)

	last := -1
	for _, item := range news {
		line := item.Title + ": " + item.Description
		idx := strings.Index(req.User, line)
		if idx < 0 {
			t.Fatalf("web prompt missing %q", line)
		}
		if idx <= last {
			t.Errorf("%q out of order", item.Title)
		}
		last = idx
	}
	if !strings.Contains(req.User, "User query: What moved the JSE today?") {
		t.Errorf("web prompt missing query:\n%s", req.User)
	}
	if req.Model != "gpt-4" || req.MaxTokens != 1500 || req.Temperature != 0.2 {
		t.Errorf("web parameters = %+v", req)
	}
}

func TestCommentaryDependsOnlyOnTicker(t *testing.T) {
	c := NewComposer(store.DefaultConfig())

	req := c.Commentary("AAPL")

	want := "\n\nAs a personal finance assistant and market analyst, please provide advice on the following: " +
		"Provide a brief analysis of AAPL stock based on recent performance."
	if req.User != want {
		t.Errorf("commentary prompt = %q, want %q", req.User, want)
	}
	if req != c.Commentary("AAPL") {
		t.Error("commentary requests for the same ticker should be identical")
	}
	if req.Flow != store.FlowCommentary {
		t.Errorf("flow = %s", req.Flow)
	}
}

func TestComposerUsesConfiguredFlows(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.LLM.Flows[store.FlowWeb] = store.FlowConfig{Model: "gpt-4o", MaxTokens: 800, Temperature: 0}

	req := NewComposer(cfg).Web("q", nil)
	if req.Model != "gpt-4o" || req.MaxTokens != 800 || req.Temperature != 0 {
		t.Errorf("web parameters = %+v", req)
	}
}
