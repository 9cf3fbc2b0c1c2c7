package news

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText strips markup some providers leave in descriptions.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// stringField formats a JSON value the way the prompt expects; a missing or
// null description is rendered as "None".
func stringField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return "None"
	}
	s, ok := v.(string)
	if !ok {
		return "None"
	}
	return plainText(s)
}
