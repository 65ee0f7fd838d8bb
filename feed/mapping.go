// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import (
	"time"

	"github.com/danielhkuo/fiesta-awwards/docstore"
	"github.com/danielhkuo/fiesta-awwards/models"
)

// FromSnapshot maps documents to nominations in snapshot order.
// Documents without a nominee object are dropped.
func FromSnapshot(docs []docstore.Document) []models.Nomination {
	list := make([]models.Nomination, 0, len(docs))
	for _, doc := range docs {
		if n, ok := FromDocument(doc); ok {
			list = append(list, n)
		}
	}
	return list
}

// FromDocument maps one document. ok is false when the nominee is missing or empty.
func FromDocument(doc docstore.Document) (models.Nomination, bool) {
	data := doc.Data
	nominee, ok := data["nominee"].(map[string]any)
	// An empty {} counts as missing, unlike a plain truthiness check
	if !ok || len(nominee) == 0 {
		return models.Nomination{}, false
	}

	n := models.Nomination{
		ID:         doc.ID,
		Type:       stringField(data, "type"),
		CreatedAt:  doc.CreatedAt,
		TotalVotes: intField(data, "totalVotes"),
		JuryScore:  intField(data, "juryScore"),
		Nominee: models.Nominee{
			Name:     stringField(nominee, "name"),
			Category: stringField(nominee, "category"),
		},
		SubmittedBy: stringField(data, "submittedBy"),
	}

	if raw, ok := data["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			n.CreatedAt = t
		}
	}

	if n.IsOther() {
		if nominator, ok := data["nominator"].(map[string]any); ok {
			n.Nominator = &models.Nominator{
				Name:  stringField(nominator, "name"),
				Email: stringField(nominator, "email"),
			}
		}
		n.Recommendation = stringField(data, "recommendation")
	}

	if questions, ok := data["categoryQuestions"].(map[string]any); ok {
		n.CategoryQuestions = questions
	}

	return n, true
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intField treats anything that is not a JSON number as zero
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}
