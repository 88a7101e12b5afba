package postgres

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/sparkkart/storefront/internal/domain"
)

// foldClauses renders the typed filter expression into a single WHERE
// predicate. Every clause owns its own parenthesised fragment, so OR groups
// and AND groups can nest without colliding.
func foldClauses(q *gorm.DB, clauses []domain.Clause) *gorm.DB {
	for _, c := range clauses {
		sql, args := clauseSQL(c)
		if sql == "" {
			continue
		}
		q = q.Where(sql, args...)
	}
	return q
}

func clauseSQL(c domain.Clause) (string, []any) {
	switch c.Kind {
	case domain.ClauseEq:
		return c.Column + " = ?", []any{c.Value}
	case domain.ClauseRange:
		parts := []string{}
		args := []any{}
		if c.Min != nil {
			parts = append(parts, c.Column+" >= ?")
			args = append(args, *c.Min)
		}
		if c.Max != nil {
			parts = append(parts, c.Column+" <= ?")
			args = append(args, *c.Max)
		}
		if len(parts) == 0 {
			return "", nil
		}
		return strings.Join(parts, " AND "), args
	case domain.ClauseContains:
		// jsonb array containment
		raw, _ := json.Marshal([]any{c.Value})
		return c.Column + " @> ?", []any{string(raw)}
	case domain.ClauseAnyOf:
		return groupSQL(c.Group, " OR ")
	case domain.ClauseAllOf:
		return groupSQL(c.Group, " AND ")
	}
	return "", nil
}

func groupSQL(group []domain.Clause, op string) (string, []any) {
	parts := []string{}
	args := []any{}
	for _, member := range group {
		sql, a := clauseSQL(member)
		if sql == "" {
			continue
		}
		parts = append(parts, "("+sql+")")
		args = append(args, a...)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, op) + ")", args
}
