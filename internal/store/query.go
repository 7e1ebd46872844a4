package store

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lychee-technology/vitrin"
)

// Attribute keys come off the wire and end up inside the JSONB accessor,
// so anything outside the identifier charset is dropped instead of
// spliced into the clause.
var attrKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// buildWhere translates a serialized query payload into a WHERE clause
// with positional parameters. Fixed keys map to inline columns;
// category-specific keys map onto the JSONB attributes bag, with
// min/max-prefixed keys becoming numeric range predicates. Field keys
// are visited in sorted order so the generated SQL is deterministic.
func buildWhere(payload *vitrin.QueryPayload) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	next := func() string {
		return fmt.Sprintf("$%d", len(args))
	}

	if payload.Type != "" {
		args = append(args, strings.ToLower(payload.Type))
		clauses = append(clauses, "category_id = "+next())
	}
	if payload.Status != "" {
		args = append(args, payload.Status)
		clauses = append(clauses, "status = "+next())
	}
	if payload.City != nil {
		args = append(args, *payload.City)
		clauses = append(clauses, "city = "+next())
	}
	if payload.District != nil {
		args = append(args, *payload.District)
		clauses = append(clauses, "district = "+next())
	}
	if payload.MinPrice != nil {
		args = append(args, *payload.MinPrice)
		clauses = append(clauses, "price >= "+next())
	}
	if payload.MaxPrice != nil {
		args = append(args, *payload.MaxPrice)
		clauses = append(clauses, "price <= "+next())
	}
	if payload.Currency != nil {
		args = append(args, *payload.Currency)
		clauses = append(clauses, "currency = "+next())
	}

	keys := make([]string, 0, len(payload.Fields))
	for k := range payload.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := payload.Fields[key]
		if value == nil {
			continue
		}
		clause, clauseArgs := attributeClause(key, value, len(args))
		if clause == "" {
			continue
		}
		args = append(args, clauseArgs...)
		clauses = append(clauses, clause)
	}

	if len(clauses) == 0 {
		return "TRUE", args
	}
	return strings.Join(clauses, " AND "), args
}

// attributeClause builds one predicate over the attributes bag. argBase
// is the number of parameters already allocated.
func attributeClause(key string, value any, argBase int) (string, []any) {
	if !attrKeyPattern.MatchString(key) {
		return "", nil
	}
	if attr, bound, ok := rangeKey(key); ok {
		if f, isFloat := value.(float64); isFloat {
			op := ">="
			if bound == "max" {
				op = "<="
			}
			return fmt.Sprintf("(attributes->>'%s')::float8 %s $%d", attr, op, argBase+1), []any{f}
		}
		if s, isString := value.(string); isString {
			op := ">="
			if bound == "max" {
				op = "<="
			}
			return fmt.Sprintf("attributes->>'%s' %s $%d", attr, op, argBase+1), []any{s}
		}
		return "", nil
	}

	switch v := value.(type) {
	case string:
		return fmt.Sprintf("attributes->>'%s' = $%d", key, argBase+1), []any{v}
	case float64:
		return fmt.Sprintf("(attributes->>'%s')::float8 = $%d", key, argBase+1), []any{v}
	case bool:
		return fmt.Sprintf("(attributes->>'%s')::bool = $%d", key, argBase+1), []any{v}
	case []string:
		if len(v) == 0 {
			return "", nil
		}
		return fmt.Sprintf("attributes->>'%s' = ANY($%d)", key, argBase+1), []any{v}
	default:
		return "", nil
	}
}

// rangeKey recognizes the serializer's derived min<Key>/max<Key> keys
// and recovers the underlying attribute name.
func rangeKey(key string) (attr, bound string, ok bool) {
	for _, prefix := range []string{"min", "max"} {
		if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			rest := key[len(prefix):]
			if rest[0] >= 'A' && rest[0] <= 'Z' {
				return strings.ToLower(rest[:1]) + rest[1:], prefix, true
			}
		}
	}
	return "", "", false
}

// sortColumn whitelists sortable columns; anything unknown falls back to
// created_at.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "price":
		return "price"
	case "title":
		return "title"
	case "updatedAt":
		return "updated_at"
	default:
		return "created_at"
	}
}

func sortDirection(dir vitrin.SortDirection) string {
	if dir == vitrin.SortAsc {
		return "ASC"
	}
	return "DESC"
}
