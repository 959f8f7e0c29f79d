package sqlite

import "strings"

// searchColumn is a products column that substring search may match on.
// Only the constants below exist, so a column name can never come from a
// request.
type searchColumn string

const (
	colTitle       searchColumn = "title"
	colDescription searchColumn = "description"
	colCategory    searchColumn = "category"
)

// productSearchColumns are the columns /products/search looks at.
var productSearchColumns = []searchColumn{colTitle, colDescription, colCategory}

// predicate is a WHERE fragment plus the arguments for its placeholders.
type predicate struct {
	SQL  string
	Args []any
}

// containsAny builds "(c1 LIKE ? OR c2 LIKE ? ...)" matching rows where any
// of cols contains term.
//
// The term is bound as an argument, never spliced into the SQL. LIKE
// wildcards inside it (% and _) are left alone and keep their SQLite
// meaning, as does LIKE's ASCII case-insensitivity. An empty term becomes
// "%%", which matches every non-NULL value.
func containsAny(term string, cols ...searchColumn) predicate {
	if len(cols) == 0 {
		return predicate{SQL: "1 = 1"}
	}

	pattern := "%" + term + "%"
	clauses := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		clauses = append(clauses, string(c)+" LIKE ?")
		args = append(args, pattern)
	}

	return predicate{
		SQL:  "(" + strings.Join(clauses, " OR ") + ")",
		Args: args,
	}
}
