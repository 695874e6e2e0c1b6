package records

import "strings"

// Predicate is a WHERE clause with its bind arguments.
type Predicate struct {
	clause string
	args   []any
}

// All matches every row.
func All() Predicate { return Predicate{} }

// Where builds a predicate from a raw clause using ? placeholders.
func Where(clause string, args ...any) Predicate {
	return Predicate{clause: clause, args: args}
}

func ByID(id int64) Predicate { return Where("id = ?", id) }

func ByExternalID(externalID string) Predicate {
	return Where("external_id = ?", externalID)
}

func ByOwner(owner string) Predicate { return Where("owner = ?", owner) }

// Synced matches records that carry an external id.
func Synced() Predicate { return Where("external_id IS NOT NULL") }

// Unsynced matches records that were never uploaded or downloaded.
func Unsynced() Predicate { return Where("external_id IS NULL") }

// And combines p and q. An empty side is ignored.
func (p Predicate) And(q Predicate) Predicate {
	switch {
	case p.clause == "":
		return q
	case q.clause == "":
		return p
	}
	args := make([]any, 0, len(p.args)+len(q.args))
	args = append(args, p.args...)
	args = append(args, q.args...)
	return Predicate{clause: "(" + p.clause + ") AND (" + q.clause + ")", args: args}
}

func (p Predicate) sql() (string, []any) {
	if strings.TrimSpace(p.clause) == "" {
		return "", nil
	}
	return " WHERE " + p.clause, p.args
}
