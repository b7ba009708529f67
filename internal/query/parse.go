package query

import (
	"fmt"
	"strings"

	"github.com/jumpedia/jumpedia/internal/model"
	"github.com/jumpedia/jumpedia/internal/schema"
)

// SyntaxError reports a malformed only/by token sequence, naming the
// offending token. Parsing never silently recovers.
type SyntaxError struct {
	Token string
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s (at `%s`)", e.Msg, e.Token)
}

// Projection selects which attributes the result rows carry.
type Projection int

const (
	// ProjectDefault shows name plus the attributes the query referenced.
	ProjectDefault Projection = iota
	// ProjectAll shows every canonical attribute ("+" marker).
	ProjectAll
	// ProjectReferenced shows only explicitly referenced attributes ("-").
	ProjectReferenced
)

// Condition is one attribute/value filter predicate, already canonical.
type Condition struct {
	Attr  string
	Value string
}

// Query is a parsed list command: a scope, filter groups in disjunctive
// normal form (AND within a group, OR across groups), ordered sort keys
// and a projection mode.
type Query struct {
	Scope      string // "all", "mine", or a numeric user ID
	Groups     [][]Condition
	SortKeys   []string
	Projection Projection
	Referenced []string // attributes mentioned in only/by, first-mention order
}

// Parse interprets the token sequence following the list command word:
//
//	<scope> [only <attr> <value> (and|or <attr> <value>)*] [by <attr>+] [+|-]
//
// Tokens arrive pre-split by the shell-style tokenizer; quoting has already
// been resolved.
func Parse(tokens []string) (*Query, error) {
	q := &Query{Scope: "all"}

	if len(tokens) > 0 {
		q.Scope = strings.ToLower(tokens[0])
		if q.Scope != "all" && q.Scope != "mine" && !isDigits(q.Scope) {
			return nil, &SyntaxError{Token: tokens[0], Msg: "for the target please enter `all`, `mine` or a user ID"}
		}
		tokens = tokens[1:]
	}

	if n := len(tokens); n > 0 {
		switch tokens[n-1] {
		case "+":
			q.Projection = ProjectAll
			tokens = tokens[:n-1]
		case "-":
			q.Projection = ProjectReferenced
			tokens = tokens[:n-1]
		}
	}

	seenBy := false
	for len(tokens) > 0 {
		switch strings.ToLower(tokens[0]) {
		case "only":
			if len(q.Groups) > 0 || seenBy {
				return nil, &SyntaxError{Token: tokens[0], Msg: "`only` must come once, before `by`"}
			}
			rest, err := q.parseOnly(tokens[1:])
			if err != nil {
				return nil, err
			}
			tokens = rest
		case "by":
			if seenBy {
				return nil, &SyntaxError{Token: tokens[0], Msg: "`by` may only appear once"}
			}
			seenBy = true
			rest, err := q.parseBy(tokens[1:])
			if err != nil {
				return nil, err
			}
			tokens = rest
		default:
			return nil, &SyntaxError{Token: tokens[0], Msg: "expected `only` or `by`"}
		}
	}

	return q, nil
}

// parseOnly consumes attribute/value pairs chained with and/or. "and"
// extends the current group, "or" starts a new one; groups union.
func (q *Query) parseOnly(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, &SyntaxError{Token: "only", Msg: "expected an attribute after `only`"}
	}

	group := []Condition{}
	for {
		cond, rest, err := q.parseCondition(tokens)
		if err != nil {
			return nil, err
		}
		group = append(group, cond)
		tokens = rest

		if len(tokens) == 0 {
			break
		}
		switch strings.ToLower(tokens[0]) {
		case "and":
			tokens = tokens[1:]
			if len(tokens) == 0 {
				return nil, &SyntaxError{Token: "and", Msg: "expected an attribute after `and`"}
			}
		case "or":
			q.Groups = append(q.Groups, group)
			group = []Condition{}
			tokens = tokens[1:]
			if len(tokens) == 0 {
				return nil, &SyntaxError{Token: "or", Msg: "expected an attribute after `or`"}
			}
		case "by":
			q.Groups = append(q.Groups, group)
			return tokens, nil
		default:
			return nil, &SyntaxError{Token: tokens[0], Msg: "expected `and`, `or` or `by`"}
		}
	}

	q.Groups = append(q.Groups, group)
	return nil, nil
}

func (q *Query) parseCondition(tokens []string) (Condition, []string, error) {
	attr, err := schema.ResolveAttribute(tokens[0])
	if err != nil {
		return Condition{}, nil, fmt.Errorf("%w\nuse one of: %s", err, attributeHint())
	}
	if len(tokens) < 2 {
		return Condition{}, nil, &SyntaxError{Token: tokens[0], Msg: fmt.Sprintf("missing a value for attribute `%s`", attr)}
	}
	value, err := schema.ResolveFilterValue(attr, tokens[1])
	if err != nil {
		return Condition{}, nil, err
	}
	q.reference(attr)
	return Condition{Attr: attr, Value: value}, tokens[2:], nil
}

// parseBy consumes one or more sort attributes; it must be the final
// region of the query.
func (q *Query) parseBy(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, &SyntaxError{Token: "by", Msg: "expected an attribute after `by`"}
	}
	for len(tokens) > 0 {
		attr, err := schema.ResolveAttribute(tokens[0])
		if err != nil {
			return nil, fmt.Errorf("%w\nuse one of: %s", err, attributeHint())
		}
		q.SortKeys = append(q.SortKeys, attr)
		q.reference(attr)
		tokens = tokens[1:]
	}
	return nil, nil
}

func (q *Query) reference(attr string) {
	for _, a := range q.Referenced {
		if a == attr {
			return
		}
	}
	q.Referenced = append(q.Referenced, attr)
}

// attributeHint lists the canonical attributes and their aliases for
// unknown-attribute error messages.
func attributeHint() string {
	var b strings.Builder
	for i, attr := range model.Attributes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("`")
		b.WriteString(attr)
		b.WriteString("`")
		if aliases := model.AttributeAliases[attr]; len(aliases) > 0 {
			b.WriteString(" (")
			b.WriteString(strings.Join(aliases, ", "))
			b.WriteString(")")
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
