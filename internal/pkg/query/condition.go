package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations produce a SQL fragment using Spanner named parameters.
type Condition interface {
	// SQL returns the fragment and its parameters. paramIndex seeds unique names (@p0, @p1, ...).
	SQL(paramIndex int) (string, map[string]interface{})
}

type compareCondition struct {
	field string
	op    string
	value interface{}
}

func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, name), map[string]interface{}{name: c.value}
}

// Eq generates "field = @pN".
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt generates "field < @pN".
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// In generates "field IN UNNEST(@pN)". values is bound as a single array parameter.
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values []string
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, name), map[string]interface{}{name: c.values}
}
