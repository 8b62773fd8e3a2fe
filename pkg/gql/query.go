package gql

import (
	"github.com/graphql-go/graphql"
)

// ExecuteQuery executes a GraphQL query against a schema.
func ExecuteQuery(query string, schema graphql.Schema) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
	})
}

// ExecuteQueryWithVariables executes a GraphQL query with variables.
func ExecuteQueryWithVariables(query string, schema graphql.Schema, variables map[string]any) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
	})
}
