package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
	"github.com/opennml/gonml/pkg/validation"
)

// mutationType builds the Mutation root. Mutations go through the same
// builders the REST surface uses, so every registration invariant holds
// regardless of entry point.
func mutationType(ns *topology.Manager, types *typeSet) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createNode": &graphql.Field{
				Type: types.node,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: createNodeMutationResolver(ns),
			},
			"createBiport": &graphql.Field{
				Type: types.biport,
				Args: graphql.FieldConfigArgument{
					"nodeId": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"name": &graphql.ArgumentConfig{
						Type: graphql.String,
					},
				},
				Resolve: createBiportMutationResolver(ns),
			},
			"createBilink": &graphql.Field{
				Type: types.bilink,
				Args: graphql.FieldConfigArgument{
					"biportA": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"biportB": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.ID),
					},
					"name": &graphql.ArgumentConfig{
						Type: graphql.String,
					},
				},
				Resolve: createBilinkMutationResolver(ns),
			},
		},
	})
}

func createNodeMutationResolver(ns *topology.Manager) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		name, ok := p.Args["name"].(string)
		if !ok {
			return nil, fmt.Errorf("name argument is required")
		}
		if err := validation.ValidateNodeRequest(&validation.NodeRequest{Name: name}); err != nil {
			return nil, err
		}
		node, err := ns.CreateNode(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create node: %w", err)
		}
		return node, nil
	}
}

func createBiportMutationResolver(ns *topology.Manager) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		nodeID, ok := p.Args["nodeId"].(string)
		if !ok {
			return nil, fmt.Errorf("nodeId argument is required")
		}
		name, _ := p.Args["name"].(string)
		req := &validation.BiportRequest{NodeID: nodeID, Name: name}
		if err := validation.ValidateBiportRequest(req); err != nil {
			return nil, err
		}
		biport, err := ns.CreateBiport(nml.ObjectID(nodeID), name)
		if err != nil {
			return nil, fmt.Errorf("failed to create bidirectional port: %w", err)
		}
		return biport, nil
	}
}

func createBilinkMutationResolver(ns *topology.Manager) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		biportA, ok := p.Args["biportA"].(string)
		if !ok {
			return nil, fmt.Errorf("biportA argument is required")
		}
		biportB, ok := p.Args["biportB"].(string)
		if !ok {
			return nil, fmt.Errorf("biportB argument is required")
		}
		name, _ := p.Args["name"].(string)
		req := &validation.BilinkRequest{BiportA: biportA, BiportB: biportB, Name: name}
		if err := validation.ValidateBilinkRequest(req); err != nil {
			return nil, err
		}
		bilink, err := ns.CreateBilink(nml.ObjectID(biportA), nml.ObjectID(biportB), name)
		if err != nil {
			return nil, fmt.Errorf("failed to create bidirectional link: %w", err)
		}
		return bilink, nil
	}
}
