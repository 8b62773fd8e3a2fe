package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

// GenerateSchema builds a GraphQL schema over a namespace. Every object
// kind gets a singular query by ID and a plural listing query, and the
// relation fields resolve lazily through the namespace.
func GenerateSchema(ns *topology.Manager) (graphql.Schema, error) {
	types := newTypeSet()
	types.wireRelations(ns)

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: queryFields(ns, types),
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType(ns, types),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}

	return schema, nil
}

// typeSet holds the object types so relation fields can reference each
// other after construction.
type typeSet struct {
	node   *graphql.Object
	port   *graphql.Object
	link   *graphql.Object
	biport *graphql.Object
	bilink *graphql.Object
	stats  *graphql.Object
}

func newTypeSet() *typeSet {
	return &typeSet{
		node:   createNodeType(),
		port:   createPortType(),
		link:   createLinkType(),
		biport: createBiportType(),
		bilink: createBilinkType(),
		stats:  createStatsType(),
	}
}

// wireRelations adds the cross-referencing fields once all object types
// exist. Done separately because the types are mutually recursive.
func (t *typeSet) wireRelations(ns *topology.Manager) {
	t.node.AddFieldConfig("inboundPorts", &graphql.Field{
		Type:    graphql.NewList(t.port),
		Resolve: nodePortsResolver(ns, nml.Inbound),
	})
	t.node.AddFieldConfig("outboundPorts", &graphql.Field{
		Type:    graphql.NewList(t.port),
		Resolve: nodePortsResolver(ns, nml.Outbound),
	})

	t.port.AddFieldConfig("node", &graphql.Field{
		Type:    t.node,
		Resolve: portNodeResolver(ns),
	})
	t.port.AddFieldConfig("sinkOf", &graphql.Field{
		Type:    t.link,
		Resolve: portLinkResolver(ns, true),
	})
	t.port.AddFieldConfig("sourceOf", &graphql.Field{
		Type:    t.link,
		Resolve: portLinkResolver(ns, false),
	})

	t.link.AddFieldConfig("source", &graphql.Field{
		Type:    t.port,
		Resolve: linkPortResolver(ns, false),
	})
	t.link.AddFieldConfig("sink", &graphql.Field{
		Type:    t.port,
		Resolve: linkPortResolver(ns, true),
	})

	t.biport.AddFieldConfig("inbound", &graphql.Field{
		Type:    t.port,
		Resolve: biportMemberResolver(ns, 0),
	})
	t.biport.AddFieldConfig("outbound", &graphql.Field{
		Type:    t.port,
		Resolve: biportMemberResolver(ns, 1),
	})
	t.biport.AddFieldConfig("node", &graphql.Field{
		Type:    t.node,
		Resolve: biportNodeResolver(ns),
	})

	t.bilink.AddFieldConfig("links", &graphql.Field{
		Type:    graphql.NewList(t.link),
		Resolve: bilinkMembersResolver(ns),
	})
}

func queryFields(ns *topology.Manager, types *typeSet) graphql.Fields {
	return graphql.Fields{
		"health": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return "ok", nil
			},
		},
		"node": &graphql.Field{
			Type:    types.node,
			Args:    idArgument(),
			Resolve: objectResolver(ns, func(id nml.ObjectID) (any, error) { return ns.Node(id) }),
		},
		"nodes": &graphql.Field{
			Type: graphql.NewList(types.node),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return ns.Nodes(), nil
			},
		},
		"port": &graphql.Field{
			Type:    types.port,
			Args:    idArgument(),
			Resolve: objectResolver(ns, func(id nml.ObjectID) (any, error) { return ns.Port(id) }),
		},
		"ports": &graphql.Field{
			Type: graphql.NewList(types.port),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return ns.Ports(), nil
			},
		},
		"link": &graphql.Field{
			Type:    types.link,
			Args:    idArgument(),
			Resolve: objectResolver(ns, func(id nml.ObjectID) (any, error) { return ns.Link(id) }),
		},
		"links": &graphql.Field{
			Type: graphql.NewList(types.link),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return ns.Links(), nil
			},
		},
		"biport": &graphql.Field{
			Type:    types.biport,
			Args:    idArgument(),
			Resolve: objectResolver(ns, func(id nml.ObjectID) (any, error) { return ns.Biport(id) }),
		},
		"biports": &graphql.Field{
			Type: graphql.NewList(types.biport),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return ns.Biports(), nil
			},
		},
		"bilink": &graphql.Field{
			Type:    types.bilink,
			Args:    idArgument(),
			Resolve: objectResolver(ns, func(id nml.ObjectID) (any, error) { return ns.Bilink(id) }),
		},
		"bilinks": &graphql.Field{
			Type: graphql.NewList(types.bilink),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return ns.Bilinks(), nil
			},
		},
		"stats": &graphql.Field{
			Type: types.stats,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return ns.Stats(), nil
			},
		},
	}
}

func idArgument() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{
			Type: graphql.NewNonNull(graphql.ID),
		},
	}
}

func createNodeType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Node",
		Fields: graphql.Fields{
			"id":      metaIDField(),
			"name":    metaNameField(),
			"version": metaVersionField(),
			"serviceIds": &graphql.Field{
				Type: graphql.NewList(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if node, ok := p.Source.(*nml.Node); ok {
						return idStrings(node.Services), nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createPortType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Port",
		Fields: graphql.Fields{
			"id":      metaIDField(),
			"name":    metaNameField(),
			"version": metaVersionField(),
			"direction": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if port, ok := p.Source.(*nml.Port); ok {
						return port.Direction.String(), nil
					}
					return nil, nil
				},
			},
			"encoding": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if port, ok := p.Source.(*nml.Port); ok {
						return port.Encoding, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createLinkType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Link",
		Fields: graphql.Fields{
			"id":      metaIDField(),
			"name":    metaNameField(),
			"version": metaVersionField(),
			"encoding": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if link, ok := p.Source.(*nml.Link); ok {
						return link.Encoding, nil
					}
					return nil, nil
				},
			},
			"noReturnTraffic": &graphql.Field{
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if link, ok := p.Source.(*nml.Link); ok {
						return link.NoReturnTraffic, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func createBiportType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "BidirectionalPort",
		Fields: graphql.Fields{
			"id":      metaIDField(),
			"name":    metaNameField(),
			"version": metaVersionField(),
		},
	})
}

func createBilinkType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "BidirectionalLink",
		Fields: graphql.Fields{
			"id":      metaIDField(),
			"name":    metaNameField(),
			"version": metaVersionField(),
		},
	})
}

func createStatsType() *graphql.Object {
	intField := func(get func(topology.Stats) int) *graphql.Field {
		return &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if stats, ok := p.Source.(topology.Stats); ok {
					return get(stats), nil
				}
				return nil, nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"nodes":      intField(func(s topology.Stats) int { return int(s.Nodes) }),
			"ports":      intField(func(s topology.Stats) int { return int(s.Ports) }),
			"links":      intField(func(s topology.Stats) int { return int(s.Links) }),
			"biports":    intField(func(s topology.Stats) int { return int(s.BidirectionalPorts) }),
			"bilinks":    intField(func(s topology.Stats) int { return int(s.BidirectionalLinks) }),
			"topologies": intField(func(s topology.Stats) int { return int(s.Topologies) }),
			"services":   intField(func(s topology.Stats) int { return int(s.Services) }),
			"registered": intField(func(s topology.Stats) int { return int(s.Registered) }),
			"rejected":   intField(func(s topology.Stats) int { return int(s.Rejected) }),
		},
	})
}

// metaIDField resolves the shared identifier field for any namespace
// object. Clones returned by the namespace are concrete pointer types,
// so the assertion switches over all of them.
func metaIDField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			if meta, ok := sourceMeta(p.Source); ok {
				return meta.ID.String(), nil
			}
			return nil, nil
		},
	}
}

func metaNameField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			if meta, ok := sourceMeta(p.Source); ok {
				return meta.Name, nil
			}
			return nil, nil
		},
	}
}

func metaVersionField() *graphql.Field {
	return &graphql.Field{
		Type: graphql.String,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			if meta, ok := sourceMeta(p.Source); ok {
				return meta.Version, nil
			}
			return nil, nil
		},
	}
}

func sourceMeta(source any) (nml.ObjectMeta, bool) {
	switch obj := source.(type) {
	case *nml.Node:
		return obj.ObjectMeta, true
	case *nml.Port:
		return obj.ObjectMeta, true
	case *nml.Link:
		return obj.ObjectMeta, true
	case *nml.BidirectionalPort:
		return obj.ObjectMeta, true
	case *nml.BidirectionalLink:
		return obj.ObjectMeta, true
	}
	return nml.ObjectMeta{}, false
}

func idStrings(ids []nml.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
