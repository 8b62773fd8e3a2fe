package gql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

// objectResolver creates a resolver for fetching a single object by ID.
func objectResolver(ns *topology.Manager, fetch func(nml.ObjectID) (any, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		idStr, ok := p.Args["id"].(string)
		if !ok {
			return nil, fmt.Errorf("id argument is required")
		}
		obj, err := fetch(nml.ObjectID(idStr))
		if err != nil {
			if nml.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return obj, nil
	}
}

// nodePortsResolver resolves the ports of a node in one direction.
func nodePortsResolver(ns *topology.Manager, direction nml.Direction) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		node, ok := p.Source.(*nml.Node)
		if !ok {
			return nil, nil
		}
		if direction == nml.Inbound {
			return ns.InboundPorts(node.ID)
		}
		return ns.OutboundPorts(node.ID)
	}
}

// portNodeResolver resolves the node a port belongs to.
func portNodeResolver(ns *topology.Manager) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		port, ok := p.Source.(*nml.Port)
		if !ok {
			return nil, nil
		}
		return ns.PortOwner(port.ID)
	}
}

// portLinkResolver resolves the link a port is the sink or source of.
// Unattached ports resolve to null.
func portLinkResolver(ns *topology.Manager, sink bool) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		port, ok := p.Source.(*nml.Port)
		if !ok {
			return nil, nil
		}
		var (
			link *nml.Link
			err  error
		)
		if sink {
			link, err = ns.SinkLink(port.ID)
		} else {
			link, err = ns.SourceLink(port.ID)
		}
		if err != nil {
			if nml.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return link, nil
	}
}

// linkPortResolver resolves a link endpoint port.
func linkPortResolver(ns *topology.Manager, sink bool) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		link, ok := p.Source.(*nml.Link)
		if !ok {
			return nil, nil
		}
		if sink {
			return ns.Port(link.Sink)
		}
		return ns.Port(link.Source)
	}
}

// biportMemberResolver resolves one member port of a bidirectional port.
// Index 0 is the inbound member, 1 the outbound.
func biportMemberResolver(ns *topology.Manager, index int) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		biport, ok := p.Source.(*nml.BidirectionalPort)
		if !ok {
			return nil, nil
		}
		return ns.Port(biport.Ports[index])
	}
}

// biportNodeResolver resolves the node both member ports belong to.
func biportNodeResolver(ns *topology.Manager) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		biport, ok := p.Source.(*nml.BidirectionalPort)
		if !ok {
			return nil, nil
		}
		return ns.PortOwner(biport.Inbound())
	}
}

// bilinkMembersResolver resolves the two member links of a bidirectional
// link.
func bilinkMembersResolver(ns *topology.Manager) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		bilink, ok := p.Source.(*nml.BidirectionalLink)
		if !ok {
			return nil, nil
		}
		pair, err := ns.LinksOf(bilink.ID)
		if err != nil {
			return nil, err
		}
		return []*nml.Link{pair[0], pair[1]}, nil
	}
}
