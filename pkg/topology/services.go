package topology

import (
	"github.com/opennml/gonml/pkg/nml"
)

// RegisterSwitchingService adds a switching service. Referenced ports must
// exist with the direction of the list naming them; provided links must
// exist.
func (m *Manager) RegisterSwitchingService(svc *nml.SwitchingService) (*nml.SwitchingService, error) {
	const op = "RegisterSwitchingService"

	m.mu.Lock()
	stored, err := func() (*nml.SwitchingService, error) {
		for _, portID := range svc.InboundPorts {
			if err := m.requirePortDirection(op, portID, nml.Inbound); err != nil {
				return nil, err
			}
		}
		for _, portID := range svc.OutboundPorts {
			if err := m.requirePortDirection(op, portID, nml.Outbound); err != nil {
				return nil, err
			}
		}
		for _, linkID := range svc.ProvidesLinks {
			if _, ok := m.links[linkID]; !ok {
				return nil, m.reject(nml.NotFoundError(op, nml.KindLink, linkID))
			}
		}

		stored := svc.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		m.switching[stored.ID] = stored
		m.enter(stored.ID, nml.KindSwitchingService)
		m.stats.Services++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	svc.ID = stored.ID
	m.publish(TopicService, nml.KindSwitchingService, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// RegisterAdaptationService adds an adaptation service. All referenced
// ports must exist.
func (m *Manager) RegisterAdaptationService(svc *nml.AdaptationService) (*nml.AdaptationService, error) {
	const op = "RegisterAdaptationService"

	m.mu.Lock()
	stored, err := func() (*nml.AdaptationService, error) {
		if err := m.requirePorts(op, svc.CanProvidePorts, svc.ProvidesPorts); err != nil {
			return nil, err
		}

		stored := svc.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		m.adaptations[stored.ID] = stored
		m.enter(stored.ID, nml.KindAdaptationService)
		m.stats.Services++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	svc.ID = stored.ID
	m.publish(TopicService, nml.KindAdaptationService, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// RegisterDeadaptationService adds a deadaptation service. All referenced
// ports must exist.
func (m *Manager) RegisterDeadaptationService(svc *nml.DeadaptationService) (*nml.DeadaptationService, error) {
	const op = "RegisterDeadaptationService"

	m.mu.Lock()
	stored, err := func() (*nml.DeadaptationService, error) {
		if err := m.requirePorts(op, svc.CanProvidePorts, svc.ProvidesPorts); err != nil {
			return nil, err
		}

		stored := svc.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		m.deadaptations[stored.ID] = stored
		m.enter(stored.ID, nml.KindDeadaptationService)
		m.stats.Services++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	svc.ID = stored.ID
	m.publish(TopicService, nml.KindDeadaptationService, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// AttachService relates a registered service to a registered node
// (the hasService relation).
func (m *Manager) AttachService(nodeID, serviceID nml.ObjectID) error {
	const op = "AttachService"

	m.mu.Lock()
	defer m.mu.Unlock()

	node, ok := m.nodes[nodeID]
	if !ok {
		return nml.NotFoundError(op, nml.KindNode, nodeID)
	}
	if !m.isService(serviceID) {
		return nml.NotFoundError(op, nml.KindSwitchingService, serviceID)
	}
	for _, existing := range node.Services {
		if existing == serviceID {
			return nml.DuplicateError(op, serviceID)
		}
	}

	node.Services = append(node.Services, serviceID)
	return nil
}

func (m *Manager) requirePorts(op string, lists ...[]nml.ObjectID) error {
	for _, list := range lists {
		for _, portID := range list {
			if _, ok := m.ports[portID]; !ok {
				return m.reject(nml.NotFoundError(op, nml.KindPort, portID))
			}
		}
	}
	return nil
}
