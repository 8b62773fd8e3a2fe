package api

import (
	"net/http"
	"time"

	"github.com/opennml/gonml/pkg/logging"
	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/validation"
)

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listNodes(w, r) }).
		Post(func() { s.createNode(w, r) }).
		NotAllowed()
}

func (s *Server) listNodes(w http.ResponseWriter, r *http.Request) {
	nodes := s.ns.Nodes()
	s.respondJSON(w, http.StatusOK, ListResponse{Count: len(nodes), Items: nodes})
}

func (s *Server) createNode(w http.ResponseWriter, r *http.Request) {
	var req validation.NodeRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).Validate(func() error { return validation.ValidateNodeRequest(&req) })
	if decoder.RespondError() {
		return
	}

	start := time.Now()
	node, err := s.ns.RegisterNode(&nml.Node{
		ObjectMeta: nml.ObjectMeta{ID: nml.ObjectID(req.ID), Name: req.Name},
	})
	if err != nil {
		s.registry.RecordRegistration(nml.KindNode.String(), "rejected", time.Since(start))
		s.respondError(w, errorStatus(err), s.sanitizeError(err, "create node"))
		return
	}
	s.registry.RecordRegistration(nml.KindNode.String(), "ok", time.Since(start))
	s.logger.Info("node registered", logging.ObjectID(node.ID), logging.String("name", node.Name))
	s.respondJSON(w, http.StatusCreated, node)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id, ok := s.NewPathExtractor(w, r).ExtractID("/nodes/")
	if !ok {
		return
	}
	s.NewMethodRouter(w, r).
		Get(func() { s.getObject(w, func() (any, error) { return s.ns.Node(id) }, "get node") }).
		NotAllowed()
}

func (s *Server) handlePorts(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listPorts(w, r) }).
		Post(func() { s.createPort(w, r) }).
		NotAllowed()
}

func (s *Server) listPorts(w http.ResponseWriter, r *http.Request) {
	ports := s.ns.Ports()
	s.respondJSON(w, http.StatusOK, ListResponse{Count: len(ports), Items: ports})
}

func (s *Server) createPort(w http.ResponseWriter, r *http.Request) {
	var req validation.PortRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).Validate(func() error { return validation.ValidatePortRequest(&req) })
	if decoder.RespondError() {
		return
	}

	direction, err := nml.ParseDirection(req.Direction)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	port, err := s.ns.RegisterPort(&nml.Port{
		ObjectMeta: nml.ObjectMeta{ID: nml.ObjectID(req.ID), Name: req.Name},
		Direction:  direction,
		Encoding:   req.Encoding,
		Node:       nml.ObjectID(req.NodeID),
	})
	if err != nil {
		s.registry.RecordRegistration(nml.KindPort.String(), "rejected", time.Since(start))
		s.respondError(w, errorStatus(err), s.sanitizeError(err, "create port"))
		return
	}
	s.registry.RecordRegistration(nml.KindPort.String(), "ok", time.Since(start))
	s.respondJSON(w, http.StatusCreated, port)
}

func (s *Server) handlePort(w http.ResponseWriter, r *http.Request) {
	id, ok := s.NewPathExtractor(w, r).ExtractID("/ports/")
	if !ok {
		return
	}
	s.NewMethodRouter(w, r).
		Get(func() { s.getObject(w, func() (any, error) { return s.ns.Port(id) }, "get port") }).
		NotAllowed()
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listLinks(w, r) }).
		Post(func() { s.createLink(w, r) }).
		NotAllowed()
}

func (s *Server) listLinks(w http.ResponseWriter, r *http.Request) {
	links := s.ns.Links()
	s.respondJSON(w, http.StatusOK, ListResponse{Count: len(links), Items: links})
}

func (s *Server) createLink(w http.ResponseWriter, r *http.Request) {
	var req validation.LinkRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).Validate(func() error { return validation.ValidateLinkRequest(&req) })
	if decoder.RespondError() {
		return
	}

	start := time.Now()
	link, err := s.registerLink(&req)
	if err != nil {
		s.registry.RecordRegistration(nml.KindLink.String(), "rejected", time.Since(start))
		s.respondError(w, errorStatus(err), s.sanitizeError(err, "create link"))
		return
	}
	s.registry.RecordRegistration(nml.KindLink.String(), "ok", time.Since(start))
	s.respondJSON(w, http.StatusCreated, link)
}

func (s *Server) registerLink(req *validation.LinkRequest) (*nml.Link, error) {
	return s.ns.RegisterLink(&nml.Link{
		ObjectMeta: nml.ObjectMeta{ID: nml.ObjectID(req.ID), Name: req.Name},
		Encoding:   req.Encoding,
		Source:     nml.ObjectID(req.Source),
		Sink:       nml.ObjectID(req.Sink),
	})
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	id, ok := s.NewPathExtractor(w, r).ExtractID("/links/")
	if !ok {
		return
	}
	s.NewMethodRouter(w, r).
		Get(func() { s.getObject(w, func() (any, error) { return s.ns.Link(id) }, "get link") }).
		NotAllowed()
}

func (s *Server) handleBiports(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listBiports(w, r) }).
		Post(func() { s.createBiport(w, r) }).
		NotAllowed()
}

func (s *Server) listBiports(w http.ResponseWriter, r *http.Request) {
	biports := s.ns.Biports()
	s.respondJSON(w, http.StatusOK, ListResponse{Count: len(biports), Items: biports})
}

func (s *Server) createBiport(w http.ResponseWriter, r *http.Request) {
	var req validation.BiportRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).Validate(func() error { return validation.ValidateBiportRequest(&req) })
	if decoder.RespondError() {
		return
	}

	start := time.Now()
	biport, err := s.ns.CreateBiport(nml.ObjectID(req.NodeID), req.Name)
	if err != nil {
		s.registry.RecordRegistration(nml.KindBidirectionalPort.String(), "rejected", time.Since(start))
		s.respondError(w, errorStatus(err), s.sanitizeError(err, "create biport"))
		return
	}
	s.registry.RecordRegistration(nml.KindBidirectionalPort.String(), "ok", time.Since(start))
	s.respondJSON(w, http.StatusCreated, biport)
}

func (s *Server) handleBiport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.NewPathExtractor(w, r).ExtractID("/biports/")
	if !ok {
		return
	}
	s.NewMethodRouter(w, r).
		Get(func() { s.getObject(w, func() (any, error) { return s.ns.Biport(id) }, "get biport") }).
		NotAllowed()
}

func (s *Server) handleBilinks(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.listBilinks(w, r) }).
		Post(func() { s.createBilink(w, r) }).
		NotAllowed()
}

func (s *Server) listBilinks(w http.ResponseWriter, r *http.Request) {
	bilinks := s.ns.Bilinks()
	s.respondJSON(w, http.StatusOK, ListResponse{Count: len(bilinks), Items: bilinks})
}

func (s *Server) createBilink(w http.ResponseWriter, r *http.Request) {
	var req validation.BilinkRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req).Validate(func() error { return validation.ValidateBilinkRequest(&req) })
	if decoder.RespondError() {
		return
	}

	start := time.Now()
	bilink, err := s.ns.CreateBilink(nml.ObjectID(req.BiportA), nml.ObjectID(req.BiportB), req.Name)
	if err != nil {
		s.registry.RecordRegistration(nml.KindBidirectionalLink.String(), "rejected", time.Since(start))
		s.respondError(w, errorStatus(err), s.sanitizeError(err, "create bilink"))
		return
	}
	s.registry.RecordRegistration(nml.KindBidirectionalLink.String(), "ok", time.Since(start))
	s.respondJSON(w, http.StatusCreated, bilink)
}

func (s *Server) handleBilink(w http.ResponseWriter, r *http.Request) {
	id, ok := s.NewPathExtractor(w, r).ExtractID("/bilinks/")
	if !ok {
		return
	}
	s.NewMethodRouter(w, r).
		Get(func() { s.getObject(w, func() (any, error) { return s.ns.Bilink(id) }, "get bilink") }).
		NotAllowed()
}

// getObject fetches a single object and writes it, mapping lookup
// failures to 404.
func (s *Server) getObject(w http.ResponseWriter, fetch func() (any, error), operation string) {
	obj, err := fetch()
	if err != nil {
		s.respondError(w, errorStatus(err), s.sanitizeError(err, operation))
		return
	}
	s.respondJSON(w, http.StatusOK, obj)
}

func (s *Server) handleBatchNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req BatchNodeRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req)
	if decoder.RespondError() {
		return
	}
	if err := validation.ValidateBatchSize(len(req.Nodes)); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	nodes := make([]*nml.Node, 0, len(req.Nodes))
	rejected := 0
	for i := range req.Nodes {
		nodeReq := req.Nodes[i]
		if err := validation.ValidateNodeRequest(&nodeReq); err != nil {
			rejected++
			continue
		}
		node, err := s.ns.RegisterNode(&nml.Node{
			ObjectMeta: nml.ObjectMeta{ID: nml.ObjectID(nodeReq.ID), Name: nodeReq.Name},
		})
		if err != nil {
			rejected++
			continue
		}
		nodes = append(nodes, node)
	}

	s.respondJSON(w, http.StatusCreated, BatchResponse{
		Created:  len(nodes),
		Rejected: rejected,
		Time:     time.Since(start).String(),
		Items:    nodes,
	})
}

func (s *Server) handleBatchLinks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req BatchLinkRequest
	decoder := s.NewRequestDecoder(w, r)
	decoder.DecodeJSON(&req)
	if decoder.RespondError() {
		return
	}
	if err := validation.ValidateBatchSize(len(req.Links)); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	links := make([]*nml.Link, 0, len(req.Links))
	rejected := 0
	for i := range req.Links {
		linkReq := req.Links[i]
		if err := validation.ValidateLinkRequest(&linkReq); err != nil {
			rejected++
			continue
		}
		link, err := s.registerLink(&linkReq)
		if err != nil {
			rejected++
			continue
		}
		links = append(links, link)
	}

	s.respondJSON(w, http.StatusCreated, BatchResponse{
		Created:  len(links),
		Rejected: rejected,
		Time:     time.Since(start).String(),
		Items:    links,
	})
}
