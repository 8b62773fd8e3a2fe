package nmlxml

import "encoding/xml"

// Namespace is the OGF NML base schema namespace.
const Namespace = "http://schemas.ogf.org/nml/2013/05/base"

// Relation type attribute values.
const (
	RelationHasInboundPort  = "hasInboundPort"
	RelationHasOutboundPort = "hasOutboundPort"
	RelationHasService      = "hasService"
	RelationHasPort         = "hasPort"
	RelationHasLink         = "hasLink"
	RelationHasNode         = "hasNode"
	RelationHasTopology     = "hasTopology"
	RelationIsSink          = "isSink"
	RelationIsSource        = "isSource"
)

// Document is the root Topology element of an NML XML document.
type Document struct {
	XMLName xml.Name `xml:"Topology"`
	Xmlns   string   `xml:"xmlns,attr"`
	ID      string   `xml:"id,attr,omitempty"`
	Name    string   `xml:"name,attr,omitempty"`
	Version string   `xml:"version,attr,omitempty"`

	Nodes   []NodeElement   `xml:"Node"`
	Ports   []PortElement   `xml:"Port"`
	Links   []LinkElement   `xml:"Link"`
	Biports []BiportElement `xml:"BidirectionalPort"`
	Bilinks []BilinkElement `xml:"BidirectionalLink"`
}

// Ref references another object by identifier. The element name carries
// the referenced object's kind.
type Ref struct {
	ID string `xml:"id,attr"`
}

// Relation groups references under a typed relation.
type Relation struct {
	Type  string `xml:"type,attr"`
	Nodes []Ref  `xml:"Node,omitempty"`
	Ports []Ref  `xml:"Port,omitempty"`
	Links []Ref  `xml:"Link,omitempty"`
}

// NodeElement is a Node object element.
type NodeElement struct {
	ID        string     `xml:"id,attr"`
	Name      string     `xml:"name,attr,omitempty"`
	Version   string     `xml:"version,attr,omitempty"`
	Relations []Relation `xml:"Relation"`
}

// PortElement is a Port object element.
type PortElement struct {
	ID        string     `xml:"id,attr"`
	Name      string     `xml:"name,attr,omitempty"`
	Version   string     `xml:"version,attr,omitempty"`
	Encoding  string     `xml:"encoding,attr,omitempty"`
	Direction string     `xml:"direction,attr"`
	Relations []Relation `xml:"Relation"`
}

// LinkElement is a Link object element.
type LinkElement struct {
	ID              string `xml:"id,attr"`
	Name            string `xml:"name,attr,omitempty"`
	Version         string `xml:"version,attr,omitempty"`
	Encoding        string `xml:"encoding,attr,omitempty"`
	NoReturnTraffic bool   `xml:"noReturnTraffic,attr,omitempty"`
	Source          string `xml:"source,attr"`
	Sink            string `xml:"sink,attr"`
}

// BiportElement is a BidirectionalPort group element.
type BiportElement struct {
	ID        string     `xml:"id,attr"`
	Name      string     `xml:"name,attr,omitempty"`
	Relations []Relation `xml:"Relation"`
}

// BilinkElement is a BidirectionalLink group element.
type BilinkElement struct {
	ID        string     `xml:"id,attr"`
	Name      string     `xml:"name,attr,omitempty"`
	Relations []Relation `xml:"Relation"`
}
