// Package nmlxml encodes a topology namespace as an NML XML document
// and decodes such documents back into a manager.
//
// The document follows the OGF NML base schema conventions: objects are
// elements named after their kind, relations between objects are
// expressed as Relation sub-elements whose type attribute names the
// relation (hasInboundPort, isSource, hasPort and so on) and whose
// children reference objects by identifier.
package nmlxml
