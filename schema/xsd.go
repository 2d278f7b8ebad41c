// Package schema holds the XSD object model, the simple-type mapper and the
// synthesizer that projects a module into a schema document.
package schema

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Namespaces and locations imported by every generated schema.
const (
	XSDNamespace          = "http://www.w3.org/2001/XMLSchema"
	XMLNamespace          = "http://www.w3.org/XML/1998/namespace"
	SpringBeansNamespace  = "http://www.springframework.org/schema/beans"
	SpringBeansLocation   = "http://www.springframework.org/schema/beans/spring-beans-3.0.xsd"
	MuleNamespace         = "http://www.mulesoft.org/schema/mule/core"
	MuleSchemaLocation    = "http://www.mulesoft.org/schema/mule/core/current/mule.xsd"
	DevkitNamespace       = "http://www.mulesoft.org/schema/mule/devkit"
	DevkitSchemaLocation  = "http://www.mulesoft.org/schema/mule/devkit/current/mule-devkit.xsd"
	QualifiedForm         = "qualified"
	UnqualifiedForm       = "unqualified"
	UseRequired           = "required"
	UseOptional           = "optional"
	Unbounded             = "unbounded"
	ProcessContentsLax    = "lax"
	expressionPrefixPatt  = `\#\[[^\]]+\]`
	placeholderPrefixPatt = `\$\{[^\}]+\}`
)

// Patterns unioned with strict types so attributes accept runtime expressions.
var (
	ExpressionPattern           = expressionPrefixPatt
	ExpressionOrPlaceholderPatt = "(" + expressionPrefixPatt + "|" + placeholderPrefixPatt + ")"
	wellKnownPrefixes           = map[string]string{
		XSDNamespace:         "xs",
		XMLNamespace:         "xml",
		SpringBeansNamespace: "beans",
		MuleNamespace:        "mule",
		DevkitNamespace:      "devkit",
	}
)

// QName is a namespace-qualified schema name. Names in a well-known namespace
// are rendered with their fixed prefix; all others belong to the target
// namespace, which is the document's default namespace.
type QName struct {
	Namespace string
	Local     string
}

// XS returns a name in the XML Schema namespace.
func XS(local string) *QName {
	return &QName{Namespace: XSDNamespace, Local: local}
}

// Mule returns a name in the Mule core namespace.
func Mule(local string) *QName {
	return &QName{Namespace: MuleNamespace, Local: local}
}

// Local returns a name in the given target namespace.
func Local(namespace, local string) *QName {
	return &QName{Namespace: namespace, Local: local}
}

// String renders the prefixed form.
func (q QName) String() string {
	if prefix, ok := wellKnownPrefixes[q.Namespace]; ok {
		return prefix + ":" + q.Local
	}
	return q.Local
}

// MarshalXMLAttr implements xml.MarshalerAttr.
func (q QName) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: q.String()}, nil
}

// Schema is the root xs:schema element.
type Schema struct {
	XMLName              xml.Name       `xml:"xs:schema"`
	XMLNS                string         `xml:"xmlns,attr"`
	XMLNSXS              string         `xml:"xmlns:xs,attr"`
	XMLNSMule            string         `xml:"xmlns:mule,attr"`
	XMLNSBeans           string         `xml:"xmlns:beans,attr"`
	XMLNSDevkit          string         `xml:"xmlns:devkit,attr"`
	TargetNamespace      string         `xml:"targetNamespace,attr"`
	ElementFormDefault   string         `xml:"elementFormDefault,attr"`
	AttributeFormDefault string         `xml:"attributeFormDefault,attr"`
	Imports              []*Import      `xml:"xs:import"`
	SimpleTypes          []*SimpleType  `xml:"xs:simpleType"`
	ComplexTypes         []*ComplexType `xml:"xs:complexType"`
	Elements             []*Element     `xml:"xs:element"`
}

// Import is an xs:import declaration.
type Import struct {
	Namespace      string `xml:"namespace,attr"`
	SchemaLocation string `xml:"schemaLocation,attr,omitempty"`
}

// Annotation carries human-readable documentation.
type Annotation struct {
	Documentation string `xml:"xs:documentation"`
}

// Element is an xs:element, top-level or local.
type Element struct {
	Name              string       `xml:"name,attr,omitempty"`
	Ref               *QName       `xml:"ref,attr,omitempty"`
	Type              *QName       `xml:"type,attr,omitempty"`
	SubstitutionGroup *QName       `xml:"substitutionGroup,attr,omitempty"`
	MinOccurs         string       `xml:"minOccurs,attr,omitempty"`
	MaxOccurs         string       `xml:"maxOccurs,attr,omitempty"`
	JavaClass         string       `xml:"devkit:javaClass,attr,omitempty"`
	Annotation        *Annotation  `xml:"xs:annotation,omitempty"`
	ComplexType       *ComplexType `xml:"xs:complexType,omitempty"`
}

// ComplexType is an xs:complexType, named when top-level.
type ComplexType struct {
	Name           string          `xml:"name,attr,omitempty"`
	Annotation     *Annotation     `xml:"xs:annotation,omitempty"`
	SimpleContent  *SimpleContent  `xml:"xs:simpleContent,omitempty"`
	ComplexContent *ComplexContent `xml:"xs:complexContent,omitempty"`
	Group          *GroupRef       `xml:"xs:group,omitempty"`
	Choice         *Group          `xml:"xs:choice,omitempty"`
	Sequence       *Group          `xml:"xs:sequence,omitempty"`
	Attributes     []*Attribute    `xml:"xs:attribute"`
}

// ComplexContent wraps an extension of a complex base type.
type ComplexContent struct {
	Extension *Extension `xml:"xs:extension"`
}

// SimpleContent wraps an extension of a simple base type.
type SimpleContent struct {
	Extension *Extension `xml:"xs:extension"`
}

// Extension derives from a base type and adds content and attributes.
type Extension struct {
	Base       *QName       `xml:"base,attr"`
	Group      *GroupRef    `xml:"xs:group,omitempty"`
	Sequence   *Group       `xml:"xs:sequence,omitempty"`
	Attributes []*Attribute `xml:"xs:attribute"`
}

// Group is an explicit model group (xs:sequence or xs:choice).
type Group struct {
	MinOccurs string      `xml:"minOccurs,attr,omitempty"`
	MaxOccurs string      `xml:"maxOccurs,attr,omitempty"`
	Elements  []*Element  `xml:"xs:element"`
	Groups    []*GroupRef `xml:"xs:group"`
	Sequences []*Group    `xml:"xs:sequence"`
	Any       []*Any      `xml:"xs:any"`
}

// GroupRef references a named model group.
type GroupRef struct {
	Ref       *QName `xml:"ref,attr"`
	MinOccurs string `xml:"minOccurs,attr,omitempty"`
	MaxOccurs string `xml:"maxOccurs,attr,omitempty"`
}

// Any is an xs:any wildcard.
type Any struct {
	ProcessContents string `xml:"processContents,attr,omitempty"`
	MinOccurs       string `xml:"minOccurs,attr,omitempty"`
	MaxOccurs       string `xml:"maxOccurs,attr,omitempty"`
}

// Attribute is an xs:attribute.
type Attribute struct {
	Name       string      `xml:"name,attr"`
	Type       *QName      `xml:"type,attr,omitempty"`
	Use        string      `xml:"use,attr,omitempty"`
	Default    string      `xml:"default,attr,omitempty"`
	Annotation *Annotation `xml:"xs:annotation,omitempty"`
}

// SimpleType is an xs:simpleType, named when top-level.
type SimpleType struct {
	Name        string       `xml:"name,attr,omitempty"`
	Annotation  *Annotation  `xml:"xs:annotation,omitempty"`
	Restriction *Restriction `xml:"xs:restriction,omitempty"`
	Union       *Union       `xml:"xs:union,omitempty"`
}

// Union combines member simple types.
type Union struct {
	SimpleTypes []*SimpleType `xml:"xs:simpleType"`
}

// Restriction narrows a base simple type with facets.
type Restriction struct {
	Base         *QName   `xml:"base,attr"`
	Enumerations []*Facet `xml:"xs:enumeration"`
	MinLength    *Facet   `xml:"xs:minLength,omitempty"`
	MaxLength    *Facet   `xml:"xs:maxLength,omitempty"`
	Pattern      *Facet   `xml:"xs:pattern,omitempty"`
}

// Facet is a single-valued restriction facet.
type Facet struct {
	Value string `xml:"value,attr"`
}

// Attribute looks up a direct attribute of the complex type, including the
// attributes of its complex-content or simple-content extension.
func (c *ComplexType) Attribute(name string) *Attribute {
	for _, a := range c.AllAttributes() {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// AllAttributes returns the direct attributes and those declared on the
// type's extension.
func (c *ComplexType) AllAttributes() []*Attribute {
	attrs := append([]*Attribute{}, c.Attributes...)
	if ext := c.extension(); ext != nil {
		attrs = append(attrs, ext.Attributes...)
	}
	return attrs
}

// ChildElements returns the local elements of the type's sequence (direct or
// inside an extension).
func (c *ComplexType) ChildElements() []*Element {
	var seq *Group
	if c.Sequence != nil {
		seq = c.Sequence
	} else if ext := c.extension(); ext != nil {
		seq = ext.Sequence
	}
	if seq == nil {
		return nil
	}
	return seq.Elements
}

// ChildElement looks up a local element by name.
func (c *ComplexType) ChildElement(name string) *Element {
	for _, e := range c.ChildElements() {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (c *ComplexType) extension() *Extension {
	switch {
	case c.ComplexContent != nil:
		return c.ComplexContent.Extension
	case c.SimpleContent != nil:
		return c.SimpleContent.Extension
	default:
		return nil
	}
}

// SimpleType looks up a top-level simple type.
func (s *Schema) SimpleType(name string) *SimpleType {
	for _, st := range s.SimpleTypes {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// ComplexType looks up a top-level complex type.
func (s *Schema) ComplexType(name string) *ComplexType {
	for _, ct := range s.ComplexTypes {
		if ct.Name == name {
			return ct
		}
	}
	return nil
}

// Element looks up a top-level element.
func (s *Schema) Element(name string) *Element {
	for _, e := range s.Elements {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Marshal renders the schema as an indented XSD document.
func Marshal(s *Schema) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to marshal schema %s: %w", s.TargetNamespace, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush schema %s: %w", s.TargetNamespace, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
