package parsergen

import (
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/projection"
	"github.com/gaborage/go-devkit/schema"
)

const (
	fieldPatternInfo  = "patternInfo"
	childBeanName     = "generateChildBeanName"
	propertyMessageMP = "messageProcessors"
)

// parser holds the parse method under construction.
type parser struct {
	module    *model.ModuleModel
	class     *cm.Class
	body      *cm.Block
	element   cm.Expr
	context   cm.Expr
	builder   cm.Expr
	operation bool
	// childBeans is set once a nested chain needs generateChildBeanName.
	childBeans bool
}

func newParser(m *model.ModuleModel, c *cm.Class, operation bool) *parser {
	c.Implement(beanParser)
	c.Field(patternInfo, fieldPatternInfo, cm.Private)
	ctor := c.Constructor(cm.Public)
	ctor.Body.Assign(cm.Self(fieldPatternInfo), cm.Call(cm.Call(cm.Type(templateParser), "createMuleStyleParser"), "getStyle"))

	parse := c.Method(beanDefinition, "parse", cm.Public)
	p := &parser{module: m, class: c, body: parse.Body, operation: operation}
	p.element = parse.Param(domElement, "element")
	p.context = parse.Param(parserContext, "parserContext")
	return p
}

func attribute(element cm.Expr, name string) cm.Expr {
	return cm.Call(element, "getAttribute", cm.Lit(name))
}

func isBlank(e cm.Expr) cm.Expr {
	return cm.Call(cm.Type(stringUtils), "isBlank", e)
}

// notBlank is true when a DOM attribute value is present and not blank.
func notBlank(e cm.Expr) cm.Expr {
	return cm.And(cm.Ne(e, cm.Null), cm.Not(isBlank(e)))
}

func childElement(element cm.Expr, name string) cm.Expr {
	return cm.Call(cm.Type(domUtils), "getChildElementByTagName", element, cm.Lit(name))
}

func addProperty(b *cm.Block, builder cm.Expr, property string, value cm.Expr) {
	b.Invoke(cm.Call(builder, "addPropertyValue", cm.Lit(property), value))
}

// readAttribute copies attr of element to property when it is present and
// not blank.
func readAttribute(b *cm.Block, element, builder cm.Expr, attr, property string) {
	addProperty(b.If(notBlank(attribute(element, attr))).Then, builder, property, attribute(element, attr))
}

// shape emits the parse rule of one projected parameter.
func (p *parser) shape(b *cm.Block, s *projection.Shape) {
	switch s.Kind {
	case projection.ShapeAttribute, projection.ShapeEnumAttribute:
		readAttribute(b, p.element, p.builder, s.Attribute, s.Property)
	case projection.ShapeFlowRef:
		flow := b.Decl(javaString, s.Property+"Name", attribute(p.element, s.Attribute))
		addProperty(b.If(notBlank(flow)).Then, p.builder, s.Property, cm.New(runtimeBeanRef, flow))
	case projection.ShapeRef:
		p.reference(b, s)
	case projection.ShapeXMLElement:
		p.xml(b, s)
	case projection.ShapeNestedProcessor:
		p.nested(b, nestedRule{
			property:  s.Property,
			element:   s.Element,
			collapsed: s.Collapsed,
			list:      s.Type.ListOf,
			text:      true,
		})
	case projection.ShapeCollection, projection.ShapeMap:
		child := b.Decl(domElement, s.Property+"Element", childElement(p.element, s.Element))
		helper := p.container(s.Property, s.Container, 0)
		addProperty(b.If(cm.Ne(child, cm.Null)).Then, p.builder, s.Property, cm.Invoke(helper, child))
	}
}

// reference reads a -ref attribute into a bean reference. On operations an
// expression is kept as text and evaluated by the processor.
func (p *parser) reference(b *cm.Block, s *projection.Shape) {
	ref := b.Decl(javaString, s.Property+"Ref", attribute(p.element, s.Attribute))
	present := b.If(notBlank(ref)).Then
	if !p.operation {
		addProperty(present, p.builder, s.Property, cm.New(runtimeBeanRef, ref))
		return
	}
	expr := present.If(isExpression(ref))
	addProperty(expr.Then, p.builder, s.Property, ref)
	addProperty(expr.Otherwise(), p.builder, s.Property, cm.New(runtimeBeanRef, ref))
}

// isExpression matches values wrapped in the expression delimiters.
func isExpression(value cm.Expr) cm.Expr {
	return cm.And(
		cm.Call(value, "startsWith", cm.Call(cm.Self(fieldPatternInfo), "getPrefix")),
		cm.Call(value, "endsWith", cm.Call(cm.Self(fieldPatternInfo), "getSuffix")),
	)
}

// xml serializes the first child of an XML-bindable element to a string.
func (p *parser) xml(b *cm.Block, s *projection.Shape) {
	element := b.Decl(domElement, s.Property+"XmlElement", childElement(p.element, s.Element))
	try := b.If(cm.Ne(element, cm.Null)).Then.Try()

	children := try.Body.Decl(elementList, s.Property+"Children", cm.Call(cm.Type(domUtils), "getChildElements", element))
	some := try.Body.If(cm.Op(cm.Call(children, "size"), ">", cm.Int(0))).Then
	source := some.Decl(domSource, "domSource", cm.New(domSource, cm.Call(children, "get", cm.Int(0))))
	writer := some.Decl(stringWriter, "stringWriter", cm.New(stringWriter))
	result := some.Decl(streamResult, "result", cm.New(streamResult, writer))
	factory := some.Decl(xmlTransformerF, "tf", cm.Call(cm.Type(xmlTransformerF), "newInstance"))
	transformer := some.Decl(xmlTransformer, "transformer", cm.Call(factory, "newTransformer"))
	some.Invoke(cm.Call(transformer, "transform", source, result))
	some.Invoke(cm.Call(writer, "flush"))
	addProperty(some, p.builder, s.Property, cm.Call(writer, "toString"))

	for _, exc := range []string{xmlConfigExc, xmlTransformExc, xmlFactoryError} {
		try.Catch(exc, "e").Throw(cm.New(unhandledExc, cm.Name("e")))
	}
}

type nestedRule struct {
	property string
	element  string
	// collapsed reads the chain from the operation element itself.
	collapsed bool
	list      bool
	// text allows the chain to be replaced by a text attribute.
	text bool
}

// nested registers a transient chain factory bean for the nested
// processors, lets the delegate parse the children into it and removes it
// again so no top-level bean is left behind.
func (p *parser) nested(b *cm.Block, r nestedRule) {
	p.childBeans = true
	element := p.element
	if !r.collapsed {
		element = b.Decl(domElement, r.property+"Element", childElement(p.element, r.element))
	}
	target := b.If(cm.Ne(element, cm.Null)).Then
	if r.text {
		text := target.Decl(javaString, r.property+"Text", attribute(element, projection.AttrText))
		hasText := target.If(notBlank(text))
		addProperty(hasText.Then, p.builder, r.property, text)
		target = hasText.Otherwise()
	}

	builder := target.Decl(beanBuilder, r.property+"BeanDefinitionBuilder",
		cm.Call(cm.Type(beanBuilder), "rootBeanDefinition", cm.ClassLit(chainFactoryBean)))
	definition := target.Decl(beanDefinition, r.property+"BeanDefinition", cm.Call(builder, "getBeanDefinition"))
	registry := cm.Call(p.context, "getRegistry")
	name := cm.Invoke(childBeanName, element)

	target.Invoke(cm.Call(registry, "registerBeanDefinition", name, definition))
	target.Invoke(cm.Call(element, "setAttribute", cm.Lit(schema.AttrName), name))
	target.Invoke(cm.Call(builder, "setSource", cm.Call(p.context, "extractSource", element)))
	target.Invoke(cm.Call(builder, "setScope", cm.Dot(cm.Type(beanDefinition), "SCOPE_SINGLETON")))
	list := target.Decl(javaList, r.property+"List",
		cm.Call(cm.Call(p.context, "getDelegate"), "parseListElement", element, cm.Call(builder, "getBeanDefinition")))
	target.Invoke(cm.Call(registry, "removeBeanDefinition", name))

	if r.list {
		addProperty(target, p.builder, r.property, list)
	} else {
		addProperty(target, p.builder, r.property, definition)
	}
}

func (p *parser) configRef() {
	ref := p.body.Decl(javaString, "configRef", attribute(p.element, schema.AttrConfigRef))
	addProperty(p.body.If(notBlank(ref)).Then, p.builder, propertyModuleObject, ref)
}

// callbackConfig reads an http or OAuth callback config child element.
func (p *parser) callbackConfig(element, local string) {
	config := p.body.Decl(domElement, local, childElement(p.element, element))
	present := p.body.If(cm.Ne(config, cm.Null)).Then
	for _, a := range []string{schema.AttrDomain, schema.AttrLocalPort, schema.AttrRemotePort, schema.AttrAsync} {
		readAttribute(present, config, p.builder, a, a)
	}
	connector := attribute(config, schema.AttrConnectorRef)
	addProperty(present.If(notBlank(connector)).Then, p.builder, propertyConnector, cm.New(runtimeBeanRef, connector))
}

// pooling reads a pooling profile child element into a nested PoolingProfile
// bean bound to property.
func (p *parser) pooling(element, property string) {
	builder := p.body.Decl(beanBuilder, property+"Builder",
		cm.Call(cm.Type(beanBuilder), "rootBeanDefinition", cm.Call(cm.ClassLit(poolingProfile), "getName")))
	profile := p.body.Decl(domElement, property+"Element", childElement(p.element, element))
	present := p.body.If(cm.Ne(profile, cm.Null)).Then

	for _, a := range []string{"maxActive", "maxIdle", "maxWait"} {
		readAttribute(present, profile, builder, a, a)
	}
	for _, e := range []struct{ attr, table string }{
		{"exhaustedAction", "POOL_EXHAUSTED_ACTIONS"},
		{"initialisationPolicy", "POOL_INITIALISATION_POLICIES"},
	} {
		value := attribute(profile, e.attr)
		addProperty(present.If(notBlank(value)).Then, builder, e.attr,
			cm.Call(cm.Dot(cm.Type(poolingProfile), e.table), "get", value))
	}
	addProperty(present, p.builder, property, cm.Call(builder, "getBeanDefinition"))
}

// definition builds the bean definition and marks it so the hierarchical
// delegate does not parse the consumed children again.
func (p *parser) definition() cm.Expr {
	definition := p.body.Decl(beanDefinition, "definition", cm.Call(p.builder, "getBeanDefinition"))
	p.body.Invoke(cm.Call(definition, "setAttribute",
		cm.Dot(cm.Type(muleDelegate), "MULE_NO_RECURSE"), cm.Dot(cm.Type(javaBoolean), "TRUE")))
	return definition
}

func (p *parser) containing() cm.Expr {
	return cm.Call(p.context, "getContainingBeanDefinition")
}

// attachProcessor adds the definition to the enclosing construct: the
// processor of a poll, the enrichment processor of an enricher, or the
// messageProcessors list of anything else.
func (p *parser) attachProcessor(definition cm.Expr) {
	values := p.body.Decl(mutableValues, "propertyValues", cm.Call(p.containing(), "getPropertyValues"))
	className := cm.Call(p.containing(), "getBeanClassName")

	poll := p.body.If(cm.Call(className, "equals", cm.Lit(pollingFactory)))
	poll.Then.Invoke(cm.Call(values, "addPropertyValue", cm.Lit("messageProcessor"), definition))
	enricher := poll.Otherwise().If(cm.Call(className, "equals", cm.Lit(messageEnricher)))
	enricher.Then.Invoke(cm.Call(values, "addPropertyValue", cm.Lit("enrichmentMessageProcessor"), definition))

	other := enricher.Otherwise()
	processors := other.Decl(propertyValue, propertyMessageMP, cm.Call(values, "getPropertyValue", cm.Lit(propertyMessageMP)))
	other.If(cm.Op(cm.Eq(processors, cm.Null), "||", cm.Eq(cm.Call(processors, "getValue"), cm.Null))).Then.
		Invoke(cm.Call(values, "addPropertyValue", cm.Lit(propertyMessageMP), cm.New(managedList)))
	list := other.Decl(javaList, "listMessageProcessors",
		cm.Cast(javaList, cm.Call(cm.Call(values, "getPropertyValue", cm.Lit(propertyMessageMP)), "getValue")))
	other.Invoke(cm.Call(list, "add", definition))
}

func (p *parser) attachSource(definition cm.Expr) {
	values := p.body.Decl(mutableValues, "propertyValues", cm.Call(p.containing(), "getPropertyValues"))
	p.body.Invoke(cm.Call(values, "addPropertyValue", cm.Lit("messageSource"), definition))
}

// finish adds the members the parse method turned out to need.
func (p *parser) finish() {
	if !p.childBeans {
		return
	}
	m := p.class.Method(javaString, childBeanName, cm.Private)
	element := m.Param(domElement, "element")
	id := m.Body.Decl(javaString, "id", cm.Call(cm.Type(springXMLUtils), "getNameOrId", element))
	blank := m.Body.If(isBlank(id)).Then
	parent := blank.Decl(javaString, "parentId",
		cm.Call(cm.Type(springXMLUtils), "getNameOrId", cm.Cast(domElement, cm.Call(element, "getParentNode"))))
	blank.Return(cm.Plus(cm.Plus(cm.Plus(cm.Lit("."), parent), cm.Lit(":")), cm.Call(element, "getLocalName")))
	m.Body.Return(id)
}
