package schema

import (
	"strconv"

	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
	"github.com/gaborage/go-devkit/projection"
)

// Element, attribute and type names of the Mule core schema.
const (
	ConfigElement                = "config"
	AuthorizeElement             = "authorize"
	AuthorizeType                = "AuthorizeType"
	ConnectionPoolingProfile     = "connection-pooling-profile"
	PoolingProfile               = "pooling-profile"
	OAuthCallbackConfig          = "oauth-callback-config"
	HTTPCallbackConfig           = "http-callback-config"
	OAuthSaveAccessToken         = "oauth-save-access-token"
	OAuthRestoreAccessToken      = "oauth-restore-access-token"
	AttrName                     = "name"
	AttrConfigRef                = "config-ref"
	AttrRetryMax                 = "retryMax"
	AttrDomain                   = "domain"
	AttrLocalPort                = "localPort"
	AttrRemotePort               = "remotePort"
	AttrAsync                    = "async"
	AttrConnectorRef             = "connector-ref"
	DefaultRetryMax              = "1"
	domainDefault                = "${fullDomain}"
	portDefault                  = "${http.port}"
	asyncDefault                 = "true"
	muleAbstractExtension        = "abstract-extension"
	muleAbstractExtensionType    = "abstractExtensionType"
	muleMessageProcessor         = "abstract-message-processor"
	muleMessageProcessorType     = "abstractMessageProcessorType"
	muleInterceptingProcessor    = "abstract-intercepting-message-processor"
	muleInterceptingProcessorTyp = "abstractInterceptingMessageProcessorType"
	muleInboundEndpoint          = "abstract-inbound-endpoint"
	muleInboundEndpointType      = "abstractInboundEndpointType"
	muleTransformer              = "abstract-transformer"
	muleTransformerType          = "abstractTransformerType"
	mulePoolingProfileType       = "poolingProfileType"
	muleProcessorOrEndpoint      = "messageProcessorOrOutboundEndpoint"
)

// OAuth authorize attributes, in declaration order.
var AuthorizeAttributes = []string{"state", "accessTokenUrl", "authorizationUrl", "requestTokenUrl"}

const (
	docName             = "Give a name to this configuration so it can be later referenced by config-ref."
	docConfigRef        = "Specify which configuration to use for this invocation."
	docRef              = "The reference object for this parameter"
	docRetryMax         = "Specify how many times this operation can be retried automatically."
	docConnectionPool   = "Characteristics of the connection pool."
	docObjectPool       = "Characteristics of the object pool."
	docCallbackConfig   = "Config for http callbacks."
	docAuthorize        = "Starts OAuth authorization process. It must be called from a flow with an http:inbound-endpoint."
	docSaveAccessToken  = "A chain of message processors processed synchronously that can be used to save OAuth state. They will be executed once the connector acquires an OAuth access token."
	docRestoreAccessTkn = "A chain of message processors processed synchronously that can be used to restore OAuth state. They will be executed whenever access to a protected resource is requested and the connector is not authorized yet."
)

// Document is the synthesized schema of one module together with its
// location record.
type Document struct {
	Schema   *Schema
	Location model.SchemaLocation
}

// Bytes serializes the schema.
func (d *Document) Bytes() ([]byte, error) {
	return Marshal(d.Schema)
}

type synthesizer struct {
	module *model.ModuleModel
	ns     string
	schema *Schema
	enums  *projection.EnumRegistry
}

// Synthesize projects a module into its XSD document. enums is the registry
// shared with the code synthesizer for the same module pass; when nil, one
// is collected from the module.
func Synthesize(m *model.ModuleModel, enums *projection.EnumRegistry) (*Document, error) {
	if enums == nil {
		var err error
		if enums, err = projection.CollectEnums(m); err != nil {
			return nil, err
		}
	}

	ns := m.TargetNamespace()
	s := &synthesizer{
		module: m,
		ns:     ns,
		enums:  enums,
		schema: &Schema{
			XMLNS:                ns,
			XMLNSXS:              XSDNamespace,
			XMLNSMule:            MuleNamespace,
			XMLNSBeans:           SpringBeansNamespace,
			XMLNSDevkit:          DevkitNamespace,
			TargetNamespace:      ns,
			ElementFormDefault:   QualifiedForm,
			AttributeFormDefault: UnqualifiedForm,
			Imports: []*Import{
				{Namespace: XMLNamespace},
				{Namespace: SpringBeansNamespace, SchemaLocation: SpringBeansLocation},
				{Namespace: MuleNamespace, SchemaLocation: MuleSchemaLocation},
				{Namespace: DevkitNamespace, SchemaLocation: DevkitSchemaLocation},
			},
		},
	}

	s.registerTypes()
	if err := s.registerConfig(); err != nil {
		return nil, err
	}
	if err := s.registerOperations(); err != nil {
		return nil, err
	}
	s.registerTransformers()
	s.registerEnums()

	return &Document{Schema: s.schema, Location: m.Location()}, nil
}

func (s *synthesizer) registerTypes() {
	s.registerType(IntegerType, "integer", 0)
	s.registerType(DecimalType, "decimal", 0)
	s.registerType(FloatType, "float", 0)
	s.registerType(DoubleType, "double", 0)
	s.registerType(DateTimeType, "dateTime", 0)
	s.registerType(LongType, "long", 0)
	s.registerType(ByteType, "byte", 0)
	s.registerType(BooleanType, "boolean", 0)
	s.registerType(AnyURIType, "anyURI", 0)
	s.registerType(CharType, "string", 1)
	s.registerType(StringType, "string", 0)

	s.schema.ComplexTypes = append(s.schema.ComplexTypes, &ComplexType{
		Name:       XMLType,
		Sequence:   &Group{Any: []*Any{lax()}},
		Attributes: []*Attribute{optionalString(projection.AttrRef, docRef)},
	})
}

// registerType adds a union of the strict base type and the expression or
// placeholder pattern. A positive length pins minLength and maxLength.
func (s *synthesizer) registerType(name, base string, length int) {
	strict := &Restriction{Base: XS(base)}
	if length > 0 {
		strict.MinLength = &Facet{Value: strconv.Itoa(length)}
		strict.MaxLength = &Facet{Value: strconv.Itoa(length)}
	}
	s.schema.SimpleTypes = append(s.schema.SimpleTypes, &SimpleType{
		Name: name,
		Union: &Union{SimpleTypes: []*SimpleType{
			{Restriction: strict},
			{Restriction: &Restriction{Base: XS("string"), Pattern: &Facet{Value: ExpressionOrPlaceholderPatt}}},
		}},
	})
}

func (s *synthesizer) registerConfig() error {
	m := s.module
	ext := &Extension{Base: Mule(muleAbstractExtensionType)}
	ext.Attributes = append(ext.Attributes, optionalString(AttrName, docName))
	seq := &Group{}

	shapes, err := projection.ProjectFields(m.Fields)
	if err != nil {
		return model.NewGenerationError(m.Name, ConfigElement, "cannot project configurable fields", err)
	}
	for _, shape := range shapes {
		s.addShape(shape, ext, seq)
	}

	if m.Connectable() {
		connect, err := projection.ProjectAll(m.ConnectParameters(), projection.ContextConnect)
		if err != nil {
			return model.NewGenerationError(m.Name, m.Connect.MethodName, "cannot project connect parameters", err)
		}
		for _, shape := range connect {
			s.addShape(shape, ext, seq)
		}
		seq.Elements = append(seq.Elements, poolingProfile(ConnectionPoolingProfile, docConnectionPool))
	}

	if m.OAuth {
		seq.Elements = append(seq.Elements,
			callbackConfig(OAuthCallbackConfig),
			nestedChain(OAuthSaveAccessToken, docSaveAccessToken),
			nestedChain(OAuthRestoreAccessToken, docRestoreAccessTkn),
		)
	}
	if m.UsesHTTPCallback() {
		seq.Elements = append(seq.Elements, callbackConfig(HTTPCallbackConfig))
	}

	if m.Poolable {
		seq.Elements = append(seq.Elements, poolingProfile(PoolingProfile, docObjectPool))
	}

	if len(seq.Elements) > 0 {
		ext.Sequence = seq
	}

	s.schema.Elements = append(s.schema.Elements, &Element{
		Name:              ConfigElement,
		SubstitutionGroup: Mule(muleAbstractExtension),
		JavaClass:         m.PojoClassName(),
		Annotation:        doc(m.Description),
		ComplexType:       &ComplexType{ComplexContent: &ComplexContent{Extension: ext}},
	})
	return nil
}

func (s *synthesizer) registerOperations() error {
	m := s.module
	if m.OAuth {
		s.registerOperationElement(AuthorizeElement, AuthorizeType, Mule(muleMessageProcessor), docAuthorize)
		ext := &Extension{Base: Mule(muleMessageProcessorType)}
		ext.Attributes = append(ext.Attributes, optionalString(AttrConfigRef, docConfigRef))
		for _, a := range AuthorizeAttributes {
			ext.Attributes = append(ext.Attributes, &Attribute{Name: a, Type: XS("string"), Use: UseOptional})
		}
		s.schema.ComplexTypes = append(s.schema.ComplexTypes, &ComplexType{
			Name:           AuthorizeType,
			ComplexContent: &ComplexContent{Extension: ext},
		})
	}

	for _, op := range m.Operations {
		var group, base string
		switch op.Kind {
		case model.OperationProcessor:
			group, base = muleMessageProcessor, muleMessageProcessorType
			if op.Intercepting {
				group, base = muleInterceptingProcessor, muleInterceptingProcessorTyp
			}
		case model.OperationSource:
			group, base = muleInboundEndpoint, muleInboundEndpointType
		default:
			continue
		}

		s.registerOperationElement(op.ElementName(), op.TypeName(), Mule(group), op.Description)
		if err := s.registerOperationType(op, Mule(base)); err != nil {
			return err
		}
	}
	return nil
}

func (s *synthesizer) registerOperationElement(name, typeName string, group *QName, description string) {
	s.schema.Elements = append(s.schema.Elements, &Element{
		Name:              name,
		SubstitutionGroup: group,
		Type:              Local(s.ns, typeName),
		Annotation:        doc(description),
	})
}

func (s *synthesizer) registerOperationType(op *model.OperationModel, base *QName) error {
	m := s.module
	ext := &Extension{Base: base}
	ext.Attributes = append(ext.Attributes, optionalString(AttrConfigRef, docConfigRef))
	seq := &Group{}

	shapes, err := projection.ProjectAll(op.Parameters, projection.ContextOperation)
	if err != nil {
		return model.NewGenerationError(m.Name, op.MethodName, "cannot project parameters", err)
	}
	for _, shape := range shapes {
		s.addShape(shape, ext, seq)
	}

	if m.Connectable() {
		if op.Kind == model.OperationProcessor {
			retry := optionalString(AttrRetryMax, docRetryMax)
			retry.Default = DefaultRetryMax
			ext.Attributes = append(ext.Attributes, retry)
		}
		connect, err := projection.ProjectAll(m.ConnectParameters(), projection.ContextConnect)
		if err != nil {
			return model.NewGenerationError(m.Name, op.MethodName, "cannot project connect parameters", err)
		}
		for _, shape := range connect {
			s.addShape(shape, ext, seq)
		}
	}

	if len(seq.Elements) > 0 {
		ext.Sequence = seq
	}

	s.schema.ComplexTypes = append(s.schema.ComplexTypes, &ComplexType{
		Name:           op.TypeName(),
		ComplexContent: &ComplexContent{Extension: ext},
	})
	return nil
}

// addShape emits one projected parameter as an attribute of ext or a child
// element of seq.
func (s *synthesizer) addShape(shape *projection.Shape, ext *Extension, seq *Group) {
	switch shape.Kind {
	case projection.ShapeAttribute:
		t, _ := ToSchemaType(shape.Type, s.ns)
		ext.Attributes = append(ext.Attributes, s.attribute(shape, t))
	case projection.ShapeEnumAttribute:
		ext.Attributes = append(ext.Attributes, s.attribute(shape, s.enumType(shape.Type)))
	case projection.ShapeFlowRef, projection.ShapeRef:
		ext.Attributes = append(ext.Attributes, s.attribute(shape, XS("string")))
	case projection.ShapeXMLElement:
		seq.Elements = append(seq.Elements, &Element{
			Name:       shape.Element,
			Type:       Local(s.ns, XMLType),
			MinOccurs:  minOccurs(shape.Optional),
			MaxOccurs:  "1",
			Annotation: doc(shape.Summary),
		})
	case projection.ShapeNestedProcessor:
		if shape.Collapsed {
			ext.Group = nestedProcessorGroup()
			ext.Attributes = append(ext.Attributes, &Attribute{Name: projection.AttrText, Type: XS("string"), Use: UseOptional})
			return
		}
		seq.Elements = append(seq.Elements, &Element{
			Name:       shape.Element,
			MinOccurs:  minOccurs(shape.Optional),
			MaxOccurs:  "1",
			Annotation: doc(shape.Summary),
			ComplexType: &ComplexType{
				Group:      nestedProcessorGroup(),
				Attributes: []*Attribute{{Name: projection.AttrText, Type: XS("string"), Use: UseOptional}},
			},
		})
	case projection.ShapeCollection, projection.ShapeMap:
		seq.Elements = append(seq.Elements, &Element{
			Name:        shape.Element,
			MinOccurs:   minOccurs(shape.Optional),
			MaxOccurs:   "1",
			Annotation:  doc(shape.Summary),
			ComplexType: s.containerType(shape.Container),
		})
	}
}

func (s *synthesizer) attribute(shape *projection.Shape, t *QName) *Attribute {
	use := UseRequired
	if shape.Optional {
		use = UseOptional
	}
	return &Attribute{
		Name:       shape.Attribute,
		Type:       t,
		Use:        use,
		Default:    shape.Default,
		Annotation: doc(shape.Summary),
	}
}

// containerType builds the complex type of a collection or map element: an
// unbounded sequence of items plus the ref bypass. Maps additionally accept
// arbitrary lax content.
func (s *synthesizer) containerType(c *projection.Container) *ComplexType {
	item := &Element{
		Name:        c.Item,
		MinOccurs:   "0",
		MaxOccurs:   Unbounded,
		ComplexType: s.itemType(c),
	}
	ct := &ComplexType{Attributes: []*Attribute{optionalString(projection.AttrRef, docRef)}}
	if c.Map {
		ct.Choice = &Group{Sequences: []*Group{
			{Elements: []*Element{item}},
			{Any: []*Any{lax()}},
		}}
	} else {
		ct.Sequence = &Group{Elements: []*Element{item}}
	}
	return ct
}

func (s *synthesizer) itemType(c *projection.Container) *ComplexType {
	if !c.Map {
		return s.collectionItemType(c.Element)
	}
	return s.mapItemType(c.Key, c.Value)
}

func (s *synthesizer) collectionItemType(elem projection.Argument) *ComplexType {
	switch elem.Kind {
	case projection.ArgMap, projection.ArgCollection:
		return s.containerType(elem.Inner)
	case projection.ArgEnum:
		return simpleContent(s.enumType(elem.Type))
	case projection.ArgSimple:
		t, _ := ToSchemaType(elem.Type, s.ns)
		return simpleContent(t, valueRef())
	default:
		return &ComplexType{Attributes: []*Attribute{{Name: projection.AttrValueRef, Type: XS("string"), Use: UseRequired}}}
	}
}

func (s *synthesizer) mapItemType(key, value projection.Argument) *ComplexType {
	var keyAttr *Attribute
	switch key.Kind {
	case projection.ArgSimple:
		t, _ := ToSchemaType(key.Type, s.ns)
		keyAttr = &Attribute{Name: projection.AttrKey, Type: t}
	case projection.ArgEnum:
		keyAttr = &Attribute{Name: projection.AttrKey, Type: s.enumType(key.Type)}
	default:
		keyAttr = &Attribute{Name: projection.AttrKeyRef, Type: XS("string"), Use: UseRequired}
	}

	switch value.Kind {
	case projection.ArgMap, projection.ArgCollection:
		ct := s.containerType(value.Inner)
		ct.Attributes = append(ct.Attributes, valueRef(), keyAttr)
		return ct
	case projection.ArgSimple:
		t, _ := ToSchemaType(value.Type, s.ns)
		return simpleContent(t, valueRef(), keyAttr)
	case projection.ArgEnum:
		return simpleContent(s.enumType(value.Type), valueRef(), keyAttr)
	default:
		return simpleContent(XS("string"), valueRef(), keyAttr)
	}
}

// registerTransformers adds a transformer element per transformer method
// and per JAXB transformer.
func (s *synthesizer) registerTransformers() {
	names := make([]string, 0, len(s.module.Transformers()))
	for _, op := range s.module.Transformers() {
		names = append(names, op.ElementName())
	}
	for _, x := range projection.XMLBindables(s.module) {
		names = append(names, projection.JaxbTransformerElement(x))
	}
	for _, name := range names {
		s.schema.Elements = append(s.schema.Elements, &Element{
			Name:              name,
			SubstitutionGroup: Mule(muleTransformer),
			Type:              Mule(muleTransformerType),
		})
	}
}

// registerEnums adds one union per distinct enum: the enumerated constants
// or a #[...] expression.
func (s *synthesizer) registerEnums() {
	for _, e := range s.enums.Enums() {
		values := &Restriction{Base: XS("string")}
		for _, c := range e.EnumConstants {
			values.Enumerations = append(values.Enumerations, &Facet{Value: c})
		}
		s.schema.SimpleTypes = append(s.schema.SimpleTypes, &SimpleType{
			Name: naming.EnumTypeName(e.SimpleName()),
			Union: &Union{SimpleTypes: []*SimpleType{
				{Restriction: values},
				{Restriction: &Restriction{Base: XS("string"), Pattern: &Facet{Value: ExpressionPattern}}},
			}},
		})
	}
}

func (s *synthesizer) enumType(t *model.TypeDescriptor) *QName {
	return Local(s.ns, naming.EnumTypeName(t.SimpleName()))
}

func callbackConfig(name string) *Element {
	ext := &Extension{Base: Mule(muleAbstractExtensionType)}
	ext.Attributes = []*Attribute{
		{Name: AttrLocalPort, Type: XS("string"), Use: UseOptional, Default: portDefault},
		{Name: AttrRemotePort, Type: XS("string"), Use: UseOptional, Default: portDefault},
		{Name: AttrDomain, Type: XS("string"), Use: UseOptional, Default: domainDefault},
		{Name: AttrAsync, Type: XS("boolean"), Use: UseOptional, Default: asyncDefault},
		{Name: AttrConnectorRef, Type: XS("string"), Use: UseOptional},
	}
	return &Element{
		Name:        name,
		MinOccurs:   "0",
		MaxOccurs:   "1",
		Annotation:  doc(docCallbackConfig),
		ComplexType: &ComplexType{ComplexContent: &ComplexContent{Extension: ext}},
	}
}

func nestedChain(name, documentation string) *Element {
	return &Element{
		Name:        name,
		MinOccurs:   "0",
		MaxOccurs:   "1",
		Annotation:  doc(documentation),
		ComplexType: &ComplexType{Group: nestedProcessorGroup()},
	}
}

func poolingProfile(name, documentation string) *Element {
	return &Element{
		Name:       name,
		Type:       Mule(mulePoolingProfileType),
		MinOccurs:  "0",
		Annotation: doc(documentation),
	}
}

func nestedProcessorGroup() *GroupRef {
	return &GroupRef{Ref: Mule(muleProcessorOrEndpoint), MinOccurs: "0", MaxOccurs: Unbounded}
}

func simpleContent(base *QName, attrs ...*Attribute) *ComplexType {
	return &ComplexType{SimpleContent: &SimpleContent{Extension: &Extension{Base: base, Attributes: attrs}}}
}

func valueRef() *Attribute {
	return &Attribute{Name: projection.AttrValueRef, Type: XS("string"), Use: UseOptional}
}

func optionalString(name, documentation string) *Attribute {
	return &Attribute{Name: name, Type: XS("string"), Use: UseOptional, Annotation: doc(documentation)}
}

func lax() *Any {
	return &Any{ProcessContents: ProcessContentsLax, MinOccurs: "0", MaxOccurs: Unbounded}
}

func minOccurs(optional bool) string {
	if optional {
		return "0"
	}
	return "1"
}

func doc(text string) *Annotation {
	if text == "" {
		return nil
	}
	return &Annotation{Documentation: text}
}
