package parsergen

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-devkit/codegen"
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/schema"
)

func param(name string, t *model.TypeDescriptor) *model.ParameterModel {
	return &model.ParameterModel{Name: name, Type: t}
}

func processor(method string, params ...*model.ParameterModel) *model.OperationModel {
	return &model.OperationModel{Kind: model.OperationProcessor, MethodName: method, Parameters: params}
}

func module(ops ...*model.OperationModel) *model.ModuleModel {
	return &model.ModuleModel{Name: "acme", Package: "org.acme", ClassName: "AcmeModule", Operations: ops}
}

func render(t *testing.T, m *model.ModuleModel, fqn string) string {
	t.Helper()
	out := cm.NewModel()
	require.NoError(t, Synthesize(m, out))
	c, ok := out.Lookup(fqn)
	require.True(t, ok, fqn)
	return string(cm.Render(c))
}

func TestSendParserReadsBothAttributes(t *testing.T) {
	m := module(processor("send",
		param("message", model.StringType()),
		&model.ParameterModel{Name: "retries", Type: model.Boxed("java.lang.Integer"), Optional: true},
	))
	src := render(t, m, "org.acme.config.spring.SendDefinitionParser")

	assert.Contains(t, src, "public class SendDefinitionParser implements org.springframework.beans.factory.xml.BeanDefinitionParser {")
	assert.Contains(t, src, `org.springframework.beans.factory.support.BeanDefinitionBuilder.rootBeanDefinition(org.acme.config.SendMessageProcessor.class.getName())`)
	assert.Contains(t, src, `builder.addPropertyValue("message", element.getAttribute("message"));`)
	assert.Contains(t, src, `builder.addPropertyValue("retries", element.getAttribute("retries"));`)
	assert.Contains(t, src, `builder.addPropertyValue("moduleObject", configRef);`)
	assert.Contains(t, src, "definition.setAttribute(org.mule.config.spring.MuleHierarchicalBeanDefinitionParserDelegate.MULE_NO_RECURSE, java.lang.Boolean.TRUE);")
	assert.Contains(t, src, `listMessageProcessors.add(definition);`)

	assert.NotContains(t, src, "RuntimeBeanReference")
	assert.NotContains(t, src, "getChildElementsByTagName")
	assert.NotContains(t, src, "retryMax")
	assert.NotContains(t, src, "generateChildBeanName")
}

func TestListOfStringsParser(t *testing.T) {
	m := module(processor("greet", param("names", model.ListOf(model.StringType()))))
	out := cm.NewModel()
	require.NoError(t, Synthesize(m, out))
	c, ok := out.Lookup("org.acme.config.spring.GreetDefinitionParser")
	require.True(t, ok)
	src := string(cm.Render(c))

	require.NotNil(t, c.FindMethod("parseNamesList"))
	assert.Contains(t, src, `org.w3c.dom.Element namesElement = org.springframework.util.xml.DomUtils.getChildElementByTagName(element, "names");`)
	assert.Contains(t, src, `builder.addPropertyValue("names", parseNamesList(namesElement));`)
	assert.Contains(t, src, `org.springframework.util.xml.DomUtils.getChildElementsByTagName(listElement, "name");`)
	assert.Contains(t, src, "managedList.add(child.getTextContent());")
	assert.Contains(t, src, "(ref.startsWith(this.patternInfo.getPrefix()) && ref.endsWith(this.patternInfo.getSuffix()))")
	assert.Contains(t, src, "return ref;")
	assert.Contains(t, src, "return new org.springframework.beans.factory.config.RuntimeBeanReference(ref);")
}

func TestNestedCollectionsRecurse(t *testing.T) {
	m := module(processor("load", param("rows", model.ListOf(model.MapOf(model.StringType(), model.ListOf(model.StringType()))))))
	out := cm.NewModel()
	require.NoError(t, Synthesize(m, out))
	c, ok := out.Lookup("org.acme.config.spring.LoadDefinitionParser")
	require.True(t, ok)
	src := string(cm.Render(c))

	for _, name := range []string{"parseRowsList", "parseRowsInnerMap", "parseRowsInnerInnerList"} {
		assert.NotNil(t, c.FindMethod(name), name)
	}
	assert.Contains(t, src, "managedList.add(parseRowsInnerMap(child));")
	assert.Contains(t, src, "valueObject = parseRowsInnerInnerList(child);")
	assert.Contains(t, src, `getChildElementsByTagName(listElement, "inner-row")`)
	assert.Contains(t, src, "children = org.springframework.util.xml.DomUtils.getChildElements(listElement);")
	assert.Contains(t, src, "keyObject = child.getTagName();")
}

func TestReferenceParameter(t *testing.T) {
	m := module(processor("store", param("payload", model.Pojo("org.acme.Payload"))))
	src := render(t, m, "org.acme.config.spring.StoreDefinitionParser")

	assert.Contains(t, src, `java.lang.String payloadRef = element.getAttribute("payload-ref");`)
	assert.Contains(t, src, "if ((payloadRef.startsWith(this.patternInfo.getPrefix()) && payloadRef.endsWith(this.patternInfo.getSuffix()))) {")
	assert.Contains(t, src, `builder.addPropertyValue("payload", payloadRef);`)
	assert.Contains(t, src, `builder.addPropertyValue("payload", new org.springframework.beans.factory.config.RuntimeBeanReference(payloadRef));`)
	assert.NotContains(t, src, "#[registry:")
}

// TestAttributeValuesReachTheProcessor follows literal, expression and
// reference values from the schema through the parser into the processor
// setters they are injected into.
func TestAttributeValuesReachTheProcessor(t *testing.T) {
	color := model.Enum("org.acme.Color", "RED", "GREEN")
	m := module(processor("eat",
		param("apple", model.Pojo("org.acme.Apple")),
		param("count", model.Primitive("int")),
		param("color", color),
		param("names", model.ListOf(model.StringType())),
	))

	doc, err := schema.Synthesize(m, nil)
	require.NoError(t, err)
	out := cm.NewModel()
	require.NoError(t, Synthesize(m, out))
	require.NoError(t, codegen.Synthesize(m, out, nil))

	eat := doc.Schema.ComplexType("EatType")
	require.NotNil(t, eat)
	require.NotNil(t, eat.Attribute("count"))
	assert.Equal(t, schema.IntegerType, eat.Attribute("count").Type.Local)
	integer := doc.Schema.SimpleType(schema.IntegerType)
	require.NotNil(t, integer)
	assert.Equal(t, schema.ExpressionOrPlaceholderPatt, integer.Union.SimpleTypes[1].Restriction.Pattern.Value)
	require.NotNil(t, eat.Attribute("color"))
	assert.Equal(t, "ColorEnumType", eat.Attribute("color").Type.Local)
	require.NotNil(t, eat.Attribute("apple-ref"))

	parser, ok := out.Lookup("org.acme.config.spring.EatDefinitionParser")
	require.True(t, ok)
	src := string(cm.Render(parser))
	assert.Contains(t, src, `builder.addPropertyValue("count", element.getAttribute("count"));`)
	assert.Contains(t, src, `builder.addPropertyValue("color", element.getAttribute("color"));`)
	assert.Contains(t, src, `builder.addPropertyValue("apple", appleRef);`)
	assert.Contains(t, src, `builder.addPropertyValue("apple", new org.springframework.beans.factory.config.RuntimeBeanReference(appleRef));`)
	assert.Contains(t, src, `builder.addPropertyValue("names", parseNamesList(namesElement));`)

	proc, ok := out.Lookup("org.acme.config.EatMessageProcessor")
	require.True(t, ok)
	for _, setter := range []string{"setApple", "setCount", "setColor", "setNames"} {
		method := proc.FindMethod(setter)
		require.NotNil(t, method, setter)
		require.Len(t, method.Params, 1)
		assert.Equal(t, "java.lang.Object", method.Params[0].Type, "%s must accept literals, expressions and bean references", setter)
	}
}

func TestNestedProcessorParser(t *testing.T) {
	m := module(processor("route", param("processors", model.Nested(true))))
	src := render(t, m, "org.acme.config.spring.RouteDefinitionParser")

	assert.Contains(t, src, `java.lang.String processorsText = element.getAttribute("text");`)
	assert.Contains(t, src, "org.springframework.beans.factory.support.BeanDefinitionBuilder.rootBeanDefinition(org.mule.config.spring.factories.MessageProcessorChainFactoryBean.class)")
	assert.Contains(t, src, "parserContext.getRegistry().registerBeanDefinition(generateChildBeanName(element), processorsBeanDefinition);")
	assert.Contains(t, src, "parserContext.getRegistry().removeBeanDefinition(generateChildBeanName(element));")
	assert.Contains(t, src, `builder.addPropertyValue("processors", processorsList);`)
	assert.Contains(t, src, `return ((("." + parentId) + ":") + element.getLocalName());`)
}

func TestFlowRefAndXMLParsers(t *testing.T) {
	m := module(processor("subscribe",
		param("onEvent", model.Pojo(model.HTTPCallback)),
		param("document", model.XMLBindable("org.acme.Document")),
		param("headers", model.MapOf(model.StringType(), model.StringType())),
	))
	src := render(t, m, "org.acme.config.spring.SubscribeDefinitionParser")

	assert.Contains(t, src, `element.getAttribute("on-event-flow-ref")`)
	assert.Contains(t, src, `builder.addPropertyValue("onEventCallbackFlow", new org.springframework.beans.factory.config.RuntimeBeanReference(onEventCallbackFlowName));`)
	assert.Contains(t, src, `getChildElementByTagName(element, "document")`)
	assert.Contains(t, src, "transformer.transform(domSource, result);")
	assert.Contains(t, src, "catch (javax.xml.transform.TransformerFactoryConfigurationError e)")
	assert.Contains(t, src, "throw new org.apache.commons.lang.UnhandledException(e);")
}

func TestSourceParserSetsMessageSource(t *testing.T) {
	m := module(&model.OperationModel{Kind: model.OperationSource, MethodName: "listen", Parameters: []*model.ParameterModel{
		param("topic", model.StringType()),
		param("callback", model.Pojo(model.SourceCallback)),
	}})
	src := render(t, m, "org.acme.config.spring.ListenDefinitionParser")
	assert.Contains(t, src, "rootBeanDefinition(org.acme.config.ListenMessageSource.class.getName())")
	assert.Contains(t, src, `propertyValues.addPropertyValue("messageSource", definition);`)
	assert.NotContains(t, src, "callback")
}

func TestConfigParser(t *testing.T) {
	m := module(processor("subscribe", param("onEvent", model.Pojo(model.HTTPCallback))))
	m.Fields = []*model.ConfigurableFieldModel{
		{Name: "apiKey", Type: model.StringType()},
		{Name: "client", Type: model.Pojo("org.acme.Client")},
	}
	m.Connect = &model.OperationModel{Kind: model.OperationProcessor, MethodName: "connect", Parameters: []*model.ParameterModel{param("username", model.StringType())}}
	m.Initialisable = true
	m.Poolable = true
	m.OAuth = true
	src := render(t, m, "org.acme.config.spring.AcmeModuleConfigDefinitionParser")

	assert.Contains(t, src, `element.setAttribute("name", org.mule.config.spring.parsers.generic.AutoIdUtils.getUniqueName(element, "mule-bean"));`)
	assert.Contains(t, src, "rootBeanDefinition(org.acme.AcmeModule.class.getName())")
	assert.Contains(t, src, "builder.setInitMethodName(org.mule.api.lifecycle.Initialisable.PHASE_NAME);")
	assert.NotContains(t, src, "setDestroyMethodName")
	assert.Contains(t, src, `builder.addPropertyValue("apiKey", element.getAttribute("apiKey"));`)
	assert.Contains(t, src, `builder.addPropertyValue("client", new org.springframework.beans.factory.config.RuntimeBeanReference(clientRef));`)
	assert.Contains(t, src, `builder.addPropertyValue("username", element.getAttribute("username"));`)
	assert.Contains(t, src, `getChildElementByTagName(element, "oauth-callback-config")`)
	assert.Contains(t, src, `getChildElementByTagName(element, "http-callback-config")`)
	assert.Contains(t, src, `getChildElementByTagName(element, "oauth-save-access-token")`)
	assert.Contains(t, src, `builder.addPropertyValue("oauthRestoreAccessToken", oauthRestoreAccessTokenBeanDefinition);`)
	assert.Contains(t, src, `builder.addPropertyValue("connector", new org.springframework.beans.factory.config.RuntimeBeanReference(httpCallbackConfigElement.getAttribute("connector-ref")));`)
	assert.Contains(t, src, "org.mule.config.PoolingProfile.POOL_EXHAUSTED_ACTIONS.get(connectionPoolingProfileElement.getAttribute(\"exhaustedAction\"))")
	assert.Contains(t, src, "org.mule.config.PoolingProfile.POOL_INITIALISATION_POLICIES.get(poolingProfileElement.getAttribute(\"initialisationPolicy\"))")
	assert.Contains(t, src, `builder.addPropertyValue("poolingProfile", poolingProfileBuilder.getBeanDefinition());`)
	assert.Contains(t, src, "private java.lang.String generateChildBeanName(org.w3c.dom.Element element) {")
	assert.NotContains(t, src, "listMessageProcessors")
}

func TestConnectableOperationReadsRetryMax(t *testing.T) {
	m := module(processor("send", param("message", model.StringType())))
	m.Connect = &model.OperationModel{Kind: model.OperationProcessor, MethodName: "connect", Parameters: []*model.ParameterModel{param("username", model.StringType())}}
	src := render(t, m, "org.acme.config.spring.SendDefinitionParser")
	assert.Contains(t, src, `builder.addPropertyValue("retryMax", element.getAttribute("retryMax"));`)
	assert.Contains(t, src, `builder.addPropertyValue("username", element.getAttribute("username"));`)
}

func TestAuthorizeParser(t *testing.T) {
	m := module()
	m.OAuth = true
	src := render(t, m, "org.acme.config.spring.AuthorizeDefinitionParser")
	assert.Contains(t, src, "rootBeanDefinition(org.mule.devkit.processor.oauth.AuthorizeMessageProcessor.class.getName())")
	for _, a := range schema.AuthorizeAttributes {
		assert.Contains(t, src, strconv.Quote(a))
	}
}

func TestDuplicateParserNames(t *testing.T) {
	err := Synthesize(module(processor("send"), processor("send")), cm.NewModel())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicateElement)
}

// names collects every attribute and local element name a complex type
// declares, recursing into inline types.
func names(ct *schema.ComplexType) []string {
	if ct == nil {
		return nil
	}
	var out []string
	for _, a := range ct.AllAttributes() {
		out = append(out, a.Name)
	}
	elements := ct.ChildElements()
	if ct.Choice != nil {
		for _, seq := range ct.Choice.Sequences {
			elements = append(elements, seq.Elements...)
		}
	}
	for _, e := range elements {
		out = append(out, e.Name)
		out = append(out, names(e.ComplexType)...)
	}
	return out
}

func TestEverySchemaNameIsParsed(t *testing.T) {
	color := model.Enum("org.acme.Color", "RED", "GREEN")
	m := module(
		processor("everything",
			param("message", model.StringType()),
			param("color", color),
			param("payload", model.Pojo("org.acme.Payload")),
			param("onEvent", model.Pojo(model.HTTPCallback)),
			param("document", model.XMLBindable("org.acme.Document")),
			param("route", model.Nested(false)),
			param("names", model.ListOf(model.StringType())),
			param("rows", model.ListOf(model.ListOf(model.Boxed("java.lang.Integer")))),
			param("headers", model.MapOf(color, model.ListOf(model.StringType()))),
			param("clients", model.MapOf(model.Pojo("org.acme.Client"), model.Pojo("org.acme.Client"))),
		),
		processor("single", param("processors", model.Nested(true))),
	)
	m.Fields = []*model.ConfigurableFieldModel{
		{Name: "apiKey", Type: model.StringType()},
		{Name: "tags", Type: model.ListOf(model.StringType())},
	}
	m.Connect = &model.OperationModel{Kind: model.OperationProcessor, MethodName: "connect", Parameters: []*model.ParameterModel{param("username", model.StringType())}}
	m.OAuth = true
	m.Poolable = true

	doc, err := schema.Synthesize(m, nil)
	require.NoError(t, err)
	out := cm.NewModel()
	require.NoError(t, Synthesize(m, out))

	parsers := map[string]string{
		"EverythingType":     "org.acme.config.spring.EverythingDefinitionParser",
		"SingleType":         "org.acme.config.spring.SingleDefinitionParser",
		schema.AuthorizeType: "org.acme.config.spring.AuthorizeDefinitionParser",
	}
	for typeName, parser := range parsers {
		t.Run(typeName, func(t *testing.T) {
			ct := doc.Schema.ComplexType(typeName)
			require.NotNil(t, ct)
			c, ok := out.Lookup(parser)
			require.True(t, ok)
			src := string(cm.Render(c))
			for _, name := range names(ct) {
				assert.Contains(t, src, strconv.Quote(name), "%s is not parsed", name)
			}
		})
	}

	t.Run("config", func(t *testing.T) {
		config := doc.Schema.Element(schema.ConfigElement)
		require.NotNil(t, config)
		c, ok := out.Lookup(ConfigParserClassName(m))
		require.True(t, ok)
		src := string(cm.Render(c))
		for _, name := range names(config.ComplexType) {
			assert.Contains(t, src, strconv.Quote(name), "%s is not parsed", name)
		}
	})
}
