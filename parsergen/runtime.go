package parsergen

// Spring and host runtime types referenced by generated parsers.
const (
	javaObject       = "java.lang.Object"
	javaString       = "java.lang.String"
	javaBoolean      = "java.lang.Boolean"
	javaList         = "java.util.List"
	domElement       = "org.w3c.dom.Element"
	elementList      = "java.util.List<org.w3c.dom.Element>"
	parserContext    = "org.springframework.beans.factory.xml.ParserContext"
	beanParser       = "org.springframework.beans.factory.xml.BeanDefinitionParser"
	beanDefinition   = "org.springframework.beans.factory.config.BeanDefinition"
	beanBuilder      = "org.springframework.beans.factory.support.BeanDefinitionBuilder"
	runtimeBeanRef   = "org.springframework.beans.factory.config.RuntimeBeanReference"
	managedList      = "org.springframework.beans.factory.support.ManagedList"
	managedMap       = "org.springframework.beans.factory.support.ManagedMap"
	mutableValues    = "org.springframework.beans.MutablePropertyValues"
	propertyValue    = "org.springframework.beans.PropertyValue"
	domUtils         = "org.springframework.util.xml.DomUtils"
	stringUtils      = "org.apache.commons.lang.StringUtils"
	unhandledExc     = "org.apache.commons.lang.UnhandledException"
	autoIdUtils      = "org.mule.config.spring.parsers.generic.AutoIdUtils"
	springXMLUtils   = "org.mule.config.spring.util.SpringXMLUtils"
	muleDelegate     = "org.mule.config.spring.MuleHierarchicalBeanDefinitionParserDelegate"
	chainFactoryBean = "org.mule.config.spring.factories.MessageProcessorChainFactoryBean"
	pollingFactory   = "org.mule.config.spring.factories.PollingMessageSourceFactoryBean"
	messageEnricher  = "org.mule.enricher.MessageEnricher"
	poolingProfile   = "org.mule.config.PoolingProfile"
	initialisable    = "org.mule.api.lifecycle.Initialisable"
	disposable       = "org.mule.api.lifecycle.Disposable"
	templateParser   = "org.mule.util.TemplateParser"
	patternInfo      = "org.mule.util.TemplateParser.PatternInfo"
	authorizeMP      = "org.mule.devkit.processor.oauth.AuthorizeMessageProcessor"
	domSource        = "javax.xml.transform.dom.DOMSource"
	streamResult     = "javax.xml.transform.stream.StreamResult"
	stringWriter     = "java.io.StringWriter"
	xmlTransformerF  = "javax.xml.transform.TransformerFactory"
	xmlTransformer   = "javax.xml.transform.Transformer"
	xmlConfigExc     = "javax.xml.transform.TransformerConfigurationException"
	xmlTransformExc  = "javax.xml.transform.TransformerException"
	xmlFactoryError  = "javax.xml.transform.TransformerFactoryConfigurationError"
)
