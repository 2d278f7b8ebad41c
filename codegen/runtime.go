package codegen

// Host runtime types referenced by generated classes. They are only named,
// never loaded.
const (
	javaObject       = "java.lang.Object"
	javaString       = "java.lang.String"
	javaClass        = "java.lang.Class"
	javaThread       = "java.lang.Thread"
	javaRunnable     = "java.lang.Runnable"
	javaException    = "java.lang.Exception"
	javaRuntimeExc   = "java.lang.RuntimeException"
	javaEnum         = "java.lang.Enum"
	javaList         = "java.util.List"
	javaArrayList    = "java.util.ArrayList"
	javaMap          = "java.util.Map"
	javaHashMap      = "java.util.HashMap"
	javaMapEntry     = "java.util.Map.Entry"
	javaReflectType  = "java.lang.reflect.Type"
	javaParamType    = "java.lang.reflect.ParameterizedType"
	atomicInteger    = "java.util.concurrent.atomic.AtomicInteger"
	muleContext      = "org.mule.api.MuleContext"
	muleEvent        = "org.mule.api.MuleEvent"
	muleMessage      = "org.mule.api.MuleMessage"
	muleException    = "org.mule.api.MuleException"
	messagingExc     = "org.mule.api.MessagingException"
	nestedProcessor  = "org.mule.api.NestedProcessor"
	defaultMessage   = "org.mule.DefaultMuleMessage"
	defaultEvent     = "org.mule.DefaultMuleEvent"
	messageExchange  = "org.mule.MessageExchangePattern"
	nullPayload      = "org.mule.transport.NullPayload"
	muleContextAware = "org.mule.api.context.MuleContextAware"
	flowConstruct    = "org.mule.api.construct.FlowConstruct"
	flowAware        = "org.mule.api.construct.FlowConstructAware"
	initialisable    = "org.mule.api.lifecycle.Initialisable"
	startable        = "org.mule.api.lifecycle.Startable"
	stoppable        = "org.mule.api.lifecycle.Stoppable"
	disposable       = "org.mule.api.lifecycle.Disposable"
	initialisationEx = "org.mule.api.lifecycle.InitialisationException"
	messageProcessor = "org.mule.api.processor.MessageProcessor"
	interceptingMP   = "org.mule.api.processor.InterceptingMessageProcessor"
	messageSource    = "org.mule.api.source.MessageSource"
	sourceCallback   = "org.mule.api.callback.SourceCallback"
	httpCallback     = "org.mule.api.callback.HttpCallback"
	defaultCallback  = "org.mule.devkit.callback.DefaultHttpCallback"
	nestedChain      = "org.mule.devkit.processor.NestedProcessorChain"
	nestedString     = "org.mule.devkit.processor.NestedProcessorString"
	expressionMgr    = "org.mule.api.expression.ExpressionManager"
	registrationExc  = "org.mule.api.registry.RegistrationException"
	templateParser   = "org.mule.util.TemplateParser"
	patternInfo      = "org.mule.util.TemplateParser.PatternInfo"
	coreMessages     = "org.mule.config.i18n.CoreMessages"
	messageFactory   = "org.mule.config.i18n.MessageFactory"
	dataType         = "org.mule.api.transformer.DataType"
	dataTypeFactory  = "org.mule.transformer.types.DataTypeFactory"
	transformer      = "org.mule.api.transformer.Transformer"
	transformerExc   = "org.mule.api.transformer.TransformerException"
	transformerTmpl  = "org.mule.transformer.TransformerTemplate"
	overwritePayload = "org.mule.transformer.TransformerTemplate.OverwritePayloadCallback"
	abstractTransf   = "org.mule.transformer.AbstractTransformer"
	discoverable     = "org.mule.api.transformer.DiscoverableTransformer"
)
