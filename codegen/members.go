package codegen

import (
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
	"github.com/gaborage/go-devkit/projection"
)

// Dependency field names shared by processors and sources.
const (
	fieldModuleObject      = "moduleObject"
	fieldMuleContext       = "muleContext"
	fieldExpressionManager = "expressionManager"
	fieldPatternInfo       = "patternInfo"
	fieldFlowConstruct     = "flowConstruct"
	fieldRetryCount        = "retryCount"
	fieldRetryMax          = "retryMax"
	fieldListener          = "listener"
	fieldMessageProcessor  = "messageProcessor"
	fieldThread            = "thread"
)

// runtimeClass collects what the member generators need to know about one
// generated processor or source.
type runtimeClass struct {
	module  *model.ModuleModel
	op      *model.OperationModel
	class   *cm.Class
	params  []*projection.Shape
	connect []*projection.Shape
}

func (r *runtimeClass) shapes() []*projection.Shape {
	return append(append([]*projection.Shape{}, r.params...), r.connect...)
}

func (r *runtimeClass) addDependencyFields() {
	c := r.class
	c.Field(javaObject, fieldModuleObject, cm.Private)
	c.Field(muleContext, fieldMuleContext, cm.Private)
	c.Field(expressionMgr, fieldExpressionManager, cm.Private)
	c.Field(patternInfo, fieldPatternInfo, cm.Private)
	c.Field(flowConstruct, fieldFlowConstruct, cm.Private)
}

// addParameterFields emits one field per projected shape. Callback flow
// references get a second field holding the callback built at initialise,
// and fields converted by generic type get a companion of that type.
func (r *runtimeClass) addParameterFields() {
	for _, s := range r.params {
		r.class.Field(s.FieldType(), s.Property, cm.Private)
		switch {
		case s.Kind == projection.ShapeFlowRef:
			r.class.Field(httpCallback, s.Name, cm.Private)
		case s.Typed():
			r.class.Field(s.DeclaredType(), s.TypeField(), cm.Private)
		}
	}
	for _, s := range r.connect {
		r.class.Field(s.FieldType(), s.Property, cm.Private)
		r.class.Field(s.DeclaredType(), s.TypeField(), cm.Private)
	}
}

// addSetters emits a setter per dependency the parser or the container
// injects, and one per projected shape.
func (r *runtimeClass) addSetters() {
	setModule := r.class.Method("void", "setModuleObject", cm.Public)
	value := setModule.Param(javaObject, fieldModuleObject)
	setModule.Body.Assign(cm.Self(fieldModuleObject), value)

	if r.module.Connectable() && r.op.Kind == model.OperationProcessor {
		setRetry := r.class.Method("void", "setRetryMax", cm.Public)
		retry := setRetry.Param("int", fieldRetryMax)
		setRetry.Body.Assign(cm.Self(fieldRetryMax), retry)
	}

	for _, s := range r.shapes() {
		setter := r.class.Method("void", "set"+naming.Capitalize(s.Property), cm.Public)
		v := setter.Param(s.FieldType(), "value")
		setter.Body.Assign(cm.Self(s.Property), v)
	}
}

func registry() cm.Expr {
	return cm.Call(cm.Self(fieldMuleContext), "getRegistry")
}

func staticMessage(text string) cm.Expr {
	return cm.Call(cm.Type(messageFactory), "createStaticMessage", cm.Lit(text))
}

// addInitialise resolves the module object and prepares expression
// evaluation, nested processors and callbacks.
func (r *runtimeClass) addInitialise() {
	pojo := r.module.PojoClassName()
	init := r.class.Method("void", "initialise", cm.Public).Throw(initialisationEx)
	body := init.Body

	if r.module.Connectable() && r.op.Kind == model.OperationProcessor {
		body.Assign(cm.Self(fieldRetryCount), cm.New(atomicInteger))
	}
	body.Assign(cm.Self(fieldExpressionManager), cm.Call(cm.Self(fieldMuleContext), "getExpressionManager"))
	body.Assign(cm.Self(fieldPatternInfo), cm.Call(cm.Call(cm.Type(templateParser), "createMuleStyleParser"), "getStyle"))

	missing := body.If(cm.Eq(cm.Self(fieldModuleObject), cm.Null))
	lookup := missing.Then.Try()
	lookup.Body.Assign(cm.Self(fieldModuleObject), cm.Call(registry(), "lookupObject", cm.ClassLit(pojo)))
	lookup.Body.If(cm.Eq(cm.Self(fieldModuleObject), cm.Null)).Then.
		Throw(cm.New(initialisationEx, staticMessage("Cannot find object"), cm.This))
	lookup.Catch(registrationExc, "e").
		Throw(cm.New(initialisationEx, cm.Call(cm.Type(coreMessages), "initialisationFailure", cm.Lit(pojo)), cm.Name("e"), cm.This))

	byName := body.If(cm.InstanceOf(cm.Self(fieldModuleObject), javaString))
	byName.Then.Assign(cm.Self(fieldModuleObject), cm.Call(registry(), "lookupObject", cm.Cast(javaString, cm.Self(fieldModuleObject))))
	byName.Then.If(cm.Eq(cm.Self(fieldModuleObject), cm.Null)).Then.
		Throw(cm.New(initialisationEx, staticMessage("Cannot find object by config name"), cm.This))

	for _, s := range r.params {
		switch s.Kind {
		case projection.ShapeNestedProcessor:
			r.delegate(body, s, initialisable, "initialise")
		case projection.ShapeFlowRef:
			set := body.If(cm.Ne(cm.Self(s.Property), cm.Null)).Then
			module := set.Decl(pojo, "castedModuleObject", cm.Cast(pojo, cm.Self(fieldModuleObject)))
			set.Assign(cm.Self(s.Name), cm.New(defaultCallback,
				cm.Self(s.Property),
				cm.Self(fieldMuleContext),
				cm.Call(module, "getDomain"),
				cm.Call(module, "getLocalPort"),
				cm.Call(module, "getRemotePort"),
				cm.Call(module, "getAsync"),
			))
		}
	}
}

// delegate forwards a lifecycle call to a nested processor field, or to
// every element when the field holds a list of processors.
func (r *runtimeClass) delegate(body *cm.Block, s *projection.Shape, iface, method string, args ...cm.Expr) {
	if !s.Type.ListOf {
		cond := body.If(cm.InstanceOf(cm.Self(s.Property), iface))
		cond.Then.Invoke(cm.Call(cm.Cast(iface, cm.Self(s.Property)), method, args...))
		return
	}
	list := body.If(cm.InstanceOf(cm.Self(s.Property), javaList))
	each := list.Then.ForEach(messageProcessor, "processor", cm.Cast(javaList+"<"+messageProcessor+">", cm.Self(s.Property)))
	each.If(cm.InstanceOf(cm.Name("processor"), iface)).Then.Invoke(cm.Call(cm.Cast(iface, cm.Name("processor")), method, args...))
}

func (r *runtimeClass) nestedShapes() []*projection.Shape {
	var out []*projection.Shape
	for _, s := range r.params {
		if s.Kind == projection.ShapeNestedProcessor {
			out = append(out, s)
		}
	}
	return out
}

// addContextSetters emits setMuleContext and setFlowConstruct, both
// propagated to nested processors.
func (r *runtimeClass) addContextSetters() {
	setContext := r.class.Method("void", "setMuleContext", cm.Public)
	ctx := setContext.Param(muleContext, "context")
	setContext.Body.Assign(cm.Self(fieldMuleContext), ctx)
	for _, s := range r.nestedShapes() {
		r.delegate(setContext.Body, s, muleContextAware, "setMuleContext", ctx)
	}

	setFlow := r.class.Method("void", "setFlowConstruct", cm.Public)
	flow := setFlow.Param(flowConstruct, fieldFlowConstruct)
	setFlow.Body.Assign(cm.Self(fieldFlowConstruct), flow)
	for _, s := range r.nestedShapes() {
		r.delegate(setFlow.Body, s, flowAware, "setFlowConstruct", flow)
	}
}

// lifecyclePhases maps a lifecycle method to its interface and checked
// exception.
var lifecyclePhases = map[string]struct{ iface, throws string }{
	"start":   {startable, muleException},
	"stop":    {stoppable, muleException},
	"dispose": {disposable, ""},
}

// addLifecycle emits the named lifecycle methods, each delegating to nested
// processors. prefix, when present for a phase, runs first.
func (r *runtimeClass) addLifecycle(prefix map[string]func(*cm.Block), phases ...string) {
	for _, name := range phases {
		phase := lifecyclePhases[name]
		m := r.class.Method("void", name, cm.Public)
		if phase.throws != "" {
			m.Throw(phase.throws)
		}
		if fn, ok := prefix[name]; ok {
			fn(m.Body)
		}
		for _, s := range r.nestedShapes() {
			r.delegate(m.Body, s, phase.iface, name)
		}
	}
}

// addEvaluationHelpers emits the private evaluate and evaluateAndTransform
// methods plus the reflection predicates they rely on.
func (r *runtimeClass) addEvaluationHelpers() {
	c := r.class

	evaluate := c.Method(javaObject, "evaluate", cm.Private)
	msg := evaluate.Param(muleMessage, "muleMessage")
	source := evaluate.Param(javaObject, "source")
	isString := evaluate.Body.If(cm.InstanceOf(source, javaString))
	str := isString.Then.Decl(javaString, "stringSource", cm.Cast(javaString, source))
	wrapped := isString.Then.If(cm.And(
		cm.Call(str, "startsWith", cm.Call(cm.Self(fieldPatternInfo), "getPrefix")),
		cm.Call(str, "endsWith", cm.Call(cm.Self(fieldPatternInfo), "getSuffix")),
	))
	wrapped.Then.Return(cm.Call(cm.Self(fieldExpressionManager), "evaluate", str, msg))
	wrapped.Otherwise().Return(cm.Call(cm.Self(fieldExpressionManager), "parse", str, msg))
	evaluate.Body.Return(source)

	for _, pred := range []struct{ name, container string }{{"isList", javaList}, {"isMap", javaMap}} {
		m := c.Method("boolean", pred.name, cm.Private)
		t := m.Param(javaReflectType, "type")
		m.Body.If(cm.InstanceOf(t, javaClass)).Then.
			Return(cm.Call(cm.ClassLit(pred.container), "isAssignableFrom", cm.Cast(javaClass, t)))
		m.Body.If(cm.InstanceOf(t, javaParamType)).Then.
			Return(cm.Invoke(pred.name, cm.Call(cm.Cast(javaParamType, t), "getRawType")))
		m.Body.Return(cm.False)
	}

	assignable := c.Method("boolean", "isAssignableFrom", cm.Private)
	expected := assignable.Param(javaReflectType, "expectedType")
	clazz := assignable.Param(javaClass, "clazz")
	assignable.Body.If(cm.InstanceOf(expected, javaClass)).Then.
		Return(cm.Call(cm.Cast(javaClass, expected), "isAssignableFrom", clazz))
	assignable.Body.If(cm.InstanceOf(expected, javaParamType)).Then.
		Return(cm.Invoke("isAssignableFrom", cm.Call(cm.Cast(javaParamType, expected), "getRawType"), clazz))
	assignable.Body.Return(cm.False)

	r.addEvaluateAndTransform()
}

func (r *runtimeClass) addEvaluateAndTransform() {
	m := r.class.Method(javaObject, "evaluateAndTransform", cm.Private).Throw(transformerExc)
	msg := m.Param(muleMessage, "muleMessage")
	expected := m.Param(javaReflectType, "expectedType")
	source := m.Param(javaObject, "source")
	body := m.Body

	body.If(cm.Eq(source, cm.Null)).Then.Return(source)
	target := body.Decl(javaObject, "target", cm.Null)
	typeArg := func(i int) cm.Expr {
		return cm.Index(cm.Call(cm.Cast(javaParamType, expected), "getActualTypeArguments"), i)
	}

	isList := body.If(cm.And(cm.Invoke("isList", cm.Call(source, "getClass")), cm.Invoke("isList", expected)))
	isList.Then.If(cm.Not(cm.InstanceOf(expected, javaParamType))).Then.Return(source)
	newList := isList.Then.Decl(javaList, "newList", cm.New(javaArrayList))
	each := isList.Then.ForEach(javaObject, "item", cm.Cast(javaList, source))
	each.Invoke(cm.Call(newList, "add", cm.Invoke("evaluateAndTransform", msg, typeArg(0), cm.Name("item"))))
	isList.Then.Assign(target, newList)

	notList := isList.Otherwise()
	isMap := notList.If(cm.And(cm.Invoke("isMap", cm.Call(source, "getClass")), cm.Invoke("isMap", expected)))
	isMap.Then.If(cm.Not(cm.InstanceOf(expected, javaParamType))).Then.Return(source)
	newMap := isMap.Then.Decl(javaMap, "newMap", cm.New(javaHashMap))
	entries := isMap.Then.ForEach(javaObject, "entryObject", cm.Call(cm.Cast(javaMap, source), "entrySet"))
	entry := entries.Decl(javaMapEntry, "entry", cm.Cast(javaMapEntry, cm.Name("entryObject")))
	key := entries.Decl(javaObject, "newKey", cm.Invoke("evaluateAndTransform", msg, typeArg(0), cm.Call(entry, "getKey")))
	val := entries.Decl(javaObject, "newValue", cm.Invoke("evaluateAndTransform", msg, typeArg(1), cm.Call(entry, "getValue")))
	entries.Invoke(cm.Call(newMap, "put", key, val))
	isMap.Then.Assign(target, newMap)
	isMap.Otherwise().Assign(target, cm.Invoke("evaluate", msg, source))

	convert := body.If(cm.And(cm.Ne(target, cm.Null), cm.Not(cm.Invoke("isAssignableFrom", expected, cm.Call(target, "getClass")))))
	src := convert.Then.Decl(dataType, "sourceDataType", cm.Call(cm.Type(dataTypeFactory), "create", cm.Call(target, "getClass")))
	dst := convert.Then.Decl(dataType, "targetDataType", cm.Call(cm.Type(dataTypeFactory), "create", cm.Cast(javaClass, expected)))
	t := convert.Then.Decl(transformer, "t", cm.Call(registry(), "lookupTransformer", src, dst))
	convert.Then.Return(cm.Call(t, "transform", target))
	body.Return(target)
}

// failedToInvoke builds the MessagingException raised when the module
// method throws.
func failedToInvoke(method string, event, cause cm.Expr) cm.Expr {
	return cm.New(messagingExc, cm.Call(cm.Type(coreMessages), "failedToInvoke", cm.Lit(method)), event, cause)
}
