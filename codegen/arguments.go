package codegen

import (
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
	"github.com/gaborage/go-devkit/projection"
)

// findConfig resolves the module object into a typed local. A string module
// object names a config element and is looked up in the registry.
func (r *runtimeClass) findConfig(body *cm.Block, event cm.Expr) cm.Expr {
	pojo := r.module.PojoClassName()
	module := body.Decl(pojo, "castedModuleObject", cm.Null)

	byName := body.If(cm.InstanceOf(cm.Self(fieldModuleObject), javaString))
	byName.Then.Assign(module, cm.Cast(pojo, cm.Call(registry(), "lookupObject", cm.Cast(javaString, cm.Self(fieldModuleObject)))))
	byName.Then.If(cm.Eq(module, cm.Null)).Then.Throw(cm.New(messagingExc,
		cm.Call(cm.Type(coreMessages), "failedToCreate", cm.Lit(r.op.MethodName)),
		event,
		cm.New(javaRuntimeExc, cm.Lit("Cannot find the configuration specified by the config-ref attribute.")),
	))
	byName.Otherwise().Assign(module, cm.Cast(pojo, cm.Self(fieldModuleObject)))
	return module
}

// genericType reads the generic type of the companion field of s, the
// target type of evaluateAndTransform.
func (r *runtimeClass) genericType(s *projection.Shape) cm.Expr {
	return cm.Call(cm.Call(cm.ClassLit(r.class.FullName()), "getDeclaredField", cm.Lit(s.TypeField())), "getGenericType")
}

// connectArguments evaluates connect parameters, falling back to the value
// configured on the module object.
func (r *runtimeClass) connectArguments(body *cm.Block, msg, event, module cm.Expr) {
	for _, s := range r.connect {
		boxed := s.DeclaredType()
		local := body.Decl(boxed, "transformed"+naming.Capitalize(s.Property), cm.Null)
		getter := cm.Call(module, "get"+naming.Capitalize(s.Property))

		set := body.If(cm.Ne(cm.Self(s.Property), cm.Null))
		set.Then.Assign(local, cm.Cast(boxed, cm.Invoke("evaluateAndTransform", msg, r.genericType(s), cm.Self(s.Property))))
		fallback := set.Otherwise()
		fallback.If(cm.Eq(getter, cm.Null)).Then.Throw(cm.New(messagingExc,
			cm.Call(cm.Type(coreMessages), "failedToCreate", cm.Lit(r.op.MethodName)),
			event,
			cm.New(javaRuntimeExc, cm.Lit("You must provide a "+s.Property+" at the config or the message processor level.")),
		))
		fallback.Assign(local, cm.Cast(boxed, cm.Invoke("evaluateAndTransform", msg, r.genericType(s), getter)))
	}
}

// arguments declares one local per method parameter in declaration order
// and returns the expressions passed to the module method.
func (r *runtimeClass) arguments(body *cm.Block, msg, event cm.Expr) []cm.Expr {
	byName := make(map[string]*projection.Shape, len(r.params))
	for _, s := range r.params {
		byName[s.Name] = s
	}

	args := make([]cm.Expr, 0, len(r.op.Parameters))
	for _, p := range r.op.Parameters {
		if p.Type != nil && p.Type.QualifiedName == model.SourceCallback {
			if r.class.ImplementsInterface(sourceCallback) {
				args = append(args, cm.This)
			} else {
				args = append(args, cm.Cast(sourceCallback, cm.Null))
			}
			continue
		}
		s := byName[p.Name]
		args = append(args, r.argument(body, s, msg, event))
	}
	return args
}

func (r *runtimeClass) argument(body *cm.Block, s *projection.Shape, msg, event cm.Expr) cm.Expr {
	suffix := naming.Capitalize(s.Property)
	switch {
	case s.RuntimeEvaluated():
		return r.evaluateAndCoerce(body, s, msg)
	case s.Typed():
		typ := s.DeclaredType()
		return body.Decl(typ, "transformed"+suffix,
			cm.Cast(typ, cm.Invoke("evaluateAndTransform", msg, r.genericType(s), cm.Self(s.Property))))
	case s.Kind == projection.ShapeNestedProcessor:
		return r.nestedArgument(body, s, event)
	default:
		return cm.Self(s.Name)
	}
}

// evaluateAndCoerce evaluates the raw field against the expression pattern
// and converts the result to the boxed parameter type through a registry
// transformer when it is not already assignable.
func (r *runtimeClass) evaluateAndCoerce(body *cm.Block, s *projection.Shape, msg cm.Expr) cm.Expr {
	suffix := naming.Capitalize(s.Property)
	boxed := s.Type.BoxedName()

	evaluated := body.Decl(javaObject, "evaluated"+suffix, cm.Invoke("evaluate", msg, cm.Cast(javaObject, cm.Self(s.Property))))
	transformed := body.Decl(boxed, "transformed"+suffix, cm.Null)

	present := body.If(cm.Ne(evaluated, cm.Null))
	convert := present.Then.If(cm.Not(cm.Call(cm.ClassLit(boxed), "isAssignableFrom", cm.Call(evaluated, "getClass"))))
	src := convert.Then.Decl(dataType, "source", cm.Call(cm.Type(dataTypeFactory), "create", cm.Call(evaluated, "getClass")))
	dst := convert.Then.Decl(dataType, "target", cm.Call(cm.Type(dataTypeFactory), "create", cm.ClassLit(boxed)))
	t := convert.Then.Decl(transformer, "t", cm.Call(registry(), "lookupTransformer", src, dst))
	convert.Then.Assign(transformed, cm.Cast(boxed, cm.Call(t, "transform", evaluated)))
	convert.Otherwise().Assign(transformed, cm.Cast(boxed, evaluated))
	return transformed
}

// nestedArgument wraps the injected chain, or the text attribute, in the
// NestedProcessor handed to the module method.
func (r *runtimeClass) nestedArgument(body *cm.Block, s *projection.Shape, event cm.Expr) cm.Expr {
	field := cm.Self(s.Property)
	name := "transformed" + naming.Capitalize(s.Property)
	chain := func(p cm.Expr) cm.Expr { return cm.New(nestedChain, event, cm.Self(fieldMuleContext), p) }
	text := cm.New(nestedString, cm.Cast(javaString, field))

	if !s.Type.ListOf {
		local := body.Decl(nestedProcessor, name, cm.Null)
		isChain := body.If(cm.InstanceOf(field, messageProcessor))
		isChain.Then.Assign(local, chain(cm.Cast(messageProcessor, field)))
		isChain.Otherwise().If(cm.InstanceOf(field, javaString)).Then.Assign(local, text)
		return local
	}

	list := javaList + "<" + nestedProcessor + ">"
	local := body.Decl(list, name, cm.New(javaArrayList+"<"+nestedProcessor+">"))
	isList := body.If(cm.InstanceOf(field, javaList))
	each := isList.Then.ForEach(messageProcessor, "processor", cm.Cast(javaList+"<"+messageProcessor+">", field))
	each.Invoke(cm.Call(local, "add", chain(cm.Name("processor"))))
	isList.Otherwise().If(cm.InstanceOf(field, javaString)).Then.Invoke(cm.Call(local, "add", text))
	return local
}

// addSourceCallback makes the class a SourceCallback whose payloads are
// dispatched as new events to listener.
func (r *runtimeClass) addSourceCallback(listener string) {
	r.class.Implement(sourceCallback)

	plain := r.class.Method(javaObject, "process", cm.Public).Throw(javaException)
	payload := plain.Param(javaObject, "payload")
	r.dispatch(plain.Body, listener, cm.New(defaultMessage, payload, cm.Self(fieldMuleContext)))

	withProps := r.class.Method(javaObject, "process", cm.Public).Throw(javaException)
	payload = withProps.Param(javaObject, "payload")
	props := withProps.Param(javaMap+"<"+javaString+", "+javaObject+">", "properties")
	r.dispatch(withProps.Body, listener, cm.New(defaultMessage, payload, props, cm.Self(fieldMuleContext)))
}

func (r *runtimeClass) dispatch(body *cm.Block, listener string, message cm.Expr) {
	msg := body.Decl(muleMessage, "muleMessage", message)
	event := body.Decl(muleEvent, "muleEvent", cm.New(defaultEvent, msg, cm.Dot(cm.Type(messageExchange), "ONE_WAY"), cm.Self(fieldFlowConstruct)))
	response := body.Decl(muleEvent, "responseEvent", cm.Call(cm.Self(listener), "process", event))
	body.If(cm.Ne(response, cm.Null)).Then.Return(cm.Call(cm.Call(response, "getMessage"), "getPayload"))
	body.Return(cm.Null)
}
