package codegen

import (
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
)

func synthesizeProcessor(m *model.ModuleModel, op *model.OperationModel, out *cm.Model) error {
	params, connect, err := operationShapes(m, op)
	if err != nil {
		return err
	}
	c, err := defineClass(m, op.MethodName, ProcessorClassName(m, op), out)
	if err != nil {
		return err
	}
	c.Javadoc = c.Name + " invokes the " + op.MethodName + " method of " + m.PojoClassName() + ".\n" +
		"For each argument there is a field in this processor to match it. Before invoking the\n" +
		"actual method the processor evaluates and transforms where possible to the expected argument type."

	c.Implement(initialisable, startable, disposable, stoppable)
	if op.Intercepting {
		c.Implement(interceptingMP)
	} else {
		c.Implement(messageProcessor)
	}
	c.Implement(muleContextAware, flowAware)

	r := &runtimeClass{module: m, op: op, class: c, params: params, connect: connect}
	r.addDependencyFields()
	if m.Connectable() {
		c.Field(atomicInteger, fieldRetryCount, cm.Private)
		c.Field("int", fieldRetryMax, cm.Private)
	}
	if op.Intercepting {
		c.Field(messageProcessor, fieldListener, cm.Private)
		r.addSourceCallback(fieldListener)
	}
	r.addParameterFields()

	r.addInitialise()
	r.addContextSetters()
	r.addLifecycle(nil, "start", "stop", "dispose")
	r.addSetters()
	if op.Intercepting {
		setListener := c.Method("void", "setListener", cm.Public)
		listener := setListener.Param(messageProcessor, fieldListener)
		setListener.Body.Assign(cm.Self(fieldListener), listener)
	}
	r.addEvaluationHelpers()
	r.addProcess()
	return nil
}

// addProcess emits process(MuleEvent): resolve the module object, evaluate
// and coerce every argument, invoke the module method and map its result
// onto the event.
func (r *runtimeClass) addProcess() {
	process := r.class.Method(muleEvent, "process", cm.Public).Throw(muleException)
	event := process.Param(muleEvent, "event")
	body := process.Body

	msg := body.Decl(muleMessage, "muleMessage", cm.Call(event, "getMessage"))
	module := r.findConfig(body, event)

	try := body.Try()
	r.connectArguments(try.Body, msg, event, module)
	args := r.arguments(try.Body, msg, event)
	call := cm.Call(module, r.op.MethodName, args...)
	retrying := r.module.Connectable()

	if !r.op.Returns() {
		try.Body.Invoke(call)
		if retrying {
			try.Body.Invoke(cm.Call(cm.Self(fieldRetryCount), "set", cm.Int(0)))
		}
		try.Body.Return(event)
	} else {
		result := try.Body.Decl(javaObject, "resultPayload", call)
		if retrying {
			try.Body.Invoke(cm.Call(cm.Self(fieldRetryCount), "set", cm.Int(0)))
		}
		empty := try.Body.If(cm.Eq(result, cm.Null))
		empty.Then.Return(cm.New(defaultEvent,
			cm.New(defaultMessage, cm.Call(cm.Type(nullPayload), "getInstance"), cm.Self(fieldMuleContext)),
			event,
		))
		try.Body.Invoke(cm.Call(cm.Call(event, "getMessage"), "applyTransformers", event,
			cm.New(transformerTmpl, cm.New(overwritePayload, result))))
		try.Body.Return(event)
	}

	if len(r.connect) > 0 {
		try.Catch(messagingExc, "e").Throw(cm.Name("e"))
	}
	failed := try.Catch(javaException, "e")
	if retrying {
		again := failed.If(cm.Op(cm.Call(cm.Self(fieldRetryCount), "getAndIncrement"), "<", cm.Self(fieldRetryMax)))
		again.Then.Return(cm.Invoke("process", event))
		failed.Invoke(cm.Call(cm.Self(fieldRetryCount), "set", cm.Int(0)))
	}
	failed.Throw(failedToInvoke(r.op.MethodName, event, cm.Name("e")))
}
