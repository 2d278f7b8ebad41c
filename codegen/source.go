package codegen

import (
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
)

func synthesizeSource(m *model.ModuleModel, op *model.OperationModel, out *cm.Model) error {
	params, connect, err := operationShapes(m, op)
	if err != nil {
		return err
	}
	c, err := defineClass(m, op.MethodName, SourceClassName(m, op), out)
	if err != nil {
		return err
	}
	c.Javadoc = c.Name + " wraps " + m.PojoClassName() + "#" + op.MethodName + " as a message source.\n" +
		"The method runs on its own thread and every payload it emits is dispatched to the flow."

	c.Implement(muleContextAware, startable, stoppable, javaRunnable, initialisable, messageSource, sourceCallback, flowAware)

	r := &runtimeClass{module: m, op: op, class: c, params: params, connect: connect}
	r.addDependencyFields()
	c.Field(messageProcessor, fieldMessageProcessor, cm.Private)
	c.Field(javaThread, fieldThread, cm.Private)
	r.addParameterFields()

	r.addInitialise()
	r.addContextSetters()
	r.addLifecycle(map[string]func(*cm.Block){
		"start": func(b *cm.Block) {
			b.If(cm.Eq(cm.Self(fieldThread), cm.Null)).Then.
				Assign(cm.Self(fieldThread), cm.New(javaThread, cm.This, cm.Lit(c.Name)))
			b.Invoke(cm.Call(cm.Self(fieldThread), "start"))
		},
		"stop": func(b *cm.Block) {
			b.Invoke(cm.Call(cm.Self(fieldThread), "interrupt"))
		},
	}, "start", "stop")
	r.addSetters()

	setListener := c.Method("void", "setListener", cm.Public)
	listener := setListener.Param(messageProcessor, "listener")
	setListener.Body.Assign(cm.Self(fieldMessageProcessor), listener)

	r.addEvaluationHelpers()
	r.addSourceCallback(fieldMessageProcessor)
	r.addRun()
	return nil
}

// addRun emits run(): the module method is invoked with this class as its
// SourceCallback. Failures go to the context's exception listener since
// run cannot throw.
func (r *runtimeClass) addRun() {
	run := r.class.Method("void", "run", cm.Public)
	body := run.Body
	event := cm.Cast(muleEvent, cm.Null)
	msg := body.Decl(muleMessage, "muleMessage", cm.Null)

	try := body.Try()
	module := r.findConfig(try.Body, event)
	r.connectArguments(try.Body, msg, event, module)
	args := r.arguments(try.Body, msg, event)
	try.Body.Invoke(cm.Call(module, r.op.MethodName, args...))

	failed := try.Catch(javaException, "e")
	failed.Invoke(cm.Call(cm.Call(cm.Self(fieldMuleContext), "getExceptionListener"), "handleException",
		failedToInvoke(r.op.MethodName, event, cm.Name("e"))))
}
