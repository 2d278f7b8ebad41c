package codegen

import (
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
)

const (
	fieldWeighting     = "weighting"
	fieldJaxbContext   = "JAXB_CONTEXT"
	illegalArgument    = "java.lang.IllegalArgumentException"
	classCast          = "java.lang.ClassCastException"
	unsupportedEnc     = "java.io.UnsupportedEncodingException"
	byteArrayInput     = "java.io.ByteArrayInputStream"
	inputStream        = "java.io.InputStream"
	streamSource       = "javax.xml.transform.stream.StreamSource"
	jaxbContext        = "javax.xml.bind.JAXBContext"
	jaxbException      = "javax.xml.bind.JAXBException"
	jaxbUnmarshaller   = "javax.xml.bind.Unmarshaller"
	loadJaxbContextFun = "loadJaxbContext"
)

// addWeighting emits the priority weighting field with its accessors.
func addWeighting(c *cm.Class, priority int) {
	base := cm.Dot(cm.Type(discoverable), "DEFAULT_PRIORITY_WEIGHTING")
	init := base
	if priority != 0 {
		init = cm.Plus(base, cm.Int(priority))
	}
	c.Field("int", fieldWeighting, cm.Private).Init = init

	get := c.Method("int", "getPriorityWeighting", cm.Public)
	get.Body.Return(cm.Self(fieldWeighting))

	set := c.Method("void", "setPriorityWeighting", cm.Public)
	w := set.Param("int", fieldWeighting)
	set.Body.Assign(cm.Self(fieldWeighting), w)
}

// addConstructor registers the accepted source types, the return class and
// the transformer name.
func addConstructor(c *cm.Class, sources []string, returns string) {
	ctor := c.Constructor(cm.Public)
	for _, s := range sources {
		ctor.Body.Invoke(cm.Invoke("registerSourceType", cm.Call(cm.Type(dataTypeFactory), "create", cm.ClassLit(s))))
	}
	ctor.Body.Invoke(cm.Invoke("setReturnClass", cm.ClassLit(returns)))
	ctor.Body.Invoke(cm.Invoke("setName", cm.Lit(c.Name)))
}

func transformFailed(target string) cm.Expr {
	return cm.Call(cm.Type(coreMessages), "transformFailed",
		cm.Call(cm.Call(cm.Name("src"), "getClass"), "getName"), cm.Lit(target))
}

func synthesizeTransformer(m *model.ModuleModel, op *model.OperationModel, out *cm.Model) error {
	if err := op.CheckTransformer(m.Name); err != nil {
		return err
	}
	c, err := defineClass(m, op.MethodName, TransformerClassName(m, op), out)
	if err != nil {
		return err
	}
	c.Extends = abstractTransf
	c.Implement(discoverable, muleContextAware, initialisable)

	primary := op.Parameters[0].Type.JavaType(true)
	returns := op.ReturnType.JavaType(true)
	sources := []string{primary}
	for _, t := range op.SourceTypes {
		sources = append(sources, t.JavaType(true))
	}

	addWeighting(c, op.Priority)
	addConstructor(c, sources, returns)

	pojo := m.PojoClassName()
	transform := c.Method(javaObject, "doTransform", cm.Protected).Throw(transformerExc)
	src := transform.Param(javaObject, "src")
	transform.Param(javaString, "encoding")
	body := transform.Body

	result := body.Decl(returns, "result", cm.Null)
	try := body.Try()
	var target cm.Expr = cm.Type(pojo)
	if !op.Static {
		target = try.Body.Decl(pojo, "module", cm.Cast(pojo, cm.Call(cm.Call(cm.Self("muleContext"), "getRegistry"), "lookupObject", cm.ClassLit(pojo))))
	}
	try.Body.Assign(result, cm.Call(target, op.MethodName, cm.Cast(primary, src)))
	try.Catch(javaException, "e").Throw(cm.New(transformerExc, transformFailed(returns), cm.This, cm.Name("e")))
	body.Return(result)
	return nil
}

func synthesizeEnumTransformer(m *model.ModuleModel, enum *model.TypeDescriptor, out *cm.Model) error {
	c, err := defineClass(m, enum.QualifiedName, EnumTransformerClassName(m, enum), out)
	if err != nil {
		return err
	}
	c.Extends = abstractTransf
	c.Implement(discoverable)

	addWeighting(c, 0)
	addConstructor(c, []string{javaString}, enum.QualifiedName)

	transform := c.Method(javaObject, "doTransform", cm.Protected).Throw(transformerExc)
	src := transform.Param(javaObject, "src")
	transform.Param(javaString, "encoding")
	body := transform.Body

	result := body.Decl(enum.QualifiedName, "result", cm.Null)
	try := body.Try()
	try.Body.Assign(result, cm.Call(cm.Type(javaEnum), "valueOf", cm.ClassLit(enum.QualifiedName), cm.Cast(javaString, src)))
	for _, exc := range []string{illegalArgument, classCast} {
		try.Catch(exc, "e").Throw(cm.New(transformerExc, transformFailed(enum.QualifiedName), cm.This, cm.Name("e")))
	}
	body.Return(result)
	return nil
}

// synthesizeJaxbTransformer emits the String to xml transformer. The JAXB
// context is built once per class.
func synthesizeJaxbTransformer(m *model.ModuleModel, xml *model.TypeDescriptor, out *cm.Model) error {
	c, err := defineClass(m, xml.QualifiedName, JaxbTransformerClassName(m, xml), out)
	if err != nil {
		return err
	}
	c.Extends = abstractTransf
	c.Implement(discoverable)
	target := xml.BoxedName()

	addWeighting(c, 1)

	load := c.Method(jaxbContext, loadJaxbContextFun, cm.Private, cm.Static)
	clazz := load.Param(javaClass, "clazz")
	try := load.Body.Try()
	try.Body.Return(cm.Call(cm.Type(jaxbContext), "newInstance", clazz))
	try.Catch(jaxbException, "e").Throw(cm.New(javaRuntimeExc, cm.Name("e")))
	c.Field(jaxbContext, fieldJaxbContext, cm.Private, cm.Static).Init = cm.Invoke(loadJaxbContextFun, cm.ClassLit(target))

	addConstructor(c, []string{javaString}, target)

	transform := c.Method(javaObject, "doTransform", cm.Protected).Throw(transformerExc)
	src := transform.Param(javaObject, "src")
	encoding := transform.Param(javaString, "encoding")
	body := transform.Body

	result := body.Decl(target, "result", cm.Null)
	unmarshal := body.Try()
	unmarshaller := unmarshal.Body.Decl(jaxbUnmarshaller, "unmarshaller", cm.Call(cm.Name(fieldJaxbContext), "createUnmarshaller"))
	is := unmarshal.Body.Decl(inputStream, "is", cm.New(byteArrayInput, cm.Call(cm.Cast(javaString, src), "getBytes", encoding)))
	ss := unmarshal.Body.Decl(streamSource, "ss", cm.New(streamSource, is))
	unmarshal.Body.Assign(result, cm.Call(cm.Call(unmarshaller, "unmarshal", ss, cm.ClassLit(target)), "getValue"))
	for _, exc := range []string{unsupportedEnc, jaxbException, classCast} {
		unmarshal.Catch(exc, "e").Throw(cm.New(transformerExc, transformFailed(target), cm.This, cm.Name("e")))
	}
	body.Return(result)
	return nil
}
