package parsergen

import (
	"strings"

	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/naming"
	"github.com/gaborage/go-devkit/projection"
)

// containerMethod names the helper parsing one level of a collection or
// map property. Nested levels repeat "Inner" once per depth.
func containerMethod(property string, c *projection.Container, depth int) string {
	kind := "List"
	if c.Map {
		kind = "Map"
	}
	return "parse" + naming.Capitalize(property) + strings.Repeat("Inner", depth) + kind
}

// container emits the helper method for c, and for every nested level
// below it, and returns its name. The helper returns a bean reference or
// expression when the element carries a ref, and a managed list or map
// otherwise.
func (p *parser) container(property string, c *projection.Container, depth int) string {
	name := containerMethod(property, c, depth)
	if p.class.FindMethod(name) != nil {
		return name
	}
	m := p.class.Method(javaObject, name, cm.Private)
	element := m.Param(domElement, "listElement")
	body := m.Body

	ref := body.Decl(javaString, "ref", attribute(element, projection.AttrRef))
	byRef := body.If(notBlank(ref)).Then
	byRef.If(isExpression(ref)).Then.Return(ref)
	byRef.Return(cm.New(runtimeBeanRef, ref))

	if c.Map {
		p.mapBody(body, element, property, c, depth)
	} else {
		p.listBody(body, element, property, c, depth)
	}
	return name
}

func (p *parser) listBody(body *cm.Block, element cm.Expr, property string, c *projection.Container, depth int) {
	list := body.Decl(managedList, "managedList", cm.New(managedList))
	children := body.Decl(elementList, "children", cm.Call(cm.Type(domUtils), "getChildElementsByTagName", element, cm.Lit(c.Item)))

	each := body.ForEach(domElement, "child", children)
	child := cm.Name("child")
	valueRef := each.Decl(javaString, "valueRef", attribute(child, projection.AttrValueRef))
	byRef := each.If(notBlank(valueRef))
	byRef.Then.Invoke(cm.Call(list, "add", cm.New(runtimeBeanRef, valueRef)))
	byRef.Otherwise().Invoke(cm.Call(list, "add", p.entry(c.Element, child, property, depth)))

	body.Return(list)
}

func (p *parser) mapBody(body *cm.Block, element cm.Expr, property string, c *projection.Container, depth int) {
	managed := body.Decl(managedMap, "managedMap", cm.New(managedMap))
	children := body.Decl(elementList, "children", cm.Call(cm.Type(domUtils), "getChildElementsByTagName", element, cm.Lit(c.Item)))
	body.If(cm.Eq(cm.Call(children, "size"), cm.Int(0))).Then.
		Assign(children, cm.Call(cm.Type(domUtils), "getChildElements", element))

	each := body.ForEach(domElement, "child", children)
	child := cm.Name("child")
	valueRef := each.Decl(javaString, "valueRef", attribute(child, projection.AttrValueRef))
	keyRef := each.Decl(javaString, "keyRef", attribute(child, projection.AttrKeyRef))
	value := each.Decl(javaObject, "valueObject", cm.Null)
	key := each.Decl(javaObject, "keyObject", cm.Null)

	v := each.If(notBlank(valueRef))
	v.Then.Assign(value, cm.New(runtimeBeanRef, valueRef))
	v.Otherwise().Assign(value, p.entry(c.Value, child, property, depth))

	k := each.If(notBlank(keyRef))
	k.Then.Assign(key, cm.New(runtimeBeanRef, keyRef))
	k.Otherwise().Assign(key, attribute(child, projection.AttrKey))

	noKey := cm.Op(cm.Eq(key, cm.Null), "||", cm.And(cm.InstanceOf(key, javaString), isBlank(cm.Cast(javaString, key))))
	each.If(noKey).Then.Assign(key, cm.Call(child, "getTagName"))
	each.Invoke(cm.Call(managed, "put", key, value))

	body.Return(managed)
}

// entry is the value of one item: a nested container parsed by its own
// helper, or the text content.
func (p *parser) entry(arg projection.Argument, child cm.Expr, property string, depth int) cm.Expr {
	if arg.Nested() {
		return cm.Invoke(p.container(property, arg.Inner, depth+1), child)
	}
	return cm.Call(child, "getTextContent")
}
