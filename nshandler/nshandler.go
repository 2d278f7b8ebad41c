// Package nshandler synthesizes the namespace handler that binds each XML
// element of a module to its bean-definition parser.
package nshandler

import (
	"errors"

	"github.com/gaborage/go-devkit/codegen"
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
	"github.com/gaborage/go-devkit/parsergen"
	"github.com/gaborage/go-devkit/projection"
	"github.com/gaborage/go-devkit/schema"
)

const (
	handlerSupport    = "org.springframework.beans.factory.xml.NamespaceHandlerSupport"
	transformerParser = "org.mule.config.spring.parsers.specific.MessageProcessorDefinitionParser"
	registerParser    = "registerBeanDefinitionParser"
)

// Registration is one element name bound to the parser that handles it.
type Registration struct {
	Element string
	Parser  cm.Expr
}

// Registrations lists the init() bindings of m in registration order:
// config, authorize for OAuth modules, operations in declaration order, then
// the JAXB transformer of each XML-bindable type.
func Registrations(m *model.ModuleModel) []Registration {
	regs := []Registration{{Element: schema.ConfigElement, Parser: cm.New(parsergen.ConfigParserClassName(m))}}
	if m.OAuth {
		regs = append(regs, Registration{Element: schema.AuthorizeElement, Parser: cm.New(parsergen.AuthorizeParserClassName(m))})
	}
	for _, op := range m.Operations {
		var parser cm.Expr
		switch op.Kind {
		case model.OperationProcessor, model.OperationSource:
			parser = cm.New(parsergen.OperationParserClassName(m, op))
		case model.OperationTransformer:
			parser = cm.New(transformerParser, cm.ClassLit(codegen.TransformerClassName(m, op)))
		default:
			continue
		}
		regs = append(regs, Registration{Element: op.ElementName(), Parser: parser})
	}
	for _, x := range projection.XMLBindables(m) {
		regs = append(regs, Registration{
			Element: projection.JaxbTransformerElement(x),
			Parser:  cm.New(transformerParser, cm.ClassLit(codegen.JaxbTransformerClassName(m, x))),
		})
	}
	return regs
}

// Synthesize emits the namespace handler class of m into out.
func Synthesize(m *model.ModuleModel, out *cm.Model) error {
	qualified := m.NamespaceHandlerClassName()
	c, err := out.Class(naming.PackageName(qualified), naming.ClassName(qualified))
	if err != nil {
		if errors.Is(err, cm.ErrDuplicateClass) {
			err = errors.Join(model.ErrDuplicateElement, err)
		}
		return model.NewGenerationError(m.Name, qualified, "cannot define namespace handler", err)
	}
	c.Javadoc = "Registers bean definitions parsers for handling elements in <code>" + m.TargetNamespace() + "</code>."
	c.Extends = handlerSupport

	init := c.Method("void", "init", cm.Public)
	for _, r := range Registrations(m) {
		init.Body.Invoke(cm.Invoke(registerParser, cm.Lit(r.Element), r.Parser))
	}
	return nil
}
