// Package parsergen synthesizes the Spring bean-definition parsers of a
// module: one for the <config> element, one per processor and source, and
// the authorize parser of OAuth modules. Every parse rule is derived from the
// same projection.Shape the schema synthesizer used, so the parsers read
// exactly the attributes and elements the schema allows.
package parsergen

import (
	"errors"

	"github.com/gaborage/go-devkit/codegen"
	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
	"github.com/gaborage/go-devkit/projection"
	"github.com/gaborage/go-devkit/schema"
)

// Class name suffixes of generated parsers.
const (
	ConfigParserSuffix  = "ConfigDefinitionParser"
	ParserSuffix        = "DefinitionParser"
	AuthorizeParserName = "AuthorizeDefinitionParser"
)

const (
	propertyModuleObject    = "moduleObject"
	propertyConnector       = "connector"
	propertySaveAccessToken = "oauthSaveAccessToken"
	propertyRestoreToken    = "oauthRestoreAccessToken"
	uniqueNamePrefix        = "mule-bean"
)

// ConfigParserClassName is the qualified parser class of the <config> element.
func ConfigParserClassName(m *model.ModuleModel) string {
	return naming.Qualify(m.SpringPackage(), m.ClassName+ConfigParserSuffix)
}

// OperationParserClassName is the qualified parser class of a processor or source.
func OperationParserClassName(m *model.ModuleModel, op *model.OperationModel) string {
	return naming.Qualify(m.SpringPackage(), naming.Capitalize(op.MethodName)+ParserSuffix)
}

// AuthorizeParserClassName is the qualified parser class of the authorize element.
func AuthorizeParserClassName(m *model.ModuleModel) string {
	return naming.Qualify(m.SpringPackage(), AuthorizeParserName)
}

// Synthesize emits every parser class of m into out.
func Synthesize(m *model.ModuleModel, out *cm.Model) error {
	if err := synthesizeConfig(m, out); err != nil {
		return err
	}
	if m.OAuth {
		if err := synthesizeAuthorize(m, out); err != nil {
			return err
		}
	}
	for _, op := range m.Operations {
		var err error
		switch op.Kind {
		case model.OperationProcessor:
			err = synthesizeOperation(m, op, codegen.ProcessorClassName(m, op), out)
		case model.OperationSource:
			err = synthesizeOperation(m, op, codegen.SourceClassName(m, op), out)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func defineClass(m *model.ModuleModel, element, qualified string, out *cm.Model) (*cm.Class, error) {
	c, err := out.Class(naming.PackageName(qualified), naming.ClassName(qualified))
	if err != nil {
		if errors.Is(err, cm.ErrDuplicateClass) {
			err = errors.Join(model.ErrDuplicateElement, err)
		}
		return nil, model.NewGenerationError(m.Name, element, "cannot define parser", err)
	}
	return c, nil
}

func synthesizeConfig(m *model.ModuleModel, out *cm.Model) error {
	fields, err := projection.ProjectFields(m.Fields)
	if err != nil {
		return model.NewGenerationError(m.Name, schema.ConfigElement, "cannot project configurable fields", err)
	}
	connect, err := connectShapes(m)
	if err != nil {
		return err
	}

	c, err := defineClass(m, schema.ConfigElement, ConfigParserClassName(m), out)
	if err != nil {
		return err
	}
	c.Javadoc = "Parses the <config> element of the " + m.Name + " module into a " + m.ClassName + " bean definition."
	p := newParser(m, c, false)

	name := p.body.Decl(javaString, "name", attribute(p.element, schema.AttrName))
	p.body.If(cm.Op(cm.Eq(name, cm.Null), "||", isBlank(name))).Then.
		Invoke(cm.Call(p.element, "setAttribute", cm.Lit(schema.AttrName),
			cm.Call(cm.Type(autoIdUtils), "getUniqueName", p.element, cm.Lit(uniqueNamePrefix))))

	p.builder = p.body.Decl(beanBuilder, "builder",
		cm.Call(cm.Type(beanBuilder), "rootBeanDefinition", cm.Call(cm.ClassLit(m.PojoClassName()), "getName")))
	if m.Initialisable {
		p.body.Invoke(cm.Call(p.builder, "setInitMethodName", cm.Dot(cm.Type(initialisable), "PHASE_NAME")))
	}
	if m.Disposable {
		p.body.Invoke(cm.Call(p.builder, "setDestroyMethodName", cm.Dot(cm.Type(disposable), "PHASE_NAME")))
	}

	for _, s := range fields {
		p.shape(p.body, s)
	}
	for _, s := range connect {
		p.shape(p.body, s)
	}

	if m.OAuth {
		p.callbackConfig(schema.OAuthCallbackConfig, "oauthCallbackConfigElement")
		p.nested(p.body, nestedRule{property: propertySaveAccessToken, element: schema.OAuthSaveAccessToken})
		p.nested(p.body, nestedRule{property: propertyRestoreToken, element: schema.OAuthRestoreAccessToken})
	}
	if m.UsesHTTPCallback() {
		p.callbackConfig(schema.HTTPCallbackConfig, "httpCallbackConfigElement")
	}
	if m.Connectable() {
		p.pooling(schema.ConnectionPoolingProfile, "connectionPoolingProfile")
	}
	if m.Poolable {
		p.pooling(schema.PoolingProfile, "poolingProfile")
	}

	p.body.Return(p.definition())
	p.finish()
	return nil
}

func synthesizeOperation(m *model.ModuleModel, op *model.OperationModel, target string, out *cm.Model) error {
	params, err := projection.ProjectAll(op.Parameters, projection.ContextOperation)
	if err != nil {
		return model.NewGenerationError(m.Name, op.MethodName, "cannot project parameters", err)
	}
	connect, err := connectShapes(m)
	if err != nil {
		return err
	}

	c, err := defineClass(m, op.ElementName(), OperationParserClassName(m, op), out)
	if err != nil {
		return err
	}
	p := newParser(m, c, true)
	p.builder = p.body.Decl(beanBuilder, "builder",
		cm.Call(cm.Type(beanBuilder), "rootBeanDefinition", cm.Call(cm.ClassLit(target), "getName")))
	p.configRef()

	for _, s := range params {
		p.shape(p.body, s)
	}
	if m.Connectable() {
		if op.Kind == model.OperationProcessor {
			readAttribute(p.body, p.element, p.builder, schema.AttrRetryMax, schema.AttrRetryMax)
		}
		for _, s := range connect {
			p.shape(p.body, s)
		}
	}

	definition := p.definition()
	if op.Kind == model.OperationSource {
		p.attachSource(definition)
	} else {
		p.attachProcessor(definition)
	}
	p.body.Return(definition)
	p.finish()
	return nil
}

// synthesizeAuthorize emits the parser of the OAuth authorize element. The
// authorize processor is provided by the runtime.
func synthesizeAuthorize(m *model.ModuleModel, out *cm.Model) error {
	c, err := defineClass(m, schema.AuthorizeElement, AuthorizeParserClassName(m), out)
	if err != nil {
		return err
	}
	p := newParser(m, c, true)
	p.builder = p.body.Decl(beanBuilder, "builder",
		cm.Call(cm.Type(beanBuilder), "rootBeanDefinition", cm.Call(cm.ClassLit(authorizeMP), "getName")))
	p.configRef()
	for _, a := range schema.AuthorizeAttributes {
		readAttribute(p.body, p.element, p.builder, a, a)
	}
	definition := p.definition()
	p.attachProcessor(definition)
	p.body.Return(definition)
	p.finish()
	return nil
}

func connectShapes(m *model.ModuleModel) ([]*projection.Shape, error) {
	if !m.Connectable() {
		return nil, nil
	}
	shapes, err := projection.ProjectAll(m.ConnectParameters(), projection.ContextConnect)
	if err != nil {
		return nil, model.NewGenerationError(m.Name, m.Connect.MethodName, "cannot project connect parameters", err)
	}
	return shapes, nil
}
