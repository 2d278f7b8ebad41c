package nshandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cm "github.com/gaborage/go-devkit/codemodel"
	"github.com/gaborage/go-devkit/model"
)

func acme(oauth bool) *model.ModuleModel {
	return &model.ModuleModel{
		Name:      "acme",
		Package:   "org.acme",
		ClassName: "AcmeModule",
		OAuth:     oauth,
		Operations: []*model.OperationModel{
			{Kind: model.OperationProcessor, MethodName: "sendMessage"},
			{Kind: model.OperationSource, MethodName: "subscribe"},
			{
				Kind: model.OperationTransformer, MethodName: "toUpper",
				Parameters: []*model.ParameterModel{{Name: "text", Type: model.StringType()}},
				ReturnType: model.StringType(),
			},
		},
	}
}

func TestRegistrations(t *testing.T) {
	regs := Registrations(acme(false))
	require.Len(t, regs, 4)

	elements := make([]string, len(regs))
	for i, r := range regs {
		elements[i] = r.Element
	}
	assert.Equal(t, []string{"config", "send-message", "subscribe", "to-upper"}, elements)
	assert.Equal(t, "new org.acme.config.spring.AcmeModuleConfigDefinitionParser()", regs[0].Parser.Java())
	assert.Equal(t, "new org.acme.config.spring.SendMessageDefinitionParser()", regs[1].Parser.Java())
	assert.Equal(t, "new org.acme.config.spring.SubscribeDefinitionParser()", regs[2].Parser.Java())
	assert.Equal(t,
		"new org.mule.config.spring.parsers.specific.MessageProcessorDefinitionParser(org.acme.config.ToUpperTransformer.class)",
		regs[3].Parser.Java())
}

func TestJaxbTransformersAreRegisteredLast(t *testing.T) {
	m := acme(false)
	order := model.XMLBindable("org.acme.PurchaseOrder")
	m.Operations[0].Parameters = []*model.ParameterModel{{Name: "order", Type: order}}
	m.Operations = append(m.Operations, &model.OperationModel{
		Kind: model.OperationProcessor, MethodName: "amend",
		Parameters: []*model.ParameterModel{{Name: "order", Type: order}},
	})

	regs := Registrations(m)
	require.Len(t, regs, 6)
	last := regs[len(regs)-1]
	assert.Equal(t, "purchase-order-jaxb-transformer", last.Element)
	assert.Equal(t,
		"new org.mule.config.spring.parsers.specific.MessageProcessorDefinitionParser(org.acme.config.PurchaseOrderJaxbTransformer.class)",
		last.Parser.Java())
}

func TestOAuthModuleRegistersAuthorize(t *testing.T) {
	regs := Registrations(acme(true))
	require.Len(t, regs, 5)
	assert.Equal(t, "authorize", regs[1].Element)
	assert.Equal(t, "new org.acme.config.spring.AuthorizeDefinitionParser()", regs[1].Parser.Java())
}

func TestSynthesize(t *testing.T) {
	out := cm.NewModel()
	require.NoError(t, Synthesize(acme(false), out))

	c, ok := out.Lookup("org.acme.config.spring.AcmeModuleNamespaceHandler")
	require.True(t, ok)
	assert.Equal(t, "org.springframework.beans.factory.xml.NamespaceHandlerSupport", c.Extends)
	require.NotNil(t, c.FindMethod("init"))

	src := string(cm.Render(c))
	assert.Contains(t, src, "http://www.mulesoft.org/schema/mule/acme")
	assert.Contains(t, src, "public void init() {")
	assert.Contains(t, src, `registerBeanDefinitionParser("config", new org.acme.config.spring.AcmeModuleConfigDefinitionParser());`)
	assert.Contains(t, src, `registerBeanDefinitionParser("send-message", new org.acme.config.spring.SendMessageDefinitionParser());`)
	assert.Contains(t, src, `registerBeanDefinitionParser("to-upper", new org.mule.config.spring.parsers.specific.MessageProcessorDefinitionParser(org.acme.config.ToUpperTransformer.class));`)
	assert.NotContains(t, src, `"authorize"`)
}

func TestSynthesizeTwiceIsDuplicate(t *testing.T) {
	out := cm.NewModel()
	require.NoError(t, Synthesize(acme(false), out))

	err := Synthesize(acme(false), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrDuplicateElement)
	var genErr *model.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "acme", genErr.Module)
}
