package projection

import (
	"github.com/gaborage/go-devkit/classify"
	"github.com/gaborage/go-devkit/model"
	"github.com/gaborage/go-devkit/naming"
)

// JaxbTransformerElementSuffix names the element registering the JAXB
// transformer of an XML-bindable type.
const JaxbTransformerElementSuffix = "-jaxb-transformer"

// XMLBindables lists the distinct XML-bindable types taken by processor
// parameters, in order of first use. Each gets one JAXB transformer.
func XMLBindables(m *model.ModuleModel) []*model.TypeDescriptor {
	seen := make(map[string]bool)
	var out []*model.TypeDescriptor
	for _, op := range m.Processors() {
		for _, p := range op.Parameters {
			if !classify.IsXMLBindable(p.Type) || seen[p.Type.QualifiedName] {
				continue
			}
			seen[p.Type.QualifiedName] = true
			out = append(out, p.Type)
		}
	}
	return out
}

// JaxbTransformerElement is the element name of the JAXB transformer of t,
// e.g. "purchase-order-jaxb-transformer" for org.acme.PurchaseOrder.
func JaxbTransformerElement(t *model.TypeDescriptor) string {
	return naming.Uncamel(t.SimpleName()) + JaxbTransformerElementSuffix
}
