package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUncamel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single word", "send", "send"},
		{"two words", "retryMax", "retry-max"},
		{"three words", "connectionPoolingProfile", "connection-pooling-profile"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Uncamel(tt.input))
		})
	}
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "name", Singular("names"))
	assert.Equal(t, "address", Singular("addresses"))
	assert.Equal(t, "category", Singular("categories"))
	assert.Equal(t, "mail-header", Singular("mail-headers"))
	assert.Equal(t, "", Singular(""))
}

func TestItemName(t *testing.T) {
	assert.Equal(t, "name", ItemName("names"))
	assert.Equal(t, "mail-header", ItemName("mailHeaders"))
}

func TestReferenceNames(t *testing.T) {
	assert.Equal(t, "session-ref", Ref("session"))
	assert.Equal(t, "on-complete-flow-ref", FlowRef("onComplete"))
	assert.Equal(t, "inner-name", Inner("name"))
}

func TestClassNames(t *testing.T) {
	assert.Equal(t, "Send", Capitalize("send"))
	assert.Equal(t, "SendType", ComplexTypeName("send"))
	assert.Equal(t, "SendMessageType", ComplexTypeName("sendMessage"))
	assert.Equal(t, "SendMessageType", ComplexTypeName("send-message"))
	assert.Equal(t, "SendMessageType", ComplexTypeName("send_message"))
	assert.Equal(t, "ColorEnumType", EnumTypeName("Color"))
	assert.Equal(t, "Foo", ClassName("com.acme.Foo"))
	assert.Equal(t, "com.acme", PackageName("com.acme.Foo"))
	assert.Equal(t, "", PackageName("Foo"))
	assert.Equal(t, "com.acme.config.Foo", Qualify("com.acme.config", "Foo"))
	assert.Equal(t, "Foo", Qualify("", "Foo"))
	assert.Equal(t, "Max retries", FriendlyName("maxRetries"))
}
