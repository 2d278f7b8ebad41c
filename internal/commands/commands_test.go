package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/go-devkit/config"
)

const descriptor = `modules:
  - name: mail
    package: com.acme.mail
    class: MailConnector
    operations:
      - kind: processor
        method: send
        parameters:
          - name: message
            type: {name: java.lang.String, kind: string}
  - name: chat
    package: com.acme.chat
    class: ChatConnector
    schemaVersion: "2.0"
    operations:
      - kind: processor
        method: post
        parameters:
          - name: text
            type: {name: java.lang.String, kind: string}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func workspace(t *testing.T) (dir, cfgFile, desc string) {
	t.Helper()
	dir = t.TempDir()
	cfgFile = writeFile(t, dir, "devkit.yaml", "log:\n  level: error\ngenerator:\n  output: "+filepath.Join(dir, "out")+"\n")
	desc = writeFile(t, dir, "modules.yaml", descriptor)
	return dir, cfgFile, desc
}

func TestGenerateCommandWritesArtifacts(t *testing.T) {
	dir, cfgFile, desc := workspace(t)

	var out bytes.Buffer
	cmd := NewGenerateCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", cfgFile, desc})
	require.NoError(t, cmd.Execute())

	root := filepath.Join(dir, "out")
	for _, rel := range []string{
		"META-INF/mule-mail.xsd",
		"META-INF/mule-chat.xsd",
		"META-INF/spring.schemas",
		"META-INF/spring.handlers",
		"com/acme/mail/config/SendMessageProcessor.java",
		"com/acme/chat/config/spring/ChatConnectorNamespaceHandler.java",
	} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}

	schemas, err := os.ReadFile(filepath.Join(root, "META-INF", "spring.schemas"))
	require.NoError(t, err)
	assert.Contains(t, string(schemas), `http\://www.mulesoft.org/schema/mule/chat/2.0/mule-chat.xsd=META-INF/mule-chat.xsd`)

	assert.Contains(t, out.String(), "✓ mail: http://www.mulesoft.org/schema/mule/mail")
	assert.Contains(t, out.String(), "Generated 2 module(s) into "+root)
}

func TestGenerateCommandOverrides(t *testing.T) {
	dir, cfgFile, desc := workspace(t)
	override := filepath.Join(dir, "override")

	cmd := NewGenerateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", cfgFile, "-o", override, "--package", "org.example", "--schemas-only", "-j", "1", desc})
	require.NoError(t, cmd.Execute())

	handlers, err := os.ReadFile(filepath.Join(override, "META-INF", "spring.handlers"))
	require.NoError(t, err)
	assert.Contains(t, string(handlers), "=org.example.config.spring.MailConnectorNamespaceHandler")

	_, err = os.Stat(filepath.Join(override, "org"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCommandRequiresDescriptor(t *testing.T) {
	cmd := NewGenerateCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestRunGenerateReportsBadDescriptor(t *testing.T) {
	dir, cfgFile, _ := workspace(t)
	bad := writeFile(t, dir, "bad.yaml", "modules:\n  - name: Bad\n    package: x\n    class: X\n")

	err := runGenerate(context.Background(), &bytes.Buffer{}, &GenerateOptions{ConfigFile: cfgFile, Descriptors: []string{bad}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestRunGenerateMissingConfig(t *testing.T) {
	err := runGenerate(context.Background(), &bytes.Buffer{}, &GenerateOptions{
		ConfigFile:  filepath.Join(t.TempDir(), "absent.yaml"),
		Descriptors: []string{"modules.yaml"},
	})
	assert.Error(t, err)
}

func TestLoadModules(t *testing.T) {
	_, _, desc := workspace(t)

	_, err := loadModules(nil, "")
	assert.ErrorIs(t, err, errNoDescriptors)

	modules, err := loadModules([]string{desc}, "org.override")
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "mail", modules[0].Name)
	assert.Equal(t, "org.override", modules[0].Package)
	assert.Equal(t, "org.override", modules[1].Package)
}

func TestObservabilityConfigFallsBackToApp(t *testing.T) {
	cfg, err := config.LoadBytes([]byte("app:\n  name: gen\n  version: v1.2.3\n  env: staging\n"))
	require.NoError(t, err)

	obsCfg, err := observabilityConfig(cfg)
	require.NoError(t, err)
	assert.False(t, obsCfg.Enabled)
	assert.Equal(t, "gen", obsCfg.Service.Name)
	assert.Equal(t, "v1.2.3", obsCfg.Service.Version)
	assert.Equal(t, "staging", obsCfg.Environment)
}

func TestDoctorPasses(t *testing.T) {
	_, cfgFile, desc := workspace(t)

	var out bytes.Buffer
	err := runDoctor(&out, &DoctorOptions{ConfigFile: cfgFile, Descriptors: []string{desc}}, "go1.24.6")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✅ Go version compatible")
	assert.Contains(t, out.String(), "✅ Configuration valid")
	assert.Contains(t, out.String(), "✅ Module chat → http://www.mulesoft.org/schema/mule/chat/current/mule-chat.xsd")
	assert.Contains(t, out.String(), "ℹ️  Observability disabled")
	assert.NotContains(t, out.String(), "Effective configuration")
}

func TestDoctorFails(t *testing.T) {
	dir, _, desc := workspace(t)
	badCfg := writeFile(t, dir, "bad.yaml", "app:\n  version: one\n")

	var out bytes.Buffer
	err := runDoctor(&out, &DoctorOptions{ConfigFile: badCfg, Descriptors: []string{desc}}, "go1.20.1")
	assert.ErrorIs(t, err, errHealthCheck)
	assert.Contains(t, out.String(), "❌ Go version 1.24.0+ required")
	assert.Contains(t, out.String(), `❌ App version "one" is not a semantic version`)
	assert.Contains(t, out.String(), "Health check failed")
}

func TestDoctorVerboseMasksHeaders(t *testing.T) {
	dir, _, _ := workspace(t)
	cfgFile := writeFile(t, dir, "obs.yaml", `observability:
  enabled: true
  trace:
    endpoint: https://otlp.example.com
    headers:
      x-api-key: s3cr3t
`)

	var out bytes.Buffer
	require.NoError(t, runDoctor(&out, &DoctorOptions{ConfigFile: cfgFile, Verbose: true}, runtime.Version()))
	assert.Contains(t, out.String(), "✅ Observability exporting to https://otlp.example.com (http)")
	assert.Contains(t, out.String(), "observability.trace.headers.x-api-key = ***")
	assert.Contains(t, out.String(), "log.level = info")
	assert.NotContains(t, out.String(), "s3cr3t")
}

func TestIsGoVersionSupported(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{version: "go1.24.6", want: true},
		{version: "go1.25.0", want: true},
		{version: "go1.26rc1", want: true},
		{version: "go1.23.4", want: false},
		{version: "devel +abc", want: false},
		{version: "1.24.0", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, isGoVersionSupported(tt.version))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCommand("v1.2.3")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "devkit-gen version v1.2.3", lines[0])
	assert.Equal(t, "Built with "+runtime.Version()+" "+runtime.GOOS+"/"+runtime.GOARCH, lines[1])
	assert.Equal(t, "Default schema version: 1.0", lines[2])
}

func TestServeRequiresDescriptors(t *testing.T) {
	_, cfgFile, _ := workspace(t)
	err := runServe(context.Background(), &ServeOptions{ConfigFile: cfgFile})
	assert.ErrorIs(t, err, errNoDescriptors)
}
