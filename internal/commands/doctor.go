package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/gaborage/go-devkit/config"
	"github.com/gaborage/go-devkit/logger"
)

// minGoVersion is the oldest toolchain the generator is built and tested with.
const minGoVersion = "v1.24.0"

var errHealthCheck = errors.New("health check failed")

// DoctorOptions holds options for the doctor command
type DoctorOptions struct {
	ConfigFile  string
	Descriptors []string
	Verbose     bool
}

// NewDoctorCommand creates the doctor command
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor [descriptor.yaml]...",
		Short: "Check environment, configuration and descriptors",
		Long: `Performs health checks to ensure the generator can run successfully.

Checks include:
- Go version compatibility
- configuration loading and validation
- application and schema versions
- module descriptor parsing`,
		Example: `  # Check configuration only
  devkit-gen doctor

  # Check descriptors and print the effective configuration
  devkit-gen doctor -v modules.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Descriptors = args
			return runDoctor(cmd.OutOrStdout(), opts, runtime.Version())
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file (default devkit.yaml when present)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print the effective configuration")

	return cmd
}

func runDoctor(out io.Writer, opts *DoctorOptions, goVersion string) error {
	fmt.Fprintln(out, "🏥 Running devkit-gen health check...")
	fmt.Fprintln(out)

	var hasErrors bool
	fail := func(format string, args ...any) {
		fmt.Fprintf(out, "❌ "+format+"\n", args...)
		hasErrors = true
	}

	fmt.Fprintf(out, "📋 Go Version: %s\n", goVersion)
	if !isGoVersionSupported(goVersion) {
		fail("Go version %s+ required", strings.TrimPrefix(minGoVersion, "v"))
	} else {
		fmt.Fprintln(out, "✅ Go version compatible")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		fail("Configuration: %v", err)
	} else {
		fmt.Fprintln(out, "✅ Configuration valid")
		checkConfig(out, cfg, fail)
		if opts.Verbose {
			dumpConfig(out, cfg)
		}
	}

	if len(opts.Descriptors) > 0 {
		pkg := ""
		if cfg != nil {
			pkg = cfg.Generator.Package
		}
		modules, err := loadModules(opts.Descriptors, pkg)
		if err != nil {
			fail("Descriptors: %v", err)
		} else {
			for _, m := range modules {
				if !semver.IsValid("v" + m.Version()) {
					fail("Module %s: schema version %q is not a semantic version", m.Name, m.Version())
					continue
				}
				fmt.Fprintf(out, "✅ Module %s → %s\n", m.Name, m.CurrentLocation())
			}
		}
	}

	fmt.Fprintln(out)
	if hasErrors {
		fmt.Fprintln(out, "❌ Health check failed - please fix the issues above")
		return errHealthCheck
	}

	fmt.Fprintln(out, "✅ All checks passed - ready to generate!")
	return nil
}

func checkConfig(out io.Writer, cfg *config.Config, fail func(string, ...any)) {
	if !semver.IsValid(cfg.App.Version) {
		fail("App version %q is not a semantic version (expected vMAJOR.MINOR.PATCH)", cfg.App.Version)
	} else {
		fmt.Fprintf(out, "✅ App version %s\n", semver.Canonical(cfg.App.Version))
	}

	obsCfg, err := observabilityConfig(cfg)
	if err != nil {
		fail("%v", err)
		return
	}
	if !obsCfg.Enabled {
		fmt.Fprintln(out, "ℹ️  Observability disabled")
		return
	}
	obsCfg.ApplyDefaults()
	if err := obsCfg.Validate(); err != nil {
		fail("Observability: %v", err)
		return
	}
	fmt.Fprintf(out, "✅ Observability exporting to %s (%s)\n", obsCfg.Trace.Endpoint, obsCfg.Trace.Protocol)
}

// dumpConfig prints every effective key with sensitive values masked.
func dumpConfig(out io.Writer, cfg *config.Config) {
	filter := logger.NewSensitiveDataFilter(nil)
	keys := cfg.Keys()
	sort.Strings(keys)

	fmt.Fprintln(out, "🔧 Effective configuration:")
	for _, k := range keys {
		fmt.Fprintf(out, "   %s = %s\n", k, filter.FilterString(k, cfg.GetString(k)))
	}
}

func isGoVersionSupported(version string) bool {
	if !strings.HasPrefix(version, "go") {
		return false
	}

	// go1.24.6 becomes v1.24.6; release candidates such as go1.25rc1 are
	// compared by their major and minor version.
	v := "v" + strings.TrimPrefix(version, "go")
	if i := strings.IndexAny(v, "rcbeta"); i > 0 && !semver.IsValid(v) {
		v = v[:i]
	}
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, minGoVersion) >= 0
}
