package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/appbuilder-labs/aio-app/internal/appconfig"
	"github.com/appbuilder-labs/aio-app/internal/config"
	"github.com/appbuilder-labs/aio-app/internal/manifest"
	"github.com/appbuilder-labs/aio-app/internal/toolchain"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	checkRuntime  bool
	checkProject  bool
	checkManifest string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkRuntime, "check-runtime", false, "Verify node and npm versions")
	doctorCmd.Flags().BoolVar(&checkProject, "check-project", false, "Verify package.json and resolve every extension")
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a runtime manifest file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project and local toolchain",
	Long: `Run diagnostic checks: node and npm availability, package.json, configuration
resolution, and schema validation of every extension's runtime manifest.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := &checkReport{w: cmd.OutOrStdout()}
		all := !checkRuntime && !checkProject && checkManifest == ""

		if all || checkRuntime {
			runRuntimeCheck(cmd.Context(), r, &toolchain.Detector{})
		}
		if all || checkProject {
			runProjectCheck(r, projectDir)
		}
		if checkManifest != "" {
			runManifestCheck(r, checkManifest)
		}

		if r.failures > 0 {
			return fmt.Errorf("%d check(s) failed", r.failures)
		}
		return nil
	},
}

type checkReport struct {
	w        io.Writer
	failures int
}

var (
	okMark   = color.GreenString("[ OK ]")
	warnMark = color.YellowString("[WARN]")
	failMark = color.RedString("[FAIL]")
	infoMark = color.CyanString("[INFO]")
)

func (r *checkReport) section(title string) { fmt.Fprintf(r.w, "%s:\n", title) }

func (r *checkReport) ok(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "  %s %s\n", okMark, fmt.Sprintf(format, args...))
}

func (r *checkReport) warn(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "  %s %s\n", warnMark, fmt.Sprintf(format, args...))
}

func (r *checkReport) info(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "  %s %s\n", infoMark, fmt.Sprintf(format, args...))
}

func (r *checkReport) fail(format string, args ...interface{}) {
	r.failures++
	fmt.Fprintf(r.w, "  %s %s\n", failMark, fmt.Sprintf(format, args...))
}

func runRuntimeCheck(ctx context.Context, r *checkReport, d *toolchain.Detector) {
	r.section("Runtime check")
	constraints := map[string]string{
		"node": toolchain.NodeConstraint,
		"npm":  toolchain.NpmConstraint,
	}
	for _, det := range d.DetectAll(ctx, "node", "npm") {
		if det.Err != nil {
			r.warn("%v", det.Err)
			continue
		}
		tool := det.Tool
		ok, err := tool.Satisfies(constraints[det.Name])
		switch {
		case err != nil:
			r.warn("%s %s: %v", tool.Name, tool.Version, err)
		case !ok:
			r.warn("%s %s at %s does not satisfy %s", tool.Name, tool.Version, tool.Path, constraints[det.Name])
		default:
			r.ok("%s %s found at %s", tool.Name, tool.Version, tool.Path)
		}
	}
}

func runProjectCheck(r *checkReport, dir string) {
	r.section("Project check")

	fs := afero.NewOsFs()
	pkg, err := appconfig.LoadPackageJSON(fs, filepath.Join(dir, appconfig.PackageJSONFile))
	if err != nil {
		r.fail("%v", err)
		return
	}
	version, _ := pkg["version"].(string)
	if _, err := semver.StrictNewVersion(version); err != nil {
		r.warn("package.json version %q is not valid semver", version)
	} else {
		r.ok("package.json version %s", version)
	}

	if ok, _ := afero.Exists(fs, filepath.Join(dir, appconfig.AppConfigFile)); !ok {
		r.info("no %s, using defaults and legacy .aio settings", appconfig.AppConfigFile)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Resolving project configuration..."
	if !verbose {
		s.Start()
	}
	store, err := config.Load(dir)
	var cfg *appconfig.Config
	if err == nil {
		cfg, err = appconfig.Load(dir, store.All(), appconfig.WithLogger(logger))
	}
	s.Stop()
	if err != nil {
		var extErr *appconfig.ExtensionConfigError
		if errors.As(err, &extErr) {
			r.fail("extension %s: %v", extErr.Extension, extErr.Err)
		} else {
			r.fail("resolving configuration: %v", err)
		}
		return
	}
	r.ok("configuration resolved (%d extension point(s))", len(cfg.ExtensionPointsConfig))

	for _, name := range cfg.ExtensionNames() {
		checkExtensionManifest(r, name, cfg.ExtensionPointsConfig[name])
	}
}

func checkExtensionManifest(r *checkReport, name string, ext *appconfig.ExtensionConfig) {
	if !ext.App.HasBackend {
		r.info("%s: no runtime manifest, frontend only", name)
		return
	}

	source := ext.Manifest.Src
	if ext.Manifest.Embedded {
		source = "embedded runtimeManifest"
	}
	result, err := manifest.ValidateValue(ext.Manifest.Full)
	if err != nil {
		r.fail("%s: could not validate %s: %v", name, source, err)
		return
	}
	if result.Valid {
		r.ok("%s: %s is valid (%d action(s))", name, source, ext.Manifest.Full.ActionCount())
		return
	}
	r.fail("%s: %s has %d validation issue(s)", name, source, len(result.Issues))
	printIssues(r.w, result)
}

func runManifestCheck(r *checkReport, path string) {
	r.section("Manifest validation: " + path)
	result, err := manifest.ValidateFile(path)
	if err != nil {
		r.fail("%v", err)
		return
	}
	if result.Valid {
		r.ok("schema validation passed")
		return
	}
	r.fail("%d validation issue(s)", len(result.Issues))
	printIssues(r.w, result)
}

// printIssues lists issues under their package, top-level issues first.
func printIssues(w io.Writer, result *manifest.ValidationResult) {
	groups := result.ByPackage()
	for _, pkg := range slices.Sorted(maps.Keys(groups)) {
		indent := "    "
		if pkg != "" {
			fmt.Fprintf(w, "    package %s:\n", pkg)
			indent = "      "
		}
		for _, issue := range groups[pkg] {
			issue.Package = ""
			fmt.Fprintf(w, "%s- %s\n", indent, issue)
		}
	}
}
