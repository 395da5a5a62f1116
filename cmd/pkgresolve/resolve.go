package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pkgforge/pkgresolve/internal/ingest"
	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
	"github.com/pkgforge/pkgresolve/internal/rconfig"
	"github.com/pkgforge/pkgresolve/internal/telemetry"
)

func createResolveCommand() *cobra.Command {
	var manifestPaths []string
	var installedPath string
	var platformTags []string

	cmd := &cobra.Command{
		Use:   "resolve <request>",
		Short: "Resolve a package request against one or more manifests",
		Long: `resolve loads the manifest files given with --manifest, in priority
order (the first flag occurrence is manifest rank 0, the highest priority), merges any
installed-set file, and prints the resolved install plan as space-separated
"name-version" tokens, or the resolver's diagnostic error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0], manifestPaths, installedPath, platformTags)
		},
	}

	cmd.Flags().StringArrayVar(&manifestPaths, "manifest", nil, "manifest file path (repeatable; first = highest priority)")
	cmd.Flags().StringVar(&installedPath, "installed", "", "installed-set YAML file (name: version map)")
	cmd.Flags().StringArrayVar(&platformTags, "platform-tag", nil, "override the default platform tag set (repeatable)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func runResolve(request string, manifestPaths []string, installedPath string, platformTags []string) error {
	traceID := telemetry.NewTraceID()
	log := telemetry.With("trace", traceID)
	log.Infof("resolving %q across %d manifest(s)", request, len(manifestPaths))

	manifests, err := loadManifests(manifestPaths)
	if err != nil {
		return err
	}

	installed, err := loadInstalledSet(installedPath)
	if err != nil {
		return err
	}

	tags := pkgresolve.DefaultPlatformTags()
	if len(platformTags) > 0 {
		tags = pkgresolve.NewPlatformTags(platformTags...)
	} else if defaults := rconfig.Global().DefaultPlatformTags; len(defaults) > 0 {
		tags = pkgresolve.NewPlatformTags(defaults...)
	}

	plan, err := pkgresolve.Resolve(request, manifests, installed, tags)
	if err != nil {
		log.Errorf("resolve failed: %v", err)
		return fmt.Errorf("resolve %q: %w", request, err)
	}

	fmt.Println(strings.Join(plan.Tokens(), " "))
	return nil
}

func loadManifests(paths []string) ([]*pkgresolve.Manifest, error) {
	manifests := make([]*pkgresolve.Manifest, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading manifest %s: %w", path, err)
		}
		data, err := ingest.Decompress(path, raw)
		if err != nil {
			return nil, fmt.Errorf("decompressing manifest %s: %w", path, err)
		}
		doc, err := ingest.ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
		m, err := ingest.BuildManifest(doc)
		if err != nil {
			return nil, fmt.Errorf("building manifest %s: %w", path, err)
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

func loadInstalledSet(path string) (map[string]pkgresolve.Package, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading installed-set file %s: %w", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing installed-set file %s: %w", path, err)
	}

	installed := make(map[string]pkgresolve.Package, len(raw))
	for name, versionStr := range raw {
		v, err := pkgresolve.ParseVersion(versionStr)
		if err != nil {
			return nil, fmt.Errorf("installed-set %s: version %q: %w", name, versionStr, err)
		}
		installed[name] = pkgresolve.Package{Name: name, Version: v}
	}
	return installed, nil
}
