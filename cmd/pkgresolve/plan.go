package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgforge/pkgresolve/cmd/pkgresolve/planview"
	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
	"github.com/pkgforge/pkgresolve/internal/rconfig"
	"github.com/pkgforge/pkgresolve/internal/telemetry"
)

func createPlanCommand() *cobra.Command {
	var manifestPaths []string
	var installedPath string
	var platformTags []string

	cmd := &cobra.Command{
		Use:   "plan <request>",
		Short: "Resolve a package request and browse the plan as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(args[0], manifestPaths, installedPath, platformTags)
		},
	}

	cmd.Flags().StringArrayVar(&manifestPaths, "manifest", nil, "manifest file path (repeatable; first = highest priority)")
	cmd.Flags().StringVar(&installedPath, "installed", "", "installed-set YAML file (name: version map)")
	cmd.Flags().StringArrayVar(&platformTags, "platform-tag", nil, "override the default platform tag set (repeatable)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func runPlan(request string, manifestPaths []string, installedPath string, platformTags []string) error {
	log := telemetry.With("trace", telemetry.NewTraceID())

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
		return fmt.Errorf("resolve %q: %w", request, err)
	}

	log.Infof("rendering plan tree for %q (%d packages)", request, len(plan))
	return planview.New().Run(plan)
}
