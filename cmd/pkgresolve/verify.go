package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkgforge/pkgresolve/internal/pkgresolve"
	"github.com/pkgforge/pkgresolve/internal/telemetry"
)

func createVerifyCommand() *cobra.Command {
	var depTokens []string

	cmd := &cobra.Command{
		Use:   "verify <name-version>",
		Short: "Check a binary package's dependency-closure hash",
		Long: `verify recomputes the expected "_HEX" dependency-closure hash for a
binary candidate from an already-resolved set of dependency tokens (given
with --dep, repeatable) and reports whether it matches the candidate's
own hash suffix, without performing a full resolve.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args[0], depTokens)
		},
	}

	cmd.Flags().StringArrayVar(&depTokens, "dep", nil, "resolved dependency as a name-version token (repeatable)")
	return cmd
}

func runVerify(token string, depTokens []string) error {
	log := telemetry.With("trace", telemetry.NewTraceID())

	candidate, err := parseToken(token)
	if err != nil {
		return err
	}
	if !candidate.IsBinary() {
		return fmt.Errorf("%s is not a binary candidate (no _HEX suffix)", token)
	}

	deps := make([]pkgresolve.Package, 0, len(depTokens))
	for _, dt := range depTokens {
		dep, err := parseToken(dt)
		if err != nil {
			return err
		}
		deps = append(deps, dep)
	}

	if pkgresolve.DefaultBinaryVerifier(candidate, deps) {
		log.Infof("%s: dependency-closure hash OK", token)
		fmt.Printf("%s: OK\n", token)
		return nil
	}

	log.Warnf("%s: dependency-closure hash mismatch", token)
	fmt.Printf("%s: MISMATCH\n", token)
	return fmt.Errorf("dependency-closure hash mismatch for %s", token)
}

// parseToken splits a "name-version" token back into a Package. Versions
// always carry their own "-revision" suffix, so the split is the leftmost
// dash whose remainder starts with a digit (after an optional "v") and
// parses as a Version, not the rightmost. A name segment that itself
// starts with a digit after a dash (e.g. "lib-2to3") is split there.
func parseToken(token string) (pkgresolve.Package, error) {
	for i := 0; i < len(token); i++ {
		if token[i] != '-' {
			continue
		}
		name, versionStr := token[:i], token[i+1:]
		if name == "" {
			continue
		}
		digitAt := 0
		if versionStr != "" && (versionStr[0] == 'v' || versionStr[0] == 'V') {
			digitAt = 1
		}
		if len(versionStr) <= digitAt || versionStr[digitAt] < '0' || versionStr[digitAt] > '9' {
			continue
		}
		v, err := pkgresolve.ParseVersion(versionStr)
		if err != nil {
			continue
		}
		return pkgresolve.Package{Name: name, Version: v}, nil
	}
	return pkgresolve.Package{}, fmt.Errorf("invalid name-version token %q", token)
}
