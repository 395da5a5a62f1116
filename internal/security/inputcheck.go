package security

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Limits bounds the shape of a CLI flag or argument value.
type Limits struct {
	MaxString int
	MaxPath   int
	AllowNL   bool
	AllowTab  bool
}

// DefaultLimits returns sensible limits for a resolver invocation.
func DefaultLimits() Limits {
	return Limits{MaxString: 4096, MaxPath: 4096, AllowNL: false, AllowTab: true}
}

// ValidateString rejects a value that is not valid UTF-8, contains a NUL
// byte, exceeds lim.MaxString runes, or contains a disallowed control rune.
func ValidateString(name, s string, lim Limits) error {
	if s == "" {
		return nil
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: invalid UTF-8", name)
	}
	if strings.ContainsRune(s, '\x00') {
		return fmt.Errorf("%s: contains NUL byte", name)
	}
	if utf8.RuneCountInString(s) > lim.MaxString {
		return fmt.Errorf("%s: too long (%d > %d)", name, utf8.RuneCountInString(s), lim.MaxString)
	}
	for _, r := range s {
		if r == '\n' && lim.AllowNL {
			continue
		}
		if r == '\t' && lim.AllowTab {
			continue
		}
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%s: contains non-printable/control runes", name)
		}
	}
	return nil
}

// ValidatePath is ValidateString with the path-specific length bound.
func ValidatePath(name, s string, lim Limits) error {
	return ValidateString(name, s, Limits{MaxString: lim.MaxPath, AllowNL: lim.AllowNL, AllowTab: lim.AllowTab})
}

// AttachRecursive installs an argument/flag sanitizer on cmd and every
// subcommand beneath it, running before any existing PersistentPreRunE.
func AttachRecursive(root *cobra.Command, lim Limits) {
	attach(root, lim)
	for _, c := range root.Commands() {
		AttachRecursive(c, lim)
	}
}

// attach wraps cmd's existing persistent-pre-run hooks with a validation
// pass. cobra runs at most one of PersistentPreRun/PersistentPreRunE per
// command, walking up to the nearest ancestor that has either set; folding
// both into a single PersistentPreRunE here keeps a parent's
// PersistentPreRun (e.g. the root command's config/logging setup) from
// being shadowed once every command in the tree has its own PersistentPreRunE:
// a command with no hook of its own calls its nearest ancestor's hook.
func attach(cmd *cobra.Command, lim Limits) {
	prevE := cmd.PersistentPreRunE
	prev := cmd.PersistentPreRun
	cmd.PersistentPreRun = nil
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if err := validateFlagsAndArgs(c, args, lim); err != nil {
			return err
		}
		if prevE != nil {
			return prevE(c, args)
		}
		if prev != nil {
			prev(c, args)
			return nil
		}
		for p := cmd.Parent(); p != nil; p = p.Parent() {
			if p.PersistentPreRunE != nil {
				return p.PersistentPreRunE(c, args)
			}
			if p.PersistentPreRun != nil {
				p.PersistentPreRun(c, args)
				return nil
			}
		}
		return nil
	}
}

func validateFlagsAndArgs(cmd *cobra.Command, args []string, lim Limits) error {
	for i, a := range args {
		if err := ValidateString(fmt.Sprintf("arg[%d]", i), a, lim); err != nil {
			return err
		}
	}

	var firstErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if firstErr != nil {
			return
		}
		name := fmt.Sprintf("flag --%s", f.Name)
		isPathy := strings.Contains(strings.ToLower(f.Name), "path") ||
			strings.Contains(strings.ToLower(f.Name), "file") ||
			strings.Contains(strings.ToLower(f.Name), "manifest") ||
			strings.Contains(strings.ToLower(f.Name), "installed") ||
			strings.Contains(strings.ToLower(f.Name), "config")

		validate := ValidateString
		if isPathy {
			validate = ValidatePath
		}

		switch f.Value.Type() {
		case "string":
			val, _ := cmd.Flags().GetString(f.Name)
			if val != "" {
				firstErr = validate(name, val, lim)
			}
		case "stringArray":
			vals, _ := cmd.Flags().GetStringArray(f.Name)
			for i, v := range vals {
				if v == "" {
					continue
				}
				if firstErr = validate(fmt.Sprintf("%s[%d]", name, i), v, lim); firstErr != nil {
					return
				}
			}
		case "stringSlice":
			vals, _ := cmd.Flags().GetStringSlice(f.Name)
			for i, v := range vals {
				if v == "" {
					continue
				}
				if firstErr = validate(fmt.Sprintf("%s[%d]", name, i), v, lim); firstErr != nil {
					return
				}
			}
		}
	})
	return firstErr
}
