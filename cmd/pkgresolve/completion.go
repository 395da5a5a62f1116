package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func createInstallCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install-completion",
		Short: "Install shell completion script",
		Long: `Install shell completion script for Bash, Zsh, or Fish.
Automatically detects your shell and installs the appropriate completion script.`,
		RunE: executeInstallCompletion,
	}
	cmd.Flags().String("shell", "", "Specify shell type (bash, zsh, fish)")
	cmd.Flags().Bool("force", false, "Force overwrite existing completion files")
	return cmd
}

func executeInstallCompletion(cmd *cobra.Command, args []string) error {
	shellType, err := cmd.Flags().GetString("shell")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if shellType == "" {
		shellEnv := os.Getenv("SHELL")
		switch {
		case strings.Contains(shellEnv, "bash"):
			shellType = "bash"
		case strings.Contains(shellEnv, "zsh"):
			shellType = "zsh"
		case strings.Contains(shellEnv, "fish"):
			shellType = "fish"
		default:
			return fmt.Errorf("could not detect shell; specify with --shell")
		}
	}

	var buf bytes.Buffer
	switch shellType {
	case "bash":
		if err := cmd.Root().GenBashCompletion(&buf); err != nil {
			return fmt.Errorf("generating bash completion: %w", err)
		}
	case "zsh":
		if err := cmd.Root().GenZshCompletion(&buf); err != nil {
			return fmt.Errorf("generating zsh completion: %w", err)
		}
	case "fish":
		if err := cmd.Root().GenFishCompletion(&buf, true); err != nil {
			return fmt.Errorf("generating fish completion: %w", err)
		}
	default:
		return fmt.Errorf("unsupported shell type: %s", shellType)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}

	var targetPath string
	switch shellType {
	case "bash":
		dir := filepath.Join(homeDir, ".bash_completion.d")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		targetPath = filepath.Join(dir, "pkgresolve.bash")
	case "zsh":
		dir := filepath.Join(homeDir, ".zsh", "completion")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		targetPath = filepath.Join(dir, "_pkgresolve")
	case "fish":
		dir := filepath.Join(homeDir, ".config", "fish", "completions")
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		targetPath = filepath.Join(dir, "pkgresolve.fish")
	}

	if _, err := os.Stat(targetPath); err == nil && !force {
		return fmt.Errorf("completion file already exists at %s, use --force to overwrite", targetPath)
	}

	if err := os.WriteFile(targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing completion file: %w", err)
	}
	fmt.Printf("Shell completion installed for %s at %s\n", shellType, targetPath)
	return nil
}
