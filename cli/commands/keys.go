package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/albert-go/cli/keystore"
)

func (a *App) newKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage stored API keys",
		Long: `Manage Albert API keys in the encrypted keystore (~/.albert/keys.enc).

A profile reads the key stored under its api_key_ref, or under the profile
name when api_key_ref is unset. ALBERT_API_KEY always takes precedence.`,
	}

	set := &cobra.Command{
		Use:   "set [name]",
		Short: "Store an API key",
		Long:  `Store an API key under name (default: the active profile's key reference). The key is read without echo.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.keyName(args)
			fmt.Fprintf(a.stderr, "Enter API key for %s: ", name)

			apiKey, err := a.readSecret()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("read key: %w", err))
			}
			if apiKey == "" {
				return exitWithCode(ExitValidation, fmt.Errorf("API key cannot be empty"))
			}

			ks, err := a.newKeystore()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("open keystore: %w", err))
			}
			if err := ks.Set(name, apiKey); err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("store key: %w", err))
			}

			a.printDone("API key for %s stored.", name)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored key names",
		Long:  `List stored key names. Key values are never printed.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.newKeystore()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("open keystore: %w", err))
			}
			names, err := ks.List()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("list keys: %w", err))
			}

			if a.jsonOutput {
				return a.printJSON(names)
			}
			if len(names) == 0 {
				fmt.Fprintln(a.stdout, "No API keys stored.")
				return nil
			}
			fmt.Fprintln(a.stdout, "Stored keys:")
			for _, name := range names {
				fmt.Fprintf(a.stdout, "  - %s\n", name)
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.keyName(args)
			ks, err := a.newKeystore()
			if err != nil {
				return exitWithCode(ExitValidation, fmt.Errorf("open keystore: %w", err))
			}
			if err := ks.Delete(name); err != nil {
				if keystore.IsNotFound(err) {
					return exitWithCode(ExitValidation, fmt.Errorf("no key stored for %s", name))
				}
				return exitWithCode(ExitValidation, fmt.Errorf("delete key: %w", err))
			}
			a.printDone("API key for %s deleted.", name)
			return nil
		},
	}

	cmd.AddCommand(set, list, del)
	return cmd
}

// keyName returns the explicit argument or the active profile's key reference.
func (a *App) keyName(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	p, name := a.activeProfile()
	return p.KeyRef(name)
}

// readSecret reads one line from stdin, without echo on a terminal.
func (a *App) readSecret() (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
