package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/petal-labs/albert-go/core"
)

// printResult writes a platform result as indented JSON. Empty results
// print "{}" in JSON mode and nothing otherwise.
func (a *App) printResult(res *core.Result) error {
	if res == nil || res.IsEmpty() {
		if a.jsonOutput {
			fmt.Fprintln(a.stdout, "{}")
		}
		return nil
	}
	out, err := res.Indent("", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, string(out))
	return nil
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printDone reports a mutation that returns no body.
func (a *App) printDone(format string, args ...any) {
	if a.jsonOutput {
		fmt.Fprintln(a.stdout, `{"ok":true}`)
		return
	}
	fmt.Fprintf(a.stdout, format+"\n", args...)
}

func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, exitWithCode(ExitValidation, fmt.Errorf("invalid %s id %q", kind, arg))
	}
	return id, nil
}
