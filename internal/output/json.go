package output

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
)

// WriteJSON writes all variables as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, variables map[string]string) error {
	data, err := json.MarshalIndent(variables, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling variables to JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}

// WriteVariable writes a single variable value to the writer.
func WriteVariable(w io.Writer, variables map[string]string, name string) error {
	val, ok := variables[name]
	if !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	_, err := fmt.Fprintln(w, val)
	return err
}

// WriteAll writes all variables as key=value pairs, sorted by key.
func WriteAll(w io.Writer, variables map[string]string) error {
	for _, k := range slices.Sorted(maps.Keys(variables)) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, variables[k]); err != nil {
			return err
		}
	}
	return nil
}

// WriteDotEnv writes all variables as GitVersion_<Name>='<value>' lines,
// sorted by name, for sourcing into a shell or CI environment.
func WriteDotEnv(w io.Writer, variables map[string]string) error {
	for _, k := range slices.Sorted(maps.Keys(variables)) {
		if _, err := fmt.Fprintf(w, "GitVersion_%s='%s'\n", k, variables[k]); err != nil {
			return err
		}
	}
	return nil
}
