package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/pflag"
)

type outputOptions struct {
	json bool
}

func (o *outputOptions) register(fs *pflag.FlagSet) {
	fs.BoolVar(&o.json, "json", false, "Print JSON instead of the styled summary (default when stdout is not a terminal)")
}

// useJSON reports whether the command should print JSON: when asked to, or
// when output is piped.
func (o *outputOptions) useJSON(app *App) bool {
	return o.json || !app.terminal()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
