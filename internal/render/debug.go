package render

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/brewresults/internal/core"
)

// WriteDebug dumps the result model as YAML, groups in model order.
func WriteDebug(w io.Writer, model *core.ResultModel) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(model); err != nil {
		return err
	}
	return enc.Close()
}
