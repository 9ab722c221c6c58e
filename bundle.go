package funcbox

import (
	"fmt"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"
)

// CheckSource validates a submitted script with esbuild and lowers it to
// ES2020 so both engine backends accept the same syntax surface. The
// transformed source is what gets registered and later executed.
func CheckSource(source string) (string, error) {
	result := esbuild.Transform(source, esbuild.TransformOptions{
		Loader: esbuild.LoaderJS,
		Target: esbuild.ES2020,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			if e.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%d:%d: %s", e.Location.Line, e.Location.Column, e.Text))
			} else {
				msgs = append(msgs, e.Text)
			}
		}
		return "", fmt.Errorf("%w: %s", ErrInvalidSource, strings.Join(msgs, "; "))
	}
	return string(result.Code), nil
}
