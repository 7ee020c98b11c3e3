package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/yevent/parser/internal/compose"
	"github.com/yevent/parser/parser"
)

// TestCrossValidateAgainstYAMLv3 runs each of these sources through this
// module's scanner/parser/compose pipeline and through yaml.v3's
// Unmarshal, and asserts they agree on the resulting generic value. This is the module's one dependency on
// yaml.v3 at runtime (test-only), mirroring the teacher's own
// fuzz-test idiom of checking results against a second implementation.
var crossValidateCases = []string{
	`{}`,
	"a: 1\nb: 2\n",
	"seq:\n- A\n- B\n- C\n",
	"seq: [A, B, C]\n",
	`v: hi`,
	"nested:\n  a: 1\n  b:\n  - x\n  - y\n",
	`"escaped: \x41\u00e9"`,
}

func TestCrossValidateAgainstYAMLv3(t *testing.T) {
	for _, src := range crossValidateCases {
		src := src
		t.Run(src, func(t *testing.T) {
			p := parser.New(strings.NewReader(src))
			_, err := p.NextEvent() // stream-start
			require.NoError(t, err)
			_, err = p.PeekEvent() // document-start, consumed by compose.Document
			require.NoError(t, err)

			got, err := compose.Document(p)
			require.NoError(t, err)

			var want any
			require.NoError(t, yamlv3.Unmarshal([]byte(src), &want))

			require.Equal(t, normalize(want), normalize(got))
		})
	}
}

// normalize maps yaml.v3's map[string]interface{} (and its scalar
// type guesses) down to the same shape this module's schema-free
// composer produces: every mapping key/value pair becomes a
// map[string]any, and every scalar is compared as its string form,
// since this module deliberately never resolves scalar types.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := map[string]any{}
		for k, val := range x {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalize(val)
		}
		return out
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
