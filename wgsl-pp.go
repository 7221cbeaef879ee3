/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package wgsl_pp resolves #if/#elif/#else/#endif blocks in shader source
// assembled from literal text and interpolated values.
//
// The selector of an #if or #elif is the value placed directly after it:
//
//	src, err := wgsl_pp.Preprocess(
//		[]string{"fn shade() -> vec4<f32> {\n#if ", "\n\treturn vec4(1.0);\n#else\n\treturn vec4(0.0);\n#endif\n}\n"},
//		useWhite)
//
// Any other '#token' is left in the output untouched.
package wgsl_pp

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/fwessels/wgsl-pp/internal/preprocessor"
)

var (
	ErrDirectiveSequence  = preprocessor.ErrDirectiveSequence
	ErrMalformedDirective = preprocessor.ErrMalformedDirective
	ErrUnmatchedEndif     = preprocessor.ErrUnmatchedEndif
	ErrMismatchedNesting  = preprocessor.ErrMismatchedNesting
	ErrArity              = preprocessor.ErrArity

	ErrUndefinedPlaceholder = errors.New("undefined placeholder")
)

// DirectiveError carries the location of the directive that failed.
type DirectiveError = preprocessor.DirectiveError

// Truther is implemented by values that pick their own selector truth.
type Truther = preprocessor.Truther

// Preprocess resolves the conditional blocks in a template of
// len(values)+1 segments. No output is returned on error.
func Preprocess(segments []string, values ...any) (string, error) {
	return preprocessor.Process(segments, values)
}

// Truthy reports whether v selects an #if or #elif branch.
func Truthy(v any) bool { return preprocessor.Truthy(v) }

// Stringify returns the text an interpolated value contributes.
func Stringify(v any) string { return preprocessor.Stringify(v) }

var placeholderRe = regexp.MustCompile(`\$\$\{|\$\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}`)

// Split cuts src at its ${NAME} placeholders. It returns one more segment
// than names. "$${" is an escaped, literal "${".
func Split(src string) (segments []string, names []string) {
	var seg []byte
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(src, -1) {
		seg = append(seg, src[last:m[0]]...)
		last = m[1]
		if m[2] < 0 {
			seg = append(seg, "${"...)
			continue
		}
		segments = append(segments, string(seg))
		names = append(names, src[m[2]:m[3]])
		seg = seg[:0]
	}
	seg = append(seg, src[last:]...)
	segments = append(segments, string(seg))
	return
}

// Expand splits src at its placeholders, binds each one from vars and
// preprocesses the result.
func Expand(src string, vars map[string]any) (string, error) {
	segments, names := Split(src)
	values := make([]any, len(names))
	for i, name := range names {
		v, ok := vars[name]
		if !ok {
			return "", fmt.Errorf("%w: ${%s}", ErrUndefinedPlaceholder, name)
		}
		values[i] = v
	}
	return Preprocess(segments, values...)
}
