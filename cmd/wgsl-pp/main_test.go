package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDefine(t *testing.T) {
	testCases := []struct {
		in    string
		name  string
		value any
	}{
		{"DEBUG", "DEBUG", true},
		{"N=3", "N", int64(3)},
		{"MASK=0x10", "MASK", int64(16)},
		{"SCALE=0.5", "SCALE", 0.5},
		{"FAST=false", "FAST", false},
		{"TYPE=vec3<f32>", "TYPE", "vec3<f32>"},
		{"EMPTY=", "EMPTY", ""},
	}

	for _, tc := range testCases {
		name, value, err := parseDefine(tc.in)
		if err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if name != tc.name {
			t.Errorf("%s: got name %q, want %q", tc.in, name, tc.name)
		}
		if diff := cmp.Diff(tc.value, value); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tc.in, diff)
		}
	}

	if _, _, err := parseDefine("=1"); err == nil {
		t.Errorf("expected error for empty name")
	}
}

func TestDefinesFlag(t *testing.T) {
	defs := defines{}
	fs := flag.NewFlagSet("wgsl-pp", flag.ContinueOnError)
	fs.Var(defs, "D", "")
	if err := fs.Parse([]string{"-D", "A", "-D", "B=2", "in.wgsl"}); err != nil {
		t.Fatal(err)
	}
	want := defines{"A": true, "B": int64(2)}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if fs.Arg(0) != "in.wgsl" {
		t.Errorf("got arg %q", fs.Arg(0))
	}
}

func TestPreprocess(t *testing.T) {
	src := "#if ${DEBUG}\nlog();\n#endif\nlet n = ${N};\n"

	got, err := preprocess(strings.NewReader(src), defines{"DEBUG": int64(0), "N": int64(3)})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("\nlet n = 3;\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	got, err = preprocess(strings.NewReader(src), defines{"DEBUG": true, "N": int64(3)})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("\nlog();\n\nlet n = 3;\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := preprocess(strings.NewReader(src), defines{"DEBUG": true}); err == nil {
		t.Errorf("expected error for undefined ${N}")
	}
}

func TestPreprocessFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "light.wgsl")
	src := "#if ${SPOT}\nspot();\n#else\npoint();\n#endif\n"
	if err := os.WriteFile(fname, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := preprocessFile(fname, defines{"SPOT": false})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("\npoint();\n\n", got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if err := os.Remove(fname); err != nil {
		t.Fatal(err)
	}

	if _, err := preprocessFile(fname, defines{"SPOT": true}); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
}
