package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func runCLI(stdin string, args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCheck(t *testing.T) {
	decl := writeTemp(t, "t.jstn", "{name: string; tags: [string]?}")
	good := writeTemp(t, "good.json", `{"name": "Ada"}`)
	bad := writeTemp(t, "bad.json", `{"name": 3}`)
	broken := writeTemp(t, "broken.json", `{"name": `)

	code, out, _ := runCLI("", "check", "-type", decl, "-data", good)
	if code != 0 || !strings.Contains(out, "JSTN: Describes the shape of the JSON document!") ||
		!strings.Contains(out, "JSON: Valid with respect to the JSTN document!") {
		t.Fatalf("exit %d, output:\n%s", code, out)
	}

	code, out, _ = runCLI("", "check", "-type", decl, "-data", bad)
	if code != 1 || !strings.Contains(out, "JSON: Valid JSON document") || !strings.Contains(out, "invalid_type at /name") {
		t.Fatalf("exit %d, output:\n%s", code, out)
	}

	code, out, _ = runCLI("", "check", "-type", decl, "-data", broken)
	if code != 1 || !strings.Contains(out, "JSON: Not a valid JSON document") {
		t.Fatalf("exit %d, output:\n%s", code, out)
	}
}

func TestCheck_JSONAndStdin(t *testing.T) {
	data := writeTemp(t, "d.json", `"foo bar"`)
	code, out, errOut := runCLI("string?", "check", "-type", "-", "-data", data, "-json", "-lang", "ja")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var snap map[string]any
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if snap["validates"] != true {
		t.Fatalf("unexpected snapshot %v", snap)
	}
	if !strings.Contains(out, "JSTN ドキュメントに適合しています") {
		t.Fatalf("expected Japanese messages:\n%s", out)
	}
}

func TestCheck_LocalizedIssues(t *testing.T) {
	decl := writeTemp(t, "t.jstn", "{name: string}")
	bad := writeTemp(t, "bad.json", `{"name": 3}`)
	code, out, _ := runCLI("", "check", "-type", decl, "-data", bad, "-lang", "ja")
	if code != 1 || !strings.Contains(out, "型が不正です (invalid_type at /name:") {
		t.Fatalf("exit %d, output:\n%s", code, out)
	}
}

func TestCheck_Usage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"nope"},
		{"check"},
		{"check", "-type", "x"},
		{"check", "-type", "-", "-data", "-"},
		{"check", "-type", "a", "-data", "b", "-lang", "fr"},
		{"check", "-type", filepath.Join(t.TempDir(), "missing"), "-data", "b"},
		{"fmt"},
		{"fmt", "-role", "yaml", "x"},
	} {
		if code, _, _ := runCLI("", args...); code != 2 {
			t.Fatalf("%v: exit %d, want 2", args, code)
		}
	}
}

func TestFmt(t *testing.T) {
	data := writeTemp(t, "d.json", `{"b":[1,2],"a":"<x>"}`)
	code, out, _ := runCLI("", "fmt", "-role", "json", data)
	if code != 0 || out != "{\n\t\"a\": \"<x>\",\n\t\"b\": [\n\t\t1,\n\t\t2\n\t]\n}\n" {
		t.Fatalf("exit %d, output %q", code, out)
	}

	code, out, _ = runCLI("{ b: number; a: [string?] }", "fmt", "-role", "jstn", "-")
	if code != 0 || out != "{\n  a: [string?]\n  b: number\n}\n" {
		t.Fatalf("exit %d, output %q", code, out)
	}

	code, _, errOut := runCLI("{oops", "fmt", "-role", "json", "-")
	if code != 1 || !strings.Contains(errOut, "-:") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestServe_InvalidConfig(t *testing.T) {
	cfg := writeTemp(t, "bad.yaml", "log_format: xml\n")
	if code, _, errOut := runCLI("", "serve", "-config", cfg); code != 1 || !strings.Contains(errOut, "invalid configuration") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}
