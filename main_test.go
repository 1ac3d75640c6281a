package main

import (
	"flag"
	"strings"
	"testing"

	"draftinput/internal/config"
)

func TestNormalizeImportClampsAndValidates(t *testing.T) {
	raw := `{"blocks":[{"key":"a","text":"hello world","type":"unstyled","inlineStyleRanges":[{"offset":0,"length":5,"style":"BOLD"}]}],"entityMap":{}}`
	doc, cut, err := normalizeImport([]byte(raw), 8)
	if err != nil {
		t.Fatalf("normalizeImport: %v", err)
	}
	if !cut || doc.PlainText() != "hello wo" {
		t.Fatalf("cut=%v text=%q", cut, doc.PlainText())
	}
	if r := doc.Blocks[0].InlineStyleRanges; len(r) != 1 || r[0].Length != 5 {
		t.Fatalf("styles = %+v", r)
	}

	bad := `{"blocks":[{"key":"a","text":"hi","inlineStyleRanges":[{"offset":1,"length":9,"style":"BOLD"}]}]}`
	if _, _, err := normalizeImport([]byte(bad), 100); err == nil || !strings.Contains(err.Error(), "invalid document") {
		t.Fatalf("expected invalid document, got %v", err)
	}

	if doc, _, err := normalizeImport([]byte("null"), 100); err != nil || doc != nil {
		t.Fatalf("null import = %v, %v", doc, err)
	}
	if doc, _, err := normalizeImport([]byte(`{"blocks":[{"key":"a","text":"   "}]}`), 100); err != nil || doc != nil {
		t.Fatalf("blank import should store nil, got %v, %v", doc, err)
	}
}

func TestEditorFlagsOverlayConfig(t *testing.T) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	ef := addEditorFlags(fs)
	if err := fs.Parse([]string{"--max", "280", "--inline"}); err != nil {
		t.Fatal(err)
	}
	ed := ef.apply(config.Defaults().Editor)
	if ed.MaxLength != 280 || !ed.DefaultInput || ed.ReadOnly || ed.Width != 60 {
		t.Fatalf("editor = %+v", ed)
	}
}

func TestDocArg(t *testing.T) {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	_ = fs.Parse(nil)
	if id, err := docArg(fs, false); err != nil || id != defaultDocID {
		t.Fatalf("default id = %q, %v", id, err)
	}
	if _, err := docArg(fs, true); err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestLoggerVerbosity(t *testing.T) {
	l := newLogger(1)
	l.Debugf("hidden")
	l.Infof("saved %s", "a")
	select {
	case line := <-l.Lines():
		if line != "saved a" {
			t.Fatalf("line = %q", line)
		}
	default:
		t.Fatalf("expected a log line")
	}
	select {
	case line := <-l.Lines():
		t.Fatalf("unexpected line %q", line)
	default:
	}
}
