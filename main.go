// Copyright
// SPDX-License-Identifier: MIT
// draftinput: rich-text input widget for the terminal, with a sqlite-backed document store
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"draftinput/internal/config"
	"draftinput/internal/richtext"
	"draftinput/internal/store"
	appTUI "draftinput/internal/tui"
	"draftinput/internal/tui/util"
)

const Version = "0.1.0"

const defaultDocID = "scratch"

/* ---------- CLI ---------- */

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	var err error
	switch os.Args[1] {
	case "help", "-h", "--help":
		if len(os.Args) > 2 {
			helpTopic(os.Args[2])
		} else {
			usage()
		}
	case "version", "--version":
		fmt.Println("draftinput", Version)
	case "init":
		err = cmdInit()
	case "edit":
		err = cmdEdit()
	case "browse":
		err = cmdBrowse()
	case "show":
		err = cmdShow()
	case "list":
		err = cmdList()
	case "export":
		err = cmdExport()
	case "import":
		err = cmdImport()
	case "delete":
		err = cmdDelete()
	case "settings":
		err = cmdSettings()
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`draftinput ` + Version + `
A click-to-edit rich-text input (bold, italic, underline) with a length limit, backed by sqlite.
USAGE
  draftinput <command> [options]
COMMANDS
  init         Write the default config file and create the document database
  edit ID      Open a document in the editor (default: ` + defaultDocID + `)
  browse       List documents; open, create, export or delete them
  show ID      Print a document's plain text (--json for the raw document)
  list         Print stored document ids with a preview
  export ID    Write a document's raw JSON to stdout or --out
  import ID    Read a raw JSON document from --in or stdin and store it
  delete ID    Remove a document
  settings     Adjust editor defaults and the database path interactively
  help         Show help (try: draftinput help edit)
  version      Print version
NOTES
  • Config lives at ~/.config/draftinput/config.toml; DRAFTINPUT_CONFIG overrides the path and
    DRAFTINPUT_* variables override keys (e.g. DRAFTINPUT_EDITOR_MAX_LENGTH=280).
  • Use -v or -vv for more log detail. Use --log-file to choose where logs are appended.
` + "\n")
}

func helpTopic(name string) {
	switch name {
	case "edit":
		fmt.Print(`USAGE
  draftinput edit [--max N] [--read-only] [--inline] [--controls-bar] [--width N]
                  [--no-color] [--db PATH] [-v | -vv] [--log-file PATH] [ID]
DESCRIPTION
  Shows the document in display mode. Click it or press enter to edit; ctrl+s or the
  Save button stores it, esc or Cancel restores the last saved content. With --inline the
  input is always editable and is stored when it loses focus or when you quit.
KEYS
  ctrl+b / alt+i / ctrl+u   toggle bold / italic / underline
  ctrl+z / ctrl+y           undo / redo
  ctrl+v / alt+c            paste / copy selection
  ctrl+d                    pending changes (ctrl+t switches unified/side-by-side)
  f1                        help
  ctrl+c                    quit
OPTIONS
  --max N          Maximum length in characters (default from config, 1000)
  --read-only      Never enter edit mode
  --inline         Always-editable input without Save/Cancel
  --controls-bar   Borderless style controls row (inline only)
  --width N        Widget width in cells
  --no-color       ASCII rendering; NO_COLOR is honoured too
  --db PATH        Database file (default from config)
  -v / -vv         Log saves / also log widget diagnostics
  --log-file PATH  Append logs to file (created if missing)
` + "\n")
	case "import":
		fmt.Print(`USAGE
  draftinput import [--in FILE] [--max N] [--db PATH] ID
DESCRIPTION
  Reads a raw document ({"blocks":[...],"entityMap":{}}) and stores it under ID after
  validating style ranges. Content over the length limit is cut to the limit.
  The literal "null" clears the document.
` + "\n")
	default:
		usage()
	}
}

/* ---------- common flags ---------- */

type commonFlags struct {
	db      *string
	verbose *bool
	debug   *bool
	logPath *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		db:      fs.String("db", "", "Database file (overrides config)"),
		verbose: fs.Bool("v", false, "Verbose logs"),
		debug:   fs.Bool("vv", false, "Debug logs"),
		logPath: fs.String("log-file", "", "Append logs to file (created if missing)"),
	}
}

// env is the per-command runtime: loaded config, open store and logger.
type env struct {
	cfg  config.Config
	docs *store.Documents
	db   io.Closer
	log  *logger
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	e.log.Close()
}

func setup(c commonFlags) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *c.db != "" {
		cfg.Database.Path = *c.db
	}
	verbosity := cfg.Log.Verbosity
	if *c.debug {
		verbosity = 2
	} else if *c.verbose {
		verbosity = 1
	}
	logPath := cfg.Log.File
	if *c.logPath != "" {
		logPath = *c.logPath
	}
	lg := newLogger(verbosity)
	if verbosity > 0 {
		lf, err := openLogFile(logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Could not open log file:", err)
		}
		lg.file = lf
	}
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		lg.Close()
		return nil, err
	}
	lg.Infof("opened %s", cfg.Database.Path)
	return &env{cfg: cfg, docs: store.NewDocuments(db), db: db, log: lg}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func docArg(fs *flag.FlagSet, required bool) (string, error) {
	switch fs.NArg() {
	case 0:
		if required {
			return "", errors.New("missing document id")
		}
		return defaultDocID, nil
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))
	}
}

/* ---------- commands ---------- */

func cmdInit() error {
	path := config.Path()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(config.Defaults()); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
	} else {
		fmt.Println(path, "already exists; not overwriting")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	fmt.Println("Initialized", cfg.Database.Path)
	return nil
}

// editorFlags are the widget options settable per run.
type editorFlags struct {
	max         *int
	readOnly    *bool
	inline      *bool
	controlsBar *bool
	width       *int
	noColor     *bool
}

func addEditorFlags(fs *flag.FlagSet) editorFlags {
	return editorFlags{
		max:         fs.Int("max", 0, "Maximum length in characters"),
		readOnly:    fs.Bool("read-only", false, "Never enter edit mode"),
		inline:      fs.Bool("inline", false, "Always-editable input"),
		controlsBar: fs.Bool("controls-bar", false, "Borderless style controls (inline only)"),
		width:       fs.Int("width", 0, "Widget width in cells"),
		noColor:     fs.Bool("no-color", false, "Disable colors"),
	}
}

// apply overlays explicitly set flags on the configured editor defaults.
func (f editorFlags) apply(ed config.EditorConfig) config.EditorConfig {
	if *f.max > 0 {
		ed.MaxLength = *f.max
	}
	if *f.width > 0 {
		ed.Width = *f.width
	}
	ed.ReadOnly = ed.ReadOnly || *f.readOnly
	ed.DefaultInput = ed.DefaultInput || *f.inline
	ed.DefaultControlsBar = ed.DefaultControlsBar || *f.controlsBar
	ed.NoColor = util.NoColor(ed.NoColor || *f.noColor)
	return ed
}

func cmdEdit() error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	fs.Usage = func() { helpTopic("edit") }
	common := addCommonFlags(fs)
	ef := addEditorFlags(fs)
	_ = fs.Parse(os.Args[2:])
	id, err := docArg(fs, false)
	if err != nil {
		return err
	}
	e, err := setup(common)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx, cancel := signalContext()
	defer cancel()
	return runEditor(ctx, e, id, ef.apply(e.cfg.Editor))
}

func runEditor(ctx context.Context, e *env, id string, ed config.EditorConfig) error {
	e.log.Infof("editing %s (max %d)", id, ed.MaxLength)
	return appTUI.Run(ctx, appTUI.Options{
		ID:     id,
		Docs:   e.docs,
		Editor: ed,
		Logf:   e.log.Infof,
	})
}

func cmdBrowse() error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	common := addCommonFlags(fs)
	ef := addEditorFlags(fs)
	exportDir := fs.String("export-dir", ".", "Directory for exported documents")
	_ = fs.Parse(os.Args[2:])
	e, err := setup(common)
	if err != nil {
		return err
	}
	defer e.Close()
	ctx, cancel := signalContext()
	defer cancel()
	ed := ef.apply(e.cfg.Editor)
	for {
		id, err := appTUI.Browse(ctx, appTUI.BrowseOptions{
			Library:   e.docs,
			ExportDir: *exportDir,
			NoColor:   ed.NoColor,
			Logs:      e.log.Lines(),
			Logf:      e.log.Debugf,
		})
		if err != nil || id == "" {
			return err
		}
		if err := runEditor(ctx, e, id, ed); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func cmdShow() error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	common := addCommonFlags(fs)
	asJSON := fs.Bool("json", false, "Print the raw document")
	_ = fs.Parse(os.Args[2:])
	id, err := docArg(fs, false)
	if err != nil {
		return err
	}
	e, err := setup(common)
	if err != nil {
		return err
	}
	defer e.Close()
	doc, err := e.docs.Get(context.Background(), id)
	if err != nil {
		return err
	}
	if *asJSON {
		data, err := richtext.Encode(doc)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(doc.PlainText())
	return nil
}

func cmdList() error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	common := addCommonFlags(fs)
	_ = fs.Parse(os.Args[2:])
	e, err := setup(common)
	if err != nil {
		return err
	}
	defer e.Close()
	items, err := e.docs.List(context.Background())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No documents.")
		return nil
	}
	for _, s := range items {
		fmt.Printf("%-20s %-20s %s\n", s.ID, s.UpdatedAt.Local().Format(time.DateTime), s.Preview)
	}
	return nil
}

func cmdExport() error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	common := addCommonFlags(fs)
	out := fs.String("out", "", "Output file (default stdout)")
	_ = fs.Parse(os.Args[2:])
	id, err := docArg(fs, true)
	if err != nil {
		return err
	}
	e, err := setup(common)
	if err != nil {
		return err
	}
	defer e.Close()
	doc, err := e.docs.Get(context.Background(), id)
	if err != nil {
		return err
	}
	data, err := richtext.Encode(doc)
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(data))
		return nil
	}
	if dir := filepath.Dir(*out); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Println("Wrote", *out)
	return nil
}

func cmdImport() error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	fs.Usage = func() { helpTopic("import") }
	common := addCommonFlags(fs)
	in := fs.String("in", "", "Input file (default stdin)")
	maxLen := fs.Int("max", 0, "Maximum length in characters")
	_ = fs.Parse(os.Args[2:])
	id, err := docArg(fs, true)
	if err != nil {
		return err
	}
	var data []byte
	if *in == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*in)
	}
	if err != nil {
		return err
	}
	e, err := setup(common)
	if err != nil {
		return err
	}
	defer e.Close()
	limit := e.cfg.Editor.MaxLength
	if *maxLen > 0 {
		limit = *maxLen
	}
	doc, cut, err := normalizeImport(data, limit)
	if err != nil {
		return err
	}
	if err := e.docs.Save(context.Background(), id, doc); err != nil {
		return err
	}
	if cut {
		fmt.Printf("Imported %s (truncated to %d characters)\n", id, limit)
	} else {
		fmt.Println("Imported", id)
	}
	return nil
}

// normalizeImport parses and validates a raw document and clamps it to limit.
// It reports whether content was cut.
func normalizeImport(data []byte, limit int) (*richtext.Document, bool, error) {
	doc, err := richtext.Parse(data)
	if err != nil || doc == nil {
		return nil, false, err
	}
	s, err := richtext.FromDocument(doc)
	if err != nil {
		return nil, false, fmt.Errorf("invalid document: %w", err)
	}
	cut := s.Len() > limit
	if cut {
		s = s.Truncate(limit)
	}
	if strings.TrimSpace(s.PlainText()) == "" {
		return nil, cut, nil
	}
	return s.Document(), cut, nil
}

func cmdDelete() error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	common := addCommonFlags(fs)
	_ = fs.Parse(os.Args[2:])
	id, err := docArg(fs, true)
	if err != nil {
		return err
	}
	e, err := setup(common)
	if err != nil {
		return err
	}
	defer e.Close()
	if err := e.docs.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Println("Deleted", id)
	return nil
}

func cmdSettings() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	next, ok, err := appTUI.CollectSettings(cfg)
	if err != nil || !ok {
		return err
	}
	if err := config.Save(next); err != nil {
		return err
	}
	fmt.Println("Wrote", config.Path())
	return nil
}

/* ---------- logging ---------- */

// logger appends to an optional log file and mirrors lines to a channel the
// browser shows. Sends never block.
type logger struct {
	mu        sync.Mutex
	file      *os.File
	verbosity int
	lines     chan string
}

func newLogger(verbosity int) *logger {
	return &logger{verbosity: verbosity, lines: make(chan string, 256)}
}

func (l *logger) write(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	l.mu.Lock()
	if l.file != nil {
		_, _ = fmt.Fprintf(l.file, "%s %s\n", time.Now().Format(time.RFC3339), line)
	}
	l.mu.Unlock()
	select {
	case l.lines <- line:
	default:
	}
}

// Infof logs at -v.
func (l *logger) Infof(format string, args ...any) {
	if l.verbosity >= 1 {
		l.write(format, args...)
	}
}

// Debugf logs at -vv.
func (l *logger) Debugf(format string, args ...any) {
	if l.verbosity >= 2 {
		l.write(format, args...)
	}
}

func (l *logger) Lines() <-chan string { return l.lines }

func (l *logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(f, "=== draftinput %s started at %s ===\n", Version, time.Now().Format(time.RFC3339))
	return f, nil
}
