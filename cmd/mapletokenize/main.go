// Command mapletokenize is a small demonstration driver for the
// tokenization engine: it tokenizes a file, optionally watches it for
// changes and re-tokenizes incrementally on every write, and prints
// the resulting tokens, followed by the document's line count and
// version when -stats is set.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/maple-editor/tokenize/internal/driver"
	"github.com/maple-editor/tokenize/internal/lexer"
	"github.com/maple-editor/tokenize/internal/tokenizeconfig"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := tokenizeconfig.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	lang := resolveLanguage(opts.langName, opts.filePath, cfg)

	lines, err := readLines(opts.filePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	buf := &fileBuffer{lines: lines, lang: lang, changedFrom: 1}
	d := driver.New(buf.accessors(), driver.WithWorkerThreshold(cfg.WorkerLineThreshold))
	defer d.Dispose()

	printDocument(d, buf)
	if opts.stats {
		printStats(buf)
	}

	if !opts.watch {
		return 0
	}

	return watchAndRetokenize(opts.filePath, buf, d, opts.stats)
}

type options struct {
	filePath   string
	langName   string
	configPath string
	watch      bool
	stats      bool
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("mapletokenize", flag.ContinueOnError)
	var o options
	fs.StringVar(&o.langName, "lang", "", "language to tokenize as (javascript, typescript, python, plaintext); inferred from the file extension if omitted")
	fs.StringVar(&o.configPath, "config", "tokenize.toml", "path to an optional TOML config file")
	fs.BoolVar(&o.watch, "watch", false, "watch the file and re-tokenize incrementally on every write")
	fs.BoolVar(&o.stats, "stats", false, "print the document's line count and version after its tokens")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: mapletokenize [flags] <file>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, fmt.Errorf("mapletokenize: expected exactly one file argument")
	}
	o.filePath = fs.Arg(0)
	return o, nil
}

func resolveLanguage(explicit, path string, cfg tokenizeconfig.EngineConfig) lexer.Language {
	if explicit != "" {
		if lang, ok := lexer.LanguageByName(explicit); ok {
			return lang
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs":
		return lexer.JavaScript
	case ".ts", ".tsx":
		return lexer.TypeScript
	case ".py":
		return lexer.Python
	}
	return cfg.Language()
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapletokenize: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mapletokenize: reading %s: %w", path, err)
	}
	return lines, nil
}

// fileBuffer adapts a static line slice plus a version counter to
// driver.Accessors; it is intentionally the simplest possible
// implementation of the accessor contract.
type fileBuffer struct {
	mu          sync.Mutex
	lines       []string
	lang        lexer.Language
	version     uint64
	changedFrom int
}

func (b *fileBuffer) accessors() driver.Accessors {
	return driver.Accessors{
		Language: func() lexer.Language {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.lang
		},
		LineCount: func() int {
			b.mu.Lock()
			defer b.mu.Unlock()
			return len(b.lines)
		},
		Line: func(i int) string {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.lines[i]
		},
		Version: func() uint64 {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.version
		},
		ChangedFromLine: func() int {
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.changedFrom
		},
	}
}

func (b *fileBuffer) replace(newLines []string) {
	b.mu.Lock()
	changedFrom := firstChangedLine(b.lines, newLines)
	b.lines = newLines
	b.version++
	b.changedFrom = changedFrom
	b.mu.Unlock()
}

// firstChangedLine returns the 1-indexed first line that differs
// between old and new, or one past the shorter slice's length if one
// is simply a prefix of the other.
func firstChangedLine(old, new []string) int {
	n := len(old)
	if len(new) < n {
		n = len(new)
	}
	for i := 0; i < n; i++ {
		if old[i] != new[i] {
			return i + 1
		}
	}
	return n + 1
}

func printDocument(d *driver.Driver, buf *fileBuffer) {
	buf.mu.Lock()
	n := len(buf.lines)
	buf.mu.Unlock()

	for i := 0; i < n; i++ {
		toks := d.GetTokens(i + 1)
		fmt.Printf("%4d: %d tokens\n", i+1, len(toks))
		for _, tok := range toks {
			buf.mu.Lock()
			text := buf.lines[i]
			buf.mu.Unlock()
			end := tok.End()
			if end > len(text) {
				end = len(text)
			}
			fmt.Printf("      %-12s [%d,%d) %q\n", tok.Type, tok.Start, tok.End(), text[tok.Start:end])
		}
	}
}

func printStats(buf *fileBuffer) {
	fmt.Printf("lines=%d version=%d\n", len(buf.lines), buf.version)
}

func watchAndRetokenize(path string, buf *fileBuffer, d *driver.Driver, stats bool) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			eventAbs, err := filepath.Abs(event.Name)
			if err != nil || eventAbs != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			lines, err := readLines(path)
			if err != nil {
				log.Printf("mapletokenize: %v", err)
				continue
			}
			buf.replace(lines)
			d.NotifyEdit()
			printDocument(d, buf)
			if stats {
				printStats(buf)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			log.Printf("mapletokenize: watch error: %v", err)
		}
	}
}
