package repl

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tuannm99/icarusbin/internal/editor"
)

const helpText = `commands:
  open <path>              load a table file
  save                     write the grid back to the open file
  saveas <path>            write the grid to another file
  encoding <name>          re-read names and strings with another encoding
  show [limit]             print the grid
  get <row> <col>          print one cell
  set <row> <col> <text>   change one cell
  append                   add an empty row
  delete <row>             remove a row
  schema                   list the fields
  status                   document summary
  help                     this text
  quit | exit | \q         leave`

// Shell runs editor commands one line at a time.
type Shell struct {
	s         *editor.Session
	out       io.Writer
	showLimit int
}

func NewShell(s *editor.Session, out io.Writer, showLimit int) *Shell {
	if showLimit <= 0 {
		showLimit = 50
	}
	return &Shell{s: s, out: out, showLimit: showLimit}
}

// cut splits off the first whitespace-separated word of s.
func cut(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}

// Exec runs one command line and reports whether the shell should stop.
func (sh *Shell) Exec(line string) (quit bool) {
	cmd, rest := cut(line)
	if cmd == "" {
		return false
	}

	switch strings.ToLower(cmd) {
	case "quit", "exit", `\q`:
		return true
	case "help", `\help`:
		fmt.Fprintln(sh.out, helpText)
	case "open":
		if rest == "" {
			sh.usage("open <path>")
			return false
		}
		_ = sh.s.Open(rest)
		sh.printStatus()
	case "save":
		_ = sh.s.Save()
		sh.printStatus()
	case "saveas":
		if rest == "" {
			sh.usage("saveas <path>")
			return false
		}
		_ = sh.s.SaveAs(rest)
		sh.printStatus()
	case "encoding":
		if rest == "" {
			fmt.Fprintln(sh.out, sh.s.Encoding().Name())
			return false
		}
		_ = sh.s.SetEncoding(rest)
		sh.printStatus()
	case "show":
		limit := sh.showLimit
		if rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n <= 0 {
				sh.usage("show [limit]")
				return false
			}
			limit = n
		}
		sh.show(limit)
	case "get":
		row, col, _, ok := sh.cellArgs(rest, false)
		if !ok {
			sh.usage("get <row> <col>")
			return false
		}
		v, err := sh.s.Cell(row, col)
		if err != nil {
			sh.fail(err)
			return false
		}
		fmt.Fprintln(sh.out, v)
	case "set":
		row, col, text, ok := sh.cellArgs(rest, true)
		if !ok {
			sh.usage("set <row> <col> <text>")
			return false
		}
		if err := sh.s.Set(row, col, text); err != nil {
			sh.fail(err)
		}
	case "append":
		row, err := sh.s.AppendRow()
		if err != nil {
			sh.fail(err)
			return false
		}
		fmt.Fprintf(sh.out, "row %d added\n", row)
	case "delete":
		row, err := strconv.Atoi(rest)
		if err != nil {
			sh.usage("delete <row>")
			return false
		}
		if err := sh.s.DeleteRow(row); err != nil {
			sh.fail(err)
		}
	case "schema":
		sh.schema()
	case "status":
		sh.summary()
	default:
		fmt.Fprintf(sh.out, "unknown command: %s (type help)\n", cmd)
	}
	return false
}

func (sh *Shell) cellArgs(args string, wantText bool) (row, col int, text string, ok bool) {
	r, rest := cut(args)
	c, text := cut(rest)
	row, err1 := strconv.Atoi(r)
	col, err2 := strconv.Atoi(c)
	if err1 != nil || err2 != nil {
		return 0, 0, "", false
	}
	if !wantText && text != "" {
		return 0, 0, "", false
	}
	return row, col, text, true
}

func (sh *Shell) usage(u string) { fmt.Fprintf(sh.out, "usage: %s\n", u) }

func (sh *Shell) fail(err error) { fmt.Fprintf(sh.out, "error: %v\n", err) }

func (sh *Shell) printStatus() { fmt.Fprintln(sh.out, sh.s.Status()) }

func (sh *Shell) show(limit int) {
	if !sh.s.Loaded() {
		sh.fail(editor.ErrNoDocument)
		return
	}
	header := sh.s.Header()
	rows := sh.s.Rows()

	tw := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "#")
	for _, col := range header {
		fmt.Fprintf(tw, "\t%s (%s)", col.Name, col.Type)
	}
	fmt.Fprintln(tw)

	fmt.Fprint(tw, "---")
	for range header {
		fmt.Fprint(tw, "\t---")
	}
	fmt.Fprintln(tw)

	for i, row := range rows {
		if i >= limit {
			break
		}
		fmt.Fprint(tw, i)
		for _, v := range row {
			fmt.Fprintf(tw, "\t%s", v)
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()

	if len(rows) > limit {
		fmt.Fprintf(sh.out, "... %d more rows\n", len(rows)-limit)
	}
}

func (sh *Shell) schema() {
	if !sh.s.Loaded() {
		sh.fail(editor.ErrNoDocument)
		return
	}
	tw := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "col\tname\ttype")
	for i, col := range sh.s.Header() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, col.Name, col.Type)
	}
	_ = tw.Flush()
}

func (sh *Shell) summary() {
	if !sh.s.Loaded() {
		fmt.Fprintf(sh.out, "no file opened (encoding %s)\n", sh.s.Encoding().Name())
		return
	}
	fmt.Fprintf(sh.out, "file:     %s\n", sh.s.Path())
	fmt.Fprintf(sh.out, "encoding: %s\n", sh.s.Encoding().Name())
	fmt.Fprintf(sh.out, "size:     %d rows x %d cols\n", len(sh.s.Rows()), len(sh.s.Header()))
	fmt.Fprintf(sh.out, "modified: %t\n", sh.s.Dirty())
	fmt.Fprintf(sh.out, "status:   %s\n", sh.s.Status())
}
