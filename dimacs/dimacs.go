// Package dimacs reads and writes CNF problems in the DIMACS and iCNF
// text formats (spec §6, "DIMACS export (specified bit-exactly)").
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Formula is a conjunction of clauses over DIMACS-numbered variables:
// literal i refers to variable i (1-based), -i to its negation.
type Formula struct {
	NumVars int
	Clauses [][]int
}

// Parse reads a DIMACS CNF problem. It tolerates comment lines ('c ...'),
// accepts a 'p cnf N M' header anywhere before the clauses (or no header
// at all, inferring N from the largest variable seen), and ignores excess
// whitespace and line breaks within a clause, per gophersat's permissive
// problem reader.
func Parse(r io.Reader) (*Formula, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	f := &Formula{}
	var cur []int
	hdrVars, hdrClauses := -1, -1

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p") {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
				return nil, errors.Errorf("dimacs: malformed header %q", line)
			}
			var err error
			hdrVars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrap(err, "dimacs: header variable count")
			}
			hdrClauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrap(err, "dimacs: header clause count")
			}
			continue
		}
		if strings.HasPrefix(line, "a") {
			// iCNF assumption line; Parse only loads the base formula.
			continue
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return nil, errors.Wrapf(err, "dimacs: literal %q", tok)
			}
			if v == 0 {
				f.Clauses = append(f.Clauses, cur)
				cur = nil
				continue
			}
			cur = append(cur, v)
			if a := abs(v); a > f.NumVars {
				f.NumVars = a
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "dimacs: reading")
	}
	if len(cur) > 0 {
		f.Clauses = append(f.Clauses, cur)
	}
	if hdrVars != -1 && hdrVars > f.NumVars {
		f.NumVars = hdrVars
	}
	if hdrClauses != -1 && hdrClauses != len(f.Clauses) {
		return nil, errors.Errorf("dimacs: header declares %d clauses, found %d", hdrClauses, len(f.Clauses))
	}
	return f, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Write emits f in the bit-exact DIMACS format spec §6 requires: a
// 'p cnf N M' header followed by one space-separated, zero-terminated
// line per clause.
func (f *Formula) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", f.NumVars, len(f.Clauses)); err != nil {
		return errors.Wrap(err, "dimacs: writing header")
	}
	for _, c := range f.Clauses {
		if err := writeClauseLine(bw, c); err != nil {
			return err
		}
	}
	return errors.Wrap(bw.Flush(), "dimacs: flushing")
}

func writeClauseLine(w *bufio.Writer, c []int) error {
	parts := make([]string, len(c)+1)
	for i, lit := range c {
		parts[i] = strconv.Itoa(lit)
	}
	parts[len(c)] = "0"
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return errors.Wrap(err, "dimacs: writing clause")
}

// WriteIncremental emits f as an iCNF base problem ('p inccnf' header, no
// clause count) so assumption lines can be appended afterward across
// invocations (spec §6).
func (f *Formula) WriteIncremental(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "p inccnf"); err != nil {
		return errors.Wrap(err, "dimacs: writing header")
	}
	for _, c := range f.Clauses {
		if err := writeClauseLine(bw, c); err != nil {
			return err
		}
	}
	return errors.Wrap(bw.Flush(), "dimacs: flushing")
}

// AppendAssumptions appends one 'a <lits> 0' line to an existing iCNF
// stream, per spec §6. Each call is independent, so the iCNF file can be
// grown incrementally across separate solver invocations.
func AppendAssumptions(w io.Writer, assumptions []int) error {
	parts := make([]string, len(assumptions)+2)
	parts[0] = "a"
	for i, lit := range assumptions {
		parts[i+1] = strconv.Itoa(lit)
	}
	parts[len(parts)-1] = "0"
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return errors.Wrap(err, "dimacs: appending assumptions")
}
