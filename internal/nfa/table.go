package nfa

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// labelOrder is Order followed by any states unreachable from Start.
func (a *Automaton) labelOrder() []int {
	order := a.Order()
	if len(order) == len(a.states) {
		return order
	}

	seen := make([]bool, len(a.states))
	for _, s := range order {
		seen[s] = true
	}
	for i := range seen {
		if !seen[i] {
			order = append(order, i)
		}
	}
	return order
}

// Labels maps each state index to a display label q0, q1, ... assigned in
// Order. States unreachable from Start, if any, are numbered last.
func (a *Automaton) Labels() []string {
	labels := make([]string, len(a.states))
	for n, s := range a.labelOrder() {
		labels[s] = fmt.Sprintf("q%d", n)
	}
	return labels
}

// WriteTable writes the transition table of a: one row per state in label
// order, an epsilon column and one column per alphabet symbol. The start
// state is prefixed with '>' and the accepting state with '*'.
func WriteTable(w io.Writer, a *Automaton) error {
	labels := a.Labels()
	alphabet := a.Alphabet()

	column := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		column[r] = i
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight|tabwriter.Debug)

	header := make([]string, 0, len(alphabet)+2)
	header = append(header, "", "Epsilon")
	for _, r := range alphabet {
		header = append(header, string(r))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return err
	}

	for _, s := range a.labelOrder() {
		st := &a.states[s]

		marker := ""
		switch {
		case s == a.start:
			marker = ">"
		case a.IsAccepting(s):
			marker = "*"
		}

		eps := make([]string, len(st.Epsilon))
		for i, t := range st.Epsilon {
			eps[i] = labels[t]
		}

		cells := make([]string, len(alphabet)+2)
		cells[0] = marker + labels[s]
		cells[1] = strings.Join(eps, ",")
		if st.HasTransition() {
			cells[column[st.Transition.Symbol]+2] = labels[st.Transition.To]
		}

		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t"); err != nil {
			return err
		}
	}

	return tw.Flush()
}
