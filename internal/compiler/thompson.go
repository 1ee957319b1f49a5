package compiler

import (
	"github.com/KromDaniel/thompson/internal/codegen"
	"github.com/KromDaniel/thompson/internal/nfa"
	"github.com/dave/jennifer/jen"
)

// ThompsonGenerator generates Thompson NFA simulation code.
// Thompson's algorithm simulates all possible NFA states simultaneously,
// guaranteeing O(n*m) time complexity where n = input length, m = states.
//
// Epsilon closures are computed once at generation time, so the generated
// code only ever ORs precomputed masks into the next state set.
type ThompsonGenerator struct {
	compiler     *Compiler
	automaton    *nfa.Automaton
	words        int
	startClosure []uint64
	closures     map[int][]uint64 // symbol state -> closure of its target
	charStates   []int            // States that consume characters, ascending
}

// NewThompsonGenerator creates a new Thompson NFA generator.
func NewThompsonGenerator(c *Compiler) *ThompsonGenerator {
	a := c.config.Automaton
	gen := &ThompsonGenerator{
		compiler:  c,
		automaton: a,
		words:     c.words,
		closures:  make(map[int][]uint64),
	}

	gen.startClosure = codegen.Mask(a.EpsilonClosure([]int{a.Start()}), gen.words)

	for i := 0; i < a.Len(); i++ {
		st := a.State(i)
		if !st.HasTransition() {
			continue
		}
		gen.charStates = append(gen.charStates, i)
		gen.closures[i] = codegen.Mask(a.EpsilonClosure([]int{st.Transition.To}), gen.words)
	}

	return gen
}

// stateSetType returns the generated state set type, [words]uint64.
func (g *ThompsonGenerator) stateSetType() *jen.Statement {
	return jen.Index(jen.Lit(g.words)).Uint64()
}

func (g *ThompsonGenerator) maskLiteral(mask []uint64) *jen.Statement {
	values := make([]jen.Code, len(mask))
	for i, w := range mask {
		values[i] = jen.Lit(w)
	}
	return g.stateSetType().Values(values...)
}

// GenerateMatchFunction generates the body of MatchString or MatchBytes.
func (g *ThompsonGenerator) GenerateMatchFunction(isBytes bool) []jen.Code {
	g.compiler.logger.Log("Generating Thompson NFA match function (states: %d, bytes: %v)", g.automaton.Len(), isBytes)

	code := []jen.Code{
		jen.Comment("Thompson NFA state sets (bitset representation)"),
		jen.Id(codegen.CurrentName).Op(":=").Add(g.maskLiteral(g.startClosure)),
		jen.Var().Id(codegen.NextName).Add(g.stateSetType()),
		jen.Line(),
	}

	body := g.generateTransitionBlock()

	// A pattern without symbol transitions never reads the decoded symbol.
	symbol := jen.Id(codegen.SymbolName)
	if len(g.charStates) == 0 {
		symbol = jen.Id("_")
	}

	if isBytes {
		loop := append([]jen.Code{
			jen.List(symbol, jen.Id(codegen.SizeName)).Op(":=").
				Qual("unicode/utf8", "DecodeRune").Call(jen.Id(codegen.InputName).Index(jen.Id(codegen.OffsetName).Op(":"))),
			jen.Id(codegen.OffsetName).Op("+=").Id(codegen.SizeName),
		}, body...)

		code = append(code,
			jen.For(
				jen.Id(codegen.OffsetName).Op(":=").Lit(0),
				jen.Id(codegen.OffsetName).Op("<").Len(jen.Id(codegen.InputName)),
				jen.Empty(),
			).Block(loop...),
		)
	} else if len(g.charStates) == 0 {
		code = append(code,
			jen.For(jen.Range().Id(codegen.InputName)).Block(body...),
		)
	} else {
		code = append(code,
			jen.For(jen.List(jen.Id("_"), symbol).Op(":=").Range().Id(codegen.InputName)).Block(body...),
		)
	}

	end := g.automaton.End()
	code = append(code,
		jen.Line(),
		jen.Comment("Accept if the final state is active"),
		jen.Return(
			jen.Id(codegen.CurrentName).Index(jen.Lit(end/codegen.WordBits)).
				Op("&").Lit(uint64(1)<<(uint(end)%codegen.WordBits)).
				Op("!=").Lit(0),
		),
	)

	return code
}

// generateTransitionBlock generates the per-symbol step of the simulation.
func (g *ThompsonGenerator) generateTransitionBlock() []jen.Code {
	block := []jen.Code{
		jen.Id(codegen.NextName).Op("=").Add(g.stateSetType()).Values(),
	}

	for _, s := range g.charStates {
		block = append(block, g.generateStateTransition(s)...)
	}

	block = append(block,
		jen.Line(),
		jen.Comment("Update current state set"),
		jen.Id(codegen.CurrentName).Op("=").Id(codegen.NextName),
		jen.Line(),
		jen.Comment("Check for dead end"),
		jen.If(jen.Id(codegen.CurrentName).Op("==").Parens(g.stateSetType().Values())).Block(
			jen.Return(jen.False()),
		),
	)

	return block
}

// generateStateTransition generates transition code for a single state.
func (g *ThompsonGenerator) generateStateTransition(s int) []jen.Code {
	st := g.automaton.State(s)
	bit := uint64(1) << (uint(s) % codegen.WordBits)

	var updates []jen.Code
	for w, mask := range g.closures[s] {
		if mask == 0 {
			continue
		}
		updates = append(updates, jen.Id(codegen.NextName).Index(jen.Lit(w)).Op("|=").Lit(mask))
	}

	return []jen.Code{
		jen.Comment(codegen.StateComment(s)),
		jen.If(
			jen.Id(codegen.CurrentName).Index(jen.Lit(s / codegen.WordBits)).Op("&").Lit(bit).Op("!=").Lit(0).
				Op("&&").Id(codegen.SymbolName).Op("==").LitRune(st.Transition.Symbol),
		).Block(updates...),
	}
}
