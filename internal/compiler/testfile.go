package compiler

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/thompson/internal/codegen"
	"github.com/dave/jennifer/jen"
)

// testFilePath derives foo_test.go from foo.go.
func testFilePath(output string) string {
	return strings.TrimSuffix(output, ".go") + "_test.go"
}

// generateTestFile writes a test and a benchmark that compare the generated
// matcher against the standard library regexp for every configured input.
func (c *Compiler) generateTestFile() error {
	f := jen.NewFile(c.config.Package)
	f.Comment(fmt.Sprintf("Code generated by thompson for pattern: %s", c.config.Pattern))
	f.Comment("DO NOT EDIT.")
	f.Line()

	name := c.config.Name
	compiled := fmt.Sprintf("Compiled%s", name)
	inputsVar := codegen.LowerFirst(name) + "TestInputs"

	inputs := make([]jen.Code, len(c.config.TestFileInputs))
	for i, in := range c.config.TestFileInputs {
		inputs[i] = jen.Lit(in)
	}

	f.Var().Id(inputsVar).Op("=").Index().String().Values(inputs...)
	f.Line()

	f.Func().Id(fmt.Sprintf("Test%sMatchesStdlib", name)).Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("re").Op(":=").Qual("regexp", "MustCompile").Call(jen.Lit(StdlibPattern(c.config.Pattern))),
		jen.For(jen.List(jen.Id("_"), jen.Id("input")).Op(":=").Range().Id(inputsVar)).Block(
			jen.Id("want").Op(":=").Id("re").Dot("MatchString").Call(jen.Id("input")),
			jen.If(
				jen.Id("got").Op(":=").Id(compiled).Dot("MatchString").Call(jen.Id("input")),
				jen.Id("got").Op("!=").Id("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchString(%q) = %v, want %v"), jen.Id("input"), jen.Id("got"), jen.Id("want")),
			),
			jen.If(
				jen.Id("got").Op(":=").Id(compiled).Dot("MatchBytes").Call(jen.Index().Byte().Parens(jen.Id("input"))),
				jen.Id("got").Op("!=").Id("want"),
			).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("MatchBytes(%q) = %v, want %v"), jen.Id("input"), jen.Id("got"), jen.Id("want")),
			),
		),
	)
	f.Line()

	f.Func().Id(fmt.Sprintf("Benchmark%sMatchString", name)).Params(jen.Id("b").Op("*").Qual("testing", "B")).Block(
		jen.Id("b").Dot("ReportAllocs").Call(),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("b").Dot("N"), jen.Id("i").Op("++")).Block(
			jen.For(jen.List(jen.Id("_"), jen.Id("input")).Op(":=").Range().Id(inputsVar)).Block(
				jen.Id(compiled).Dot("MatchString").Call(jen.Id("input")),
			),
		),
	)

	path := testFilePath(c.config.OutputFile)
	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save test file: %w", err)
	}
	if err := formatFile(path); err != nil {
		return fmt.Errorf("failed to format test file: %w", err)
	}

	c.logger.Log("Wrote %s with %d inputs", path, len(c.config.TestFileInputs))
	return nil
}
