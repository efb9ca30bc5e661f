package parser

// Тесты выражений: приоритеты, примитивы, ключевые формы.

import (
	"testing"

	"kind/internal/ast"
)

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"call", "f = g a b", "(rule f [] = (call g a b))"},
		{"bare lambda", "id = x => x", "(rule id [] = (=> x x))"},
		{
			"explicit lambdas",
			"k = (x : Nat) => (y) => x",
			"(rule k [] = (=> (x : Nat) (=> (y) x)))",
		},
		{
			"named arrow is right associative",
			"t : (x : Nat) -> Nat -> Nat",
			"(val t [] : (-> (x : Nat) (-> Nat Nat)))",
		},
		{
			"erased arrow",
			"e : ~ (t : Type) -> t -> t",
			"(val e [] : (-> ~(t : Type) (-> t t)))",
		},
		{"erased positional arrow", "e : ~Nat -> Nat", "(val e [] : (-> ~Nat Nat))"},
		{"arrow over call", "v : Vec Nat n -> Nat", "(val v [] : (-> (call Vec Nat n) Nat))"},
		{"sigma", "s : [x : Nat] -> Vec x", "(val s [] : (sigma [x : Nat] (call Vec x)))"},
		{"annotation chain", "a = x :: Nat :: Type", "(rule a [] = (ann x Nat Type))"},
		{"annotation with arrow type", "a = f :: Nat -> Nat", "(rule a [] = (ann f (-> Nat Nat)))"},
		{"op form", "s = (+ 1 2)", "(rule s [] = (op + 1 2))"},
		{"op form nested", "s = (== (* a 2) b)", "(rule s [] = (op == (op * a 2) b))"},
		{"op form annotated argument", "s = (+ x :: Nat)", "(rule s [] = (op + (ann x Nat)))"},
		{"op form lambda argument", "s = (+ a x => x)", "(rule s [] = (op + a (=> x x)))"},
		{"op form arrow argument", "s = (* a -> b)", "(rule s [] = (op * (-> a b)))"},
		{"op form explicit lambda", "s = (+ (x : Nat) => x)", "(rule s [] = (op + (=> (x : Nat) x)))"},
		{"erased arrow in parens is a group", "t : (~T -> U)", "(val t [] : (group (-> ~T U)))"},
		{"group", "g = (f x)", "(rule g [] = (group (call f x)))"},
		{"array", "xs = [1, 2, 3]", "(rule xs [] = (array 1 2 3))"},
		{"array with line breaks", "ys = [\n  1\n  2,\n]", "(rule ys [] = (array 1 2))"},
		{"empty array", "zs = []", "(rule zs [] = (array))"},
		{"help", "h = ?", "(rule h [] = ?)"},
		{"help with name", "h = ?goal", "(rule h [] = ?goal)"},
		{"if", "m = if c { a } else { b }", "(rule m [] = (if c {a} {b}))"},
		{"if multi-line", "m = if c {\n  a\n} else {\n  b\n}", "(rule m [] = (if c {a} {b}))"},
		{"literals", "s = f \"hi\" 'c' 0x1Fu120 7n 1.5", "(rule s [] = (call f \"hi\" 'c' 0x1Fu120 7n 1.5))"},
		{"synthetic name", "f = %x.y", "(rule f [] = %x.y)"},
		{"call continues inside parens", "f = (g\n  a\n  b)", "(rule f [] = (group (call g a b)))"},
		{
			"do block",
			"m = do IO {\n  ask x = get\n  return x\n}",
			"(rule m [] = (do IO {(ask x = get); (return x)}))",
		},
		{
			"let chains into next statement",
			"main : IO Unit {\n  ask line = read\n  let (Pair a b) = split line\n  return a\n}",
			"(val main [] : (call IO Unit) {(ask line = read); (let (Pair a b) = (call split line) (return a))})",
		},
		{
			"open chains into next statement",
			"g : Nat {\n  open Pair p\n  p.fst\n}",
			"(val g [] : Nat {(open Pair p p.fst)})",
		},
		{"open without next", "g : Nat {\n  open Pair p\n}", "(val g [] : Nat {(open Pair p)})"},
		{"let at top level stops at line break", "v = let x = 1\nw = x", "(rule v [] = (let x = 1))\n(rule w [] = x)"},
		{"return", "r = return (f x)", "(rule r [] = (return (group (call f x))))"},
		{"specialize", "sp = specialize add into #2 in add", "(rule sp [] = (specialize add into #2 in add))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.input); got != tt.want {
				t.Fatalf("\ninput: %q\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

// TestAccessChainIsFlat: `a.b/c.d` — один идентификатор с сегментами [.b /c .d].
func TestAccessChainIsFlat(t *testing.T) {
	arenas, file, bag := parseSource(t, "f = a.b/c.d")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(bag))
	}
	rule, _ := arenas.Decls.Rule(onlyDecl(t, arenas, file))
	name, ok := arenas.Exprs.Ident(rule.Value)
	if !ok {
		t.Fatalf("value is %v, want identifier", arenas.Exprs.Get(rule.Value).Kind)
	}
	if arenas.Str(name.Base) != "a" || name.Upper {
		t.Fatalf("base = %q upper=%v", arenas.Str(name.Base), name.Upper)
	}
	want := []struct {
		kind ast.AccessKind
		text string
	}{{ast.AccessDot, "b"}, {ast.AccessSlash, "c"}, {ast.AccessDot, "d"}}
	if len(name.Access) != len(want) {
		t.Fatalf("segments = %d, want %d", len(name.Access), len(want))
	}
	for i, w := range want {
		seg := name.Access[i]
		if seg.Kind != w.kind || arenas.Str(seg.Text) != w.text {
			t.Fatalf("segment %d = %v %q, want %v %q", i, seg.Kind, arenas.Str(seg.Text), w.kind, w.text)
		}
	}
}

// TestCaseDiscrimination: регистр первой буквы определяет роль имени.
func TestCaseDiscrimination(t *testing.T) {
	arenas, file, bag := parseSource(t, "f = foo Foo _bar %Baz")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(bag))
	}
	rule, _ := arenas.Decls.Rule(onlyDecl(t, arenas, file))
	call, ok := arenas.Exprs.Call(rule.Value)
	if !ok {
		t.Fatal("expected call")
	}
	ids := append([]ast.ExprID{call.Callee}, call.Args...)
	wantUpper := []bool{false, true, false, true}
	for i, id := range ids {
		name, ok := arenas.Exprs.Ident(id)
		if !ok {
			t.Fatalf("arg %d is not an identifier", i)
		}
		if name.Upper != wantUpper[i] {
			t.Fatalf("%s: upper = %v, want %v", name.Format(arenas.Strings), name.Upper, wantUpper[i])
		}
	}
	last, _ := arenas.Exprs.Ident(ids[3])
	if !last.Synthetic || arenas.Str(last.Base) != "Baz" {
		t.Fatalf("synthetic name = %+v", last)
	}
}

func TestLiteralKinds(t *testing.T) {
	arenas, file, bag := parseSource(t, "f = g 42 42u60 0x1Fu120 7n 'c' \"s\"")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(bag))
	}
	rule, _ := arenas.Decls.Rule(onlyDecl(t, arenas, file))
	call, _ := arenas.Exprs.Call(rule.Value)
	want := []ast.LitKind{ast.LitF60, ast.LitU60, ast.LitU120, ast.LitN, ast.LitChar, ast.LitString}
	if len(call.Args) != len(want) {
		t.Fatalf("args = %d", len(call.Args))
	}
	for i, id := range call.Args {
		lit, ok := arenas.Exprs.Lit(id)
		if !ok || lit.Kind != want[i] {
			t.Fatalf("arg %d: %+v, want %v", i, lit, want[i])
		}
	}
}

func TestDeterminism(t *testing.T) {
	src := "record P (a : Type) {\n  x : a\n}\n" +
		"f (n : Nat) : Nat {\n  match n k { Zero => 0 Succ p => (f p) }\n}\n" +
		"g = [a, (+ 1 2), ?h]\n"
	first := mustParse(t, src)
	for i := 0; i < 3; i++ {
		if again := mustParse(t, src); again != first {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, again, first)
		}
	}
}
