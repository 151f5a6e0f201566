package parm_test

import (
	goerrors "errors"
	"testing"

	"github.com/mistwood/term/errors"
	"github.com/mistwood/term/parm"
)

func expand(t *testing.T, template string, params ...parm.Param) string {
	t.Helper()
	out, err := parm.Expand([]byte(template), params, nil)
	if err != nil {
		t.Fatalf("Expand(%q): %v", template, err)
	}
	return string(out)
}

func expectKind(t *testing.T, template string, kind errors.Kind, params ...parm.Param) {
	t.Helper()
	out, err := parm.Expand([]byte(template), params, nil)
	if err == nil {
		t.Fatalf("Expand(%q) = %q, want %s error", template, out, kind)
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseExpand, Kind: kind}) {
		t.Fatalf("Expand(%q) error = %v, want kind %s", template, err, kind)
	}
}

func TestLiteralPassthrough(t *testing.T) {
	if got := expand(t, "\x1b[0m"); got != "\x1b[0m" {
		t.Errorf("got %q", got)
	}
}

func TestPercentEscape(t *testing.T) {
	if got := expand(t, "%%"); got != "%" {
		t.Errorf("got %q", got)
	}
	// Same result regardless of arguments.
	if got := expand(t, "100%%", parm.Number(5), parm.Str([]byte("x"))); got != "100%" {
		t.Errorf("got %q", got)
	}
}

func TestPushAndPrint(t *testing.T) {
	if got := expand(t, "%p1%d", parm.Number(42)); got != "42" {
		t.Errorf("got %q", got)
	}
	if got := expand(t, "%p2%d%p1%d", parm.Number(1), parm.Number(2)); got != "21" {
		t.Errorf("got %q", got)
	}
}

func TestMissingArgumentIsError(t *testing.T) {
	expectKind(t, "%p1%d", errors.KindMissingArg)
	expectKind(t, "%p3%d", errors.KindMissingArg, parm.Number(1), parm.Number(2))
}

func TestStackUnderflow(t *testing.T) {
	expectKind(t, "%d", errors.KindStackUnderflow)
	expectKind(t, "%c", errors.KindStackUnderflow)
	expectKind(t, "%s", errors.KindStackUnderflow)
	expectKind(t, "%p1%+%d", errors.KindStackUnderflow, parm.Number(1))
}

func TestUnknownDirective(t *testing.T) {
	expectKind(t, "%z", errors.KindBadDirective)
	expectKind(t, "%", errors.KindBadDirective)
	expectKind(t, "%p0%d", errors.KindBadDirective, parm.Number(1))
}

func TestConstants(t *testing.T) {
	if got := expand(t, "%{123}%d"); got != "123" {
		t.Errorf("got %q", got)
	}
	if got := expand(t, "%'x'%d"); got != "120" {
		t.Errorf("got %q", got)
	}
	if got := expand(t, "%'x'%c"); got != "x" {
		t.Errorf("got %q", got)
	}
	expectKind(t, "%{12", errors.KindBadDirective)
	expectKind(t, "%{}%d", errors.KindBadDirective)
	expectKind(t, "%{1a}%d", errors.KindBadDirective)
	expectKind(t, "%'xy'%d", errors.KindBadDirective)
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"%{7}%{3}%+%d", "10"},
		{"%{7}%{3}%-%d", "4"},
		{"%{7}%{3}%*%d", "21"},
		{"%{7}%{3}%/%d", "2"},
		{"%{7}%{3}%m%d", "1"},
		{"%{12}%{10}%&%d", "8"},
		{"%{12}%{10}%|%d", "14"},
		{"%{12}%{10}%^%d", "6"},
		{"%{0}%~%d", "-1"},
	}
	for _, tt := range tests {
		if got := expand(t, tt.template); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	expectKind(t, "%{1}%{0}%/%d", errors.KindBadDirective)
	expectKind(t, "%{1}%{0}%m%d", errors.KindBadDirective)
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"%{1}%{1}%=%d", "1"},
		{"%{1}%{2}%=%d", "0"},
		{"%{2}%{1}%>%d", "1"},
		{"%{1}%{2}%>%d", "0"},
		{"%{1}%{2}%<%d", "1"},
		{"%{1}%{1}%<%d", "0"},
		{"%{1}%{1}%A%d", "1"},
		{"%{1}%{0}%A%d", "0"},
		{"%{0}%{1}%O%d", "1"},
		{"%{0}%{0}%O%d", "0"},
		{"%{0}%!%d", "1"},
		{"%{5}%!%d", "0"},
	}
	for _, tt := range tests {
		if got := expand(t, tt.template); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestOperandOrder(t *testing.T) {
	// Second-from-top is the left operand.
	if got := expand(t, "%p1%p2%-%d", parm.Number(10), parm.Number(3)); got != "7" {
		t.Errorf("got %q", got)
	}
}

func TestTypeMismatch(t *testing.T) {
	expectKind(t, "%p1%d", errors.KindTypeMismatch, parm.Str([]byte("x")))
	expectKind(t, "%p1%s", errors.KindTypeMismatch, parm.Number(1))
	expectKind(t, "%p1%p1%+%d", errors.KindTypeMismatch, parm.Str([]byte("x")))
}

func TestStringOutput(t *testing.T) {
	if got := expand(t, "<%p1%s>", parm.Str([]byte("hello"))); got != "<hello>" {
		t.Errorf("got %q", got)
	}
}

func TestIncrement(t *testing.T) {
	if got := expand(t, "%i%p1%d", parm.Number(1)); got != "2" {
		t.Errorf("got %q", got)
	}
	// The classic cursor-address template.
	got := expand(t, "\x1b[%i%p1%d;%p2%dH", parm.Number(0), parm.Number(0))
	if got != "\x1b[1;1H" {
		t.Errorf("got %q", got)
	}
	// Only the first two arguments are adjusted.
	got = expand(t, "%i%p3%d", parm.Number(0), parm.Number(0), parm.Number(5))
	if got != "5" {
		t.Errorf("got %q", got)
	}
	// Applied once per expansion even when the directive repeats.
	if got := expand(t, "%i%i%p1%d", parm.Number(1), parm.Number(1)); got != "2" {
		t.Errorf("got %q", got)
	}
	// No arguments supplied: nothing to adjust.
	if got := expand(t, "%iok"); got != "ok" {
		t.Errorf("got %q", got)
	}
}

func TestConditional(t *testing.T) {
	const template = "%p1%{1}%=%t%{10}%e%{20}%;%d"
	if got := expand(t, template, parm.Number(1)); got != "10" {
		t.Errorf("then-branch: got %q", got)
	}
	if got := expand(t, template, parm.Number(2)); got != "20" {
		t.Errorf("else-branch: got %q", got)
	}
}

func TestConditionalNoElse(t *testing.T) {
	const template = "a%p1%tb%;c"
	if got := expand(t, template, parm.Number(1)); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := expand(t, template, parm.Number(0)); got != "ac" {
		t.Errorf("got %q", got)
	}
}

func TestConditionalSkippedBranchDoesNotExecute(t *testing.T) {
	// The untaken branch references an unsupplied argument and would
	// underflow the stack; it must not run at all.
	got := expand(t, "%?%p1%t1%e%p9%d%d%;", parm.Number(1))
	if got != "1" {
		t.Errorf("got %q", got)
	}
	// The skipped branch must not touch variables either.
	got = expand(t, "%?%p1%t%e%{9}%Px%;%gx%d", parm.Number(1))
	if got != "0" {
		t.Errorf("got %q", got)
	}
}

func TestConditionalNested(t *testing.T) {
	// setaf-style template: three-way split on the argument.
	const setaf = "%?%p1%{8}%<%t3%p1%d%e%p1%{16}%<%t9%p1%{8}%-%d%e38;5;%p1%d%;%;"
	tests := []struct {
		arg  int
		want string
	}{
		{2, "32"},
		{9, "91"},
		{42, "38;5;42"},
	}
	for _, tt := range tests {
		if got := expand(t, setaf, parm.Number(tt.arg)); got != tt.want {
			t.Errorf("setaf(%d) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}

func TestUnbalancedConditional(t *testing.T) {
	expectKind(t, "%?%p1%t", errors.KindUnbalancedCond, parm.Number(0))
	expectKind(t, "%?%p1%tx%e", errors.KindUnbalancedCond, parm.Number(1))
}

func TestFormatClauses(t *testing.T) {
	tests := []struct {
		template string
		arg      parm.Param
		want     string
	}{
		{"%p1%03d", parm.Number(7), "007"},
		{"%p1%3d", parm.Number(7), "  7"},
		{"%p1%:-3dx", parm.Number(7), "7  x"},
		{"%p1%:+d", parm.Number(7), "+7"},
		{"%p1%x", parm.Number(255), "ff"},
		{"%p1%X", parm.Number(255), "FF"},
		{"%p1%o", parm.Number(8), "10"},
		{"%p1%#x", parm.Number(255), "0xff"},
		{"%p1%.2d", parm.Number(7), "07"},
		{"%p1%8s", parm.Str([]byte("hi")), "      hi"},
		{"%p1%.2s", parm.Str([]byte("hello")), "he"},
	}
	for _, tt := range tests {
		if got := expand(t, tt.template, tt.arg); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestMalformedFormatClause(t *testing.T) {
	expectKind(t, "%p1%03", errors.KindBadFormat, parm.Number(1))
	expectKind(t, "%p1%3q", errors.KindBadFormat, parm.Number(1))
	expectKind(t, "%p1%:", errors.KindBadFormat, parm.Number(1))
	expectKind(t, "%p1%#3z", errors.KindBadFormat, parm.Number(1))
}

func TestVariables(t *testing.T) {
	vars := parm.NewVariables()

	// Store into a dynamic slot and read it back within one expansion.
	out, err := parm.Expand([]byte("%p1%Pa%ga%d%ga%d"), []parm.Param{parm.Number(3)}, vars)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "33" {
		t.Errorf("got %q", out)
	}

	// Dynamic slots are cleared between expansions.
	out, err = parm.Expand([]byte("%ga%d"), nil, vars)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "0" {
		t.Errorf("dynamic slot survived: got %q", out)
	}

	// Static slots persist across expansions on the same store.
	if _, err := parm.Expand([]byte("%p1%PQ"), []parm.Param{parm.Number(7)}, vars); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	out, err = parm.Expand([]byte("%gQ%d"), nil, vars)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "7" {
		t.Errorf("static slot lost: got %q", out)
	}
}

func TestVariableStoresAreIndependent(t *testing.T) {
	a, b := parm.NewVariables(), parm.NewVariables()
	if _, err := parm.Expand([]byte("%{5}%PS"), nil, a); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	out, err := parm.Expand([]byte("%gS%d"), nil, b)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if string(out) != "0" {
		t.Errorf("static state leaked across stores: got %q", out)
	}
}

func TestUninitializedVariableReadsZero(t *testing.T) {
	if got := expand(t, "%gz%d%gZ%d"); got != "00" {
		t.Errorf("got %q", got)
	}
}

func TestErrorDiscardsPartialOutput(t *testing.T) {
	out, err := parm.Expand([]byte("abc%p1%d"), nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if out != nil {
		t.Errorf("partial output returned: %q", out)
	}
}

func TestCallerArgumentsNotMutated(t *testing.T) {
	params := []parm.Param{parm.Number(1), parm.Number(2)}
	if _, err := parm.Expand([]byte("%i%p1%d"), params, nil); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if params[0].Num != 1 || params[1].Num != 2 {
		t.Errorf("caller slice mutated: %+v", params)
	}
}

func TestRealWorldTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   []parm.Param
		want     string
	}{
		{"setaf 8-color", "\x1b[3%p1%dm", []parm.Param{parm.Number(4)}, "\x1b[34m"},
		{"setab 8-color", "\x1b[4%p1%dm", []parm.Param{parm.Number(1)}, "\x1b[41m"},
		{"cup", "\x1b[%i%p1%d;%p2%dH", []parm.Param{parm.Number(3), parm.Number(7)}, "\x1b[4;8H"},
		{"csr", "\x1b[%i%p1%d;%p2%dr", []parm.Param{parm.Number(0), parm.Number(23)}, "\x1b[1;24r"},
		{"rep", "%p1%c\x1b[%p2%{1}%-%db", []parm.Param{parm.Number('x'), parm.Number(5)}, "x\x1b[4b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := parm.Expand([]byte(tt.template), tt.params, nil)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}
