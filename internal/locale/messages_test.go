package locale

import (
	"strings"
	"testing"

	"co/internal/diag"
)

func TestEveryLocaleFormatsEveryCode(t *testing.T) {
	args := Args{
		Text:       "+",
		Name:       "foo",
		Kind:       KindFunction,
		TypeName:   "int",
		SecondType: "double",
		Stmt:       "if",
	}
	for code := diag.IntegerLiteralOutOfRange; code <= diag.ReturnValueIgnored; code++ {
		for _, loc := range []Locale{En, Be, Ru} {
			msg := NewCatalog(loc).Format(code, args)
			if strings.TrimSpace(msg) == "" {
				t.Fatalf("empty message for %s in %s", code, loc)
			}
		}
	}
}

func TestLocalesDiffer(t *testing.T) {
	args := Args{Name: "x"}
	en := NewCatalog(En).Format(diag.UnknownName, args)
	be := NewCatalog(Be).Format(diag.UnknownName, args)
	ru := NewCatalog(Ru).Format(diag.UnknownName, args)
	if en == be || en == ru || be == ru {
		t.Fatalf("locales must differ: %q / %q / %q", en, be, ru)
	}
	for _, msg := range []string{en, be, ru} {
		if !strings.Contains(msg, "'x'") {
			t.Fatalf("message must name the entity: %q", msg)
		}
	}
}

func TestGrammaticalAgreement(t *testing.T) {
	ru := NewCatalog(Ru)
	fn := ru.Format(diag.FunctionDefinitionWithoutBody, Args{Kind: KindFunction, Name: "f"})
	if !strings.Contains(fn, "должна") {
		t.Fatalf("feminine noun must take the feminine verb: %q", fn)
	}
	method := ru.Format(diag.MethodDefinitionWithoutBody, Args{Kind: KindMethod, Name: "m"})
	if !strings.Contains(method, "должен") {
		t.Fatalf("masculine noun must take the masculine verb: %q", method)
	}

	ambiguous := ru.Format(diag.AmbiguousOverloadedCall, Args{Kind: KindFunction, Name: "f"})
	if !strings.Contains(ambiguous, "перегруженной функции") {
		t.Fatalf("adjective must agree in gender and case: %q", ambiguous)
	}
}

func TestEnglishDeterminers(t *testing.T) {
	en := NewCatalog(En)
	got := en.Format(diag.MainIsNotFunction, Args{Kind: KindVariable})
	if !strings.Contains(got, "a variable") {
		t.Fatalf("indefinite article missing: %q", got)
	}
	got = en.Format(diag.InvalidCallArguments, Args{Kind: KindFunction, Name: "f"})
	if !strings.Contains(got, "the function") {
		t.Fatalf("definite article missing: %q", got)
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		explicit string
		want     Locale
	}{
		{"en", En},
		{"ru", Ru},
		{"be", Be},
		{"ru_RU.UTF-8", Ru},
		{"be_BY.UTF-8", Be},
		{"en_US.UTF-8", En},
	}
	for _, tc := range cases {
		t.Run(tc.explicit, func(t *testing.T) {
			t.Setenv("LC_ALL", "")
			t.Setenv("LC_MESSAGES", "")
			t.Setenv("LANG", "")
			if got := Detect(tc.explicit); got != tc.want {
				t.Fatalf("Detect(%q) = %v, want %v", tc.explicit, got, tc.want)
			}
		})
	}
}

func TestDetectFromEnvironment(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ru_RU.UTF-8")
	if got := Detect(""); got != Ru {
		t.Fatalf("LANG fallback = %v, want Ru", got)
	}
}

func TestNoteHelpers(t *testing.T) {
	for _, loc := range []Locale{En, Be, Ru} {
		c := NewCatalog(loc)
		if c.FirstDefinedHere() == "" {
			t.Fatalf("empty note in %s", loc)
		}
		if !strings.Contains(c.Candidate("void f(int)"), "void f(int)") {
			t.Fatalf("candidate note must embed the signature")
		}
	}
}
