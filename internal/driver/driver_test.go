package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"co/internal/diag"
	"co/internal/locale"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.co")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileHappyPath(t *testing.T) {
	path := writeSource(t, `
		void main() {
			int x = 5;
			writeIntLn(x);
		}
	`)
	res, err := Compile(path, Options{EmitC: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode() != 0 {
		t.Fatalf("exit = %d, diagnostics: %v", res.ExitCode(), res.Bag.Items())
	}
	c := string(res.CSource)
	if !strings.Contains(c, "co_main") {
		t.Fatalf("no co_main in output")
	}
}

func TestCompileUserError(t *testing.T) {
	path := writeSource(t, `
		void main() { println(y); }
	`)
	res, err := Compile(path, Options{EmitC: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode() != 1 {
		t.Fatalf("exit = %d", res.ExitCode())
	}
	if res.CSource != nil {
		t.Fatalf("no C must be emitted for a failing program")
	}
	codes := res.Bag.Items()
	if len(codes) != 1 || codes[0].Code != diag.UnknownName {
		t.Fatalf("diagnostics = %v", codes)
	}
}

func TestCompileInternalError(t *testing.T) {
	path := writeSource(t, `
		type A { B b; }
		type B { A a; }
		void main() { A a; }
	`)
	res, err := Compile(path, Options{EmitC: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode() != 2 {
		t.Fatalf("cyclic layout must exit 2, got %d (internal: %v)", res.ExitCode(), res.Internal)
	}
}

func TestCompileMissingFile(t *testing.T) {
	_, err := Compile(filepath.Join(t.TempDir(), "nope.co"), Options{})
	if err == nil {
		t.Fatalf("missing input must fail")
	}
}

func TestDiagnosticOrderIsDeterministic(t *testing.T) {
	path := writeSource(t, `
		void main() {
			println(b);
			println(a);
		}
	`)
	first, err := Compile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("runs differ in count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Primary != b[i].Primary {
			t.Fatalf("diagnostic %d differs across runs", i)
		}
	}
	if a[0].Primary.Start > a[1].Primary.Start {
		t.Fatalf("diagnostics must come in source order")
	}
}

func TestCheckUsesDiskCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("co-test")
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, `
		void main() { println(y); }
	`)

	first, err := Check(path, Options{Locale: locale.En}, cache)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Check(path, Options{Locale: locale.En}, cache)
	if err != nil {
		t.Fatal(err)
	}

	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("diagnostics lost through the cache: %d vs %d", len(a), len(b))
	}
	if a[0].Code != b[0].Code || a[0].Message != b[0].Message || a[0].Primary != b[0].Primary {
		t.Fatalf("cached diagnostic differs: %+v vs %+v", a[0], b[0])
	}
}

func TestCheckCacheIsLocaleKeyed(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("co-test")
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, `
		void main() { println(y); }
	`)

	en, err := Check(path, Options{Locale: locale.En}, cache)
	if err != nil {
		t.Fatal(err)
	}
	ru, err := Check(path, Options{Locale: locale.Ru}, cache)
	if err != nil {
		t.Fatal(err)
	}
	if en.Bag.Items()[0].Message == ru.Bag.Items()[0].Message {
		t.Fatalf("locale change must invalidate the cached messages")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("co-test")
	if err != nil {
		t.Fatal(err)
	}
	var key [32]byte
	key[0] = 7
	payload := &DiskPayload{
		Locale: "en",
		Diagnostics: []cachedDiag{
			{Severity: 2, Code: 17, Message: "unknown name 'y'", Start: 4, End: 5},
		},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatal(err)
	}
	got, err := cache.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got.Diagnostics) != 1 || got.Diagnostics[0].Message != payload.Diagnostics[0].Message {
		t.Fatalf("round trip lost data: %+v", got)
	}

	var miss [32]byte
	miss[0] = 9
	if got, err := cache.Get(miss); err != nil || got != nil {
		t.Fatalf("miss = %+v, %v", got, err)
	}
}
