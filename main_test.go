package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestRunRendersBatch(t *testing.T) {
	dir := t.TempDir()
	csv := "Name,Cost,Type,Lore,Attack,Armor,Image\n" +
		"Ember Beetle,3,Beetle - Fire,A spark that never sleeps under the bark.,4,2,missing.png\n" +
		"Shell Guard,2,Beetle - Earth,,1,5,\n"
	in := filepath.Join(dir, "cards.csv")
	if err := os.WriteFile(in, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	debugJSON := filepath.Join(dir, "debug", "layout.json")

	err := run(context.Background(), options{input: in, outDir: out, debugJSON: debugJSON, pattern: "${index}-${Name}.png"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, name := range []string{"1-Ember_Beetle.png", "2-Shell_Guard.png"} {
		img, err := imaging.Open(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 750 || b.Dy() != 1050 {
			t.Fatalf("%s has bounds %v", name, b)
		}
	}
	if _, err := os.Stat(debugJSON); err != nil {
		t.Fatalf("debug json not written: %v", err)
	}
}

func TestRunFatalErrors(t *testing.T) {
	dir := t.TempDir()
	if err := run(context.Background(), options{input: filepath.Join(dir, "nope.csv"), outDir: dir}); err == nil {
		t.Fatalf("missing record source must be fatal")
	}
	if err := run(context.Background(), options{configPath: filepath.Join(dir, "nope.yaml")}); err == nil {
		t.Fatalf("missing config must be fatal")
	}
}
