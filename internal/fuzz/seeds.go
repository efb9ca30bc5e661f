package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 64 << 10
)

// languageSeeds покрывают все виды деклараций и частые ошибки.
var languageSeeds = []string{
	"",
	"#!/usr/bin/env kind\nmain = 1\n",
	"type Nat {\n  zero : Nat\n  #inline\n  succ (pred : Nat) : Nat\n}\n",
	"type Vec (t : Type) ~ (n : Nat) {\n  nil : Vec t Zero\n}\n",
	"record Pair (a : Type) (b : Type) {\n  fst : a\n  snd : b\n}\n",
	"add (Succ x) y = Succ (add x y)\n",
	"f <t : Type> +(x : t) -(y : t) : t\n",
	"f\n  (x : Nat)\n  <y>\n  : Nat\n  {\n    x\n  }\n",
	"use Data.List as L\n",
	"//! doc\na = 1 // tail\n// only\nb = 2\n",
	"a = 1; b = 2\n",
	"main = if x { 1 } else { 2 }\n",
	"xs = [1, 2; 3,]\n",
	"s = \"text\\n\" c = 'x'\n",
	"f = (g x\nh = 1\n",
	"one = 1\ntwo = = 2\nthree = 3\n",
	"a = \"open\n",
	"x = `\n",
	"{ { { ( [ \n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет исходники из testdata/, если каталог есть.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".kind" && ext != ".kind2" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
