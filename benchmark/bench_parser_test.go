package benchmark

import (
	"io"
	"testing"

	"github.com/xiaohunqupo/argumentum/argumentum"
)

// Category: parser

func BenchmarkParseSimple(b *testing.B) {
	p := argumentum.New("bench", "")
	p.Config().Out(io.Discard).Err(io.Discard)
	var port int
	var verbose bool
	cfg, err := p.Add(argumentum.Bind(&port), "-p", "--port")
	if err != nil {
		b.Fatal(err)
	}
	cfg.NArgs(1)
	if _, err := p.Add(argumentum.Bind(&verbose), "-v", "--verbose"); err != nil {
		b.Fatal(err)
	}

	args := []string{"-p", "9000", "--verbose"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := p.ParseArgs(args)
		if err != nil {
			b.Fatal(err)
		}
		if !res.Ok() {
			b.Fatalf("parse failed: %v", res.Errors)
		}
	}
}

func BenchmarkParsePositionals(b *testing.B) {
	p := argumentum.New("bench", "")
	p.Config().Out(io.Discard).Err(io.Discard)
	var inputs []string
	var output string
	if _, err := p.Add(argumentum.BindSlice(&inputs), "inputs"); err != nil {
		b.Fatal(err)
	}
	if _, err := p.Add(argumentum.Bind(&output), "output"); err != nil {
		b.Fatal(err)
	}

	args := []string{"a", "b", "c", "d", "out.txt"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := p.ParseArgs(args)
		if err != nil {
			b.Fatal(err)
		}
		if !res.Ok() {
			b.Fatalf("parse failed: %v", res.Errors)
		}
	}
}

func BenchmarkParseClusters(b *testing.B) {
	p := argumentum.New("bench", "")
	p.Config().Out(io.Discard).Err(io.Discard)
	var a, c, v bool
	var num int
	p.Add(argumentum.Bind(&a), "-a")
	p.Add(argumentum.Bind(&c), "-c")
	p.Add(argumentum.Bind(&v), "-v")
	cfg, _ := p.Add(argumentum.Bind(&num), "-n")
	cfg.NArgs(1)

	args := []string{"-acv", "-n42"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := p.ParseArgs(args)
		if err != nil {
			b.Fatal(err)
		}
		if !res.Ok() {
			b.Fatalf("parse failed: %v", res.Errors)
		}
	}
}

func BenchmarkParseWithErrors(b *testing.B) {
	p := argumentum.New("bench", "")
	p.Config().Out(io.Discard).Err(io.Discard)
	var num int
	cfg, _ := p.Add(argumentum.Bind(&num), "--num")
	cfg.NArgs(1)

	args := []string{"--num", "not-a-number", "--unknown"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := p.ParseArgs(args)
		if err != nil {
			b.Fatal(err)
		}
		if res.Ok() {
			b.Fatal("expected parse errors")
		}
	}
}
