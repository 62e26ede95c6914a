// Copyright 2025, Cassitly

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cassitly/cvere-reality/emulator"
)

func main() {
	var base uint
	var cycles uint64
	var script string
	var trace bool
	var dump bool
	var verbose bool

	flag.UintVar(&base, "b", 0, "Load address for the program image")
	flag.Uint64Var(&cycles, "c", 0, "Cycle budget (0 for the default)")
	flag.StringVar(&script, "s", "", ".star syscall handler script")
	flag.BoolVar(&trace, "t", false, "Trace every executed instruction")
	flag.BoolVar(&dump, "d", false, "Dump machine state after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one hex image file ('-' for stdin)", os.Args[0])
	}

	m := emulator.NewMachine()
	m.Verbose = trace
	m.Console.Input = os.Stdin
	m.Console.Output = os.Stdout

	if len(script) != 0 {
		if err := m.LoadScript(script, nil); err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		if verbose {
			log.Printf("bound handlers from %v", script)
		}
	}

	image := flag.Arg(0)
	in := os.Stdin
	if image != "-" {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()
		in = inf
	}

	if base > 0xFFFF {
		log.Fatalf("%v: load address 0x%X out of range", os.Args[0], base)
	}

	if err := m.LoadHex(in, uint16(base)); err != nil {
		log.Fatalf("%v: %v", image, err)
	}
	if verbose {
		log.Printf("loaded %v at 0x%04X", image, base)
	}

	count, err := m.Run(cycles)
	if err != nil {
		log.Fatalf("after %d cycles: %v", count, err)
	}
	if verbose {
		log.Printf("halted after %d cycles", count)
	}

	if dump {
		fmt.Print(m.VM.String())
	}
}
