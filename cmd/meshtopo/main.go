// SPDX-License-Identifier: MIT

// Command meshtopo loads or generates meshes, derives the requested
// incidence relations and prints a dump of each mesh topology.
//
//	meshtopo [flags] [file.yaml|file.mesh|file.msgpack ...]
//
// Examples:
//
//	meshtopo -gen tet:2x2x2 -rel 2-2,3-1 -header
//	meshtopo -rel all -cache .meshcache -workers 4 a.mesh b.yaml
//	meshtopo -gen quad:8x8 -save square.yaml
//	meshtopo -gen tri:16x16 -rel none -header -bfs -from 5 -depth 3
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
)

func main() {
	fset := flag.NewFlagSet("meshtopo", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	cfg := config{}
	cfg.register(fset)
	if err := fset.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	cfg.inputs = fset.Args()

	err := run(context.Background(), cfg, os.Stdout)
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "meshtopo:", err)
		os.Exit(1)
	}
}
