//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/voxelsplace/voxkit/utils"
	"github.com/voxelsplace/voxkit/vox"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	zUp     = flag.Bool("zup", false, "Keep the native Z-up axes instead of converting to Y-up")
	verbose = flag.Bool("v", false, "Verbose logging")
	comp    = flag.String("comp", "zlib", "Pack compression (none, zlib, zstd)")
	scale   = flag.Int("scale", 8, "Pixels per voxel for PNG previews")
)

func usage() {
	fmt.Println("Usage: voxtool [flags] <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  vox2glb input.vox output.glb               (convert .vox -> .glb, one node per model)")
	fmt.Println("  vox2png input.vox output.png [model]       (top-down preview of one model, default 0)")
	fmt.Println("  vox2voxpack output.voxpack input1.vox [input2.vox ...]   (pack multiple .vox into a .voxpack)")
	fmt.Println("  voxpack2vox input.voxpack output_dir       (unpack .voxpack into directory of .vox files)")
	fmt.Println("  voxpack2glb input.voxpack output.glb       (convert .voxpack -> .glb, one node per model)")
	fmt.Println("  info input.vox                             (print version, models, palette and materials)")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

// logger is set by -v and flushed before every exit.
var logger *zap.Logger

func syncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func fail(err error) {
	fmt.Println("Error:", err)
	syncLogger()
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fail(err)
		}
		logger = l
		defer syncLogger()
		vox.SetLogger(l)
		utils.SetLogger(l)
	}
	opts := vox.DefaultOptions()
	opts.YUp = !*zUp

	switch args[0] {
	case "vox2glb":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVOX2GLB(args[1], args[2], opts); err != nil {
			fail(err)
		}
	case "vox2png":
		if len(args) != 3 && len(args) != 4 {
			usage()
			os.Exit(1)
		}
		model := 0
		if len(args) == 4 {
			n, err := strconv.Atoi(args[3])
			if err != nil {
				fail(fmt.Errorf("invalid model index %q: %w", args[3], err))
			}
			model = n
		}
		if err := utils.RunVOX2PNG(args[1], args[2], opts, model, *scale); err != nil {
			fail(err)
		}
	case "vox2voxpack":
		if len(args) < 3 {
			usage()
			os.Exit(1)
		}
		c, err := vox.ParsePackCompression(*comp)
		if err != nil {
			fail(err)
		}
		if err := utils.CreatePack(args[2:], args[1], c); err != nil {
			fail(err)
		}
	case "voxpack2vox":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVOXPACK2VOX(args[1], args[2]); err != nil {
			fail(err)
		}
	case "voxpack2glb":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunVOXPACK2GLB(args[1], args[2], opts); err != nil {
			fail(err)
		}
	case "info":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		styled := term.IsTerminal(int(os.Stdout.Fd()))
		if err := utils.RunInfo(args[1], opts, os.Stdout, styled); err != nil {
			fail(err)
		}
		return
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
