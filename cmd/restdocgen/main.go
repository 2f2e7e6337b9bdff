// Command restdocgen generates restdoc resources from annotated handler methods.
//
// A method is documented when its doc comment carries the directive
//
//	//restdoc:api [leading comment]
//
// The method name, lower-cased, is the operation name, its string parameters are
// the path arguments and the rest of the doc comment is parsed as the operation
// docstring. For every receiver type with documented methods restdocgen writes
// <type>_restdoc.go next to the source with a Resource method:
//
//	//go:generate go run github.com/bjaus/restdoc/cmd/restdocgen
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

func main() {
	dir := flag.String("dir", ".", "directory to parse files from")
	help := flag.Bool("help", false, "print help string and exit")
	recursive := flag.Bool("recursive", false, "generate resources for all child packages recursively")
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if err := run(*dir, *recursive); err != nil {
		slog.Error("restdocgen failed", "err", err)
		os.Exit(1)
	}
}

func run(dir string, recursive bool) error {
	files, err := generate(dir, recursive)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, f.src, 0o644); err != nil { //nolint:gosec // generated source
			return errors.Wrapf(err, "write %s", f.path)
		}
		slog.Info("generated", "file", f.path)
	}
	return nil
}

type generatedFile struct {
	path string
	src  []byte
}

// generate loads the packages under dir and renders a file per documented
// receiver type.
func generate(dir string, recursive bool) ([]generatedFile, error) {
	cfg := packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedTypes |
			packages.NeedTypesInfo,
		Dir: dir,
	}
	pattern := "."
	if recursive {
		pattern = "./..."
	}

	pkgs, err := packages.Load(&cfg, pattern)
	if err != nil {
		return nil, errors.Wrap(err, "load packages")
	}

	var files []generatedFile
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Errorf("package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}

		resources, err := scan(pkg)
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", pkg.PkgPath)
		}
		for _, res := range resources {
			path, src, err := render(res)
			if err != nil {
				return nil, err
			}
			files = append(files, generatedFile{path: path, src: src})
		}
	}
	return files, nil
}
