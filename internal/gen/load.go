package gen

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"

	"go-object-inspector/internal/log"
)

// Load parses the packages matching patterns under dir and collects their
// registry metadata.
func Load(dir string, patterns ...string) ([]*Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax, Dir: dir}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "load packages in %s", dir)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, errors.Errorf("errors found while loading packages in %s", dir)
	}

	names, err := importNames(dir, pkgs)
	if err != nil {
		return nil, err
	}
	var out []*Package
	for _, p := range pkgs {
		info := Collect(p.Name, p.PkgPath, p.Syntax, names)
		if len(p.GoFiles) > 0 {
			info.Dir = filepath.Dir(p.GoFiles[0])
		}
		out = append(out, info)
	}
	return out, nil
}

// importNames resolves the package names behind the imports of pkgs, keyed by
// import path. Generated signatures name types by package name, which need
// not match the last element of the path.
func importNames(dir string, pkgs []*packages.Package) (map[string]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, p := range pkgs {
		for _, f := range p.Syntax {
			for _, imp := range f.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err != nil || seen[path] {
					continue
				}
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}
	names := make(map[string]string, len(paths))
	if len(paths) == 0 {
		return names, nil
	}
	deps, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: dir}, paths...)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve imports in %s", dir)
	}
	for _, d := range deps {
		if d.Name != "" {
			names[d.PkgPath] = d.Name
		}
	}
	return names, nil
}

// Write renders pkg into its directory. It returns the path written, or an
// empty path when the package has nothing to register.
func Write(pkg *Package, output, inspectorPath string) (string, error) {
	if pkg.Empty() {
		log.Info("Nothing to register", "package", pkg.Path)
		return "", nil
	}
	src, err := Render(pkg, inspectorPath)
	if err != nil {
		return "", err
	}
	if output == "" {
		output = DefaultOutput
	}
	target := filepath.Join(pkg.Dir, output)
	if err := os.WriteFile(target, src, 0644); err != nil {
		return "", errors.Wrapf(err, "write %s", target)
	}
	return target, nil
}
