package main

import (
	"go/ast"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

const directive = "//restdoc:api"

const generatedSuffix = "_restdoc.go"

// resourceDesc is one receiver type with at least one //restdoc:api method.
type resourceDesc struct {
	Package     string
	Type        string
	Recv        string
	Pointer     bool
	Description string
	Operations  []operationDesc

	dir string
}

type operationDesc struct {
	Name      string
	Method    string
	Arguments []string
	Doc       string
	Comment   string
}

// scan collects the documented resources of pkg, ordered by type name.
func scan(pkg *packages.Package) ([]resourceDesc, error) {
	byType := map[string]*resourceDesc{}

	for _, file := range pkg.Syntax {
		filename := pkg.Fset.File(file.Pos()).Name()
		if strings.HasSuffix(filename, generatedSuffix) {
			continue
		}

		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || len(fn.Recv.List) != 1 {
				continue
			}
			comment, ok := findDirective(fn.Doc)
			if !ok {
				continue
			}

			typeName, pointer := receiverType(fn.Recv.List[0].Type)
			if typeName == "" {
				return nil, errors.Errorf("%s: cannot document method %s of a generic receiver", pkg.Fset.Position(fn.Pos()), fn.Name.Name)
			}

			op, err := describeMethod(pkg, fn)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: %s.%s", pkg.Fset.Position(fn.Pos()), typeName, fn.Name.Name)
			}
			op.Comment = comment

			res, ok := byType[typeName]
			if !ok {
				res = &resourceDesc{
					Package:     pkg.Name,
					Type:        typeName,
					Recv:        receiverName(fn.Recv.List[0], typeName),
					Description: typeDoc(pkg, typeName),
					dir:         filepath.Dir(filename),
				}
				byType[typeName] = res
			}
			res.Pointer = res.Pointer || pointer
			res.Operations = append(res.Operations, *op)
		}
	}

	out := make([]resourceDesc, 0, len(byType))
	for _, res := range byType {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

// findDirective reports whether doc carries the directive and returns the text
// following it.
func findDirective(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, directive)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func receiverType(expr ast.Expr) (string, bool) {
	pointer := false
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer = true
		expr = star.X
	}
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}
	return ident.Name, pointer
}

func receiverName(field *ast.Field, typeName string) string {
	if len(field.Names) == 1 && field.Names[0].Name != "_" {
		return field.Names[0].Name
	}
	return strings.ToLower(typeName[:1])
}

// describeMethod reads the operation of one handler method. The method must
// have the shape restdoc.Bind accepts; string parameter names become snake_case
// argument names.
func describeMethod(pkg *packages.Package, fn *ast.FuncDecl) (*operationDesc, error) {
	obj, ok := pkg.TypesInfo.Defs[fn.Name].(*types.Func)
	if !ok {
		return nil, errors.New("no type information")
	}
	sig := obj.Type().(*types.Signature)

	params := sig.Params()
	if params.Len() < 2 ||
		!isNamed(params.At(0).Type(), "net/http", "ResponseWriter") ||
		!isPointerTo(params.At(1).Type(), "net/http", "Request") {
		return nil, errors.New("handler must start with (http.ResponseWriter, *http.Request)")
	}

	op := &operationDesc{
		Name:   strings.ToLower(fn.Name.Name),
		Method: fn.Name.Name,
	}
	if fn.Doc != nil {
		op.Doc = strings.TrimSpace(fn.Doc.Text())
	}

	stage := 0
	for i := 2; i < params.Len(); i++ {
		p := params.At(i)
		switch {
		case sig.Variadic() && i == params.Len()-1:
			if !isStringSlice(p.Type()) {
				return nil, errors.Errorf("variadic parameter %s must be ...string", p.Name())
			}
		case isNamed(p.Type(), "net/url", "Values"):
			if stage > 1 {
				return nil, errors.New("at most one url.Values parameter")
			}
			stage = 2
		case types.Identical(p.Type(), types.Typ[types.String]):
			if stage > 0 {
				return nil, errors.Errorf("string parameter %s follows url.Values", p.Name())
			}
			if p.Name() == "" || p.Name() == "_" {
				return nil, errors.Errorf("string parameter %d has no name", i)
			}
			op.Arguments = append(op.Arguments, strcase.ToSnake(p.Name()))
		default:
			return nil, errors.Errorf("unsupported parameter %s of type %s", p.Name(), p.Type())
		}
	}

	results := sig.Results()
	switch {
	case results.Len() == 0:
	case results.Len() == 1 && types.Identical(results.At(0).Type(), types.Universe.Lookup("error").Type()):
	default:
		return nil, errors.New("handler may only return error")
	}

	return op, nil
}

// typeDoc returns the doc comment of the named type declared in pkg.
func typeDoc(pkg *packages.Package, name string) string {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name != name {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				if doc == nil {
					return ""
				}
				return strings.TrimSpace(doc.Text())
			}
		}
	}
	return ""
}

func isNamed(t types.Type, pkgPath, name string) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == pkgPath && obj.Name() == name
}

func isPointerTo(t types.Type, pkgPath, name string) bool {
	ptr, ok := t.(*types.Pointer)
	return ok && isNamed(ptr.Elem(), pkgPath, name)
}

func isStringSlice(t types.Type) bool {
	s, ok := t.(*types.Slice)
	return ok && types.Identical(s.Elem(), types.Typ[types.String])
}
