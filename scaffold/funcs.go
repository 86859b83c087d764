package scaffold

import (
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/dhamidi/havoc/framework"
	"github.com/dhamidi/havoc/idl"
)

// Funcs returns the template functions available to the templates of fw.
func Funcs(fw framework.Framework) template.FuncMap {
	return template.FuncMap{
		"snake_case":  strcase.ToSnake,
		"camel_case":  strcase.ToLowerCamel,
		"pascal_case": strcase.ToCamel,
		"kebab_case":  strcase.ToKebab,
		"upper_snake": strcase.ToScreamingSnake,
		"lower_case":  strings.ToLower,
		"capitalize":  capitalize,
		"map_type":    fw.MapType,
		"field_type":  fw.MapFieldType,
		"list_type":   fw.ListType,
		"file_name":   fw.ServiceFileName,
		"is_scalar":   isScalar,
		"brace_path":  bracePath,
		"path_params": pathParams,
		"authority":   authority,
		"outer_class": outerClass,
		"base":        baseName,
		"quote":       quote,
		"last":        last,
	}
}

func isScalar(name string) bool {
	_, ok := idl.ParseScalar(name)
	return ok
}

// bracePath rewrites ":param" route segments as "{param}".
func bracePath(route string) string {
	segments := strings.Split(route, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// pathParams lists the ":param" names of a route in order.
func pathParams(route string) []string {
	var params []string
	for _, seg := range strings.Split(route, "/") {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			params = append(params, seg[1:])
		}
	}
	return params
}

// authority strips the scheme and any trailing path from an upstream URL,
// leaving host:port.
func authority(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		url = url[i+3:]
	}
	if i := strings.IndexByte(url, '/'); i >= 0 {
		url = url[:i]
	}
	return url
}

func baseName(p string) string {
	return path.Base(filepath.ToSlash(p))
}

// outerClass is the wrapper class protoc generates for a Java file without
// java_multiple_files.
func outerClass(protoPath string) string {
	base := path.Base(filepath.ToSlash(protoPath))
	return strcase.ToCamel(strings.TrimSuffix(base, path.Ext(base)))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}

// last reports whether i is the final index of a collection of length n.
func last(i, n int) bool {
	return i == n-1
}
