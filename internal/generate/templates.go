package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"strconv"
	"strings"
)

const defaultGoPackage = "version"

// Assembly attributes and the variables they are stamped from.
var assemblyAttributes = []struct {
	name     string
	variable string
}{
	{"AssemblyVersion", "AssemblySemVer"},
	{"AssemblyFileVersion", "AssemblySemFileVer"},
	{"AssemblyInformationalVersion", "InformationalVersion"},
}

func renderGo(buf *bytes.Buffer, req Request, keys []string) error {
	pkg := req.Namespace
	if pkg == "" {
		pkg = defaultGoPackage
	}

	var src bytes.Buffer
	src.WriteString("// Code generated by gitversion. DO NOT EDIT.\n\n")
	fmt.Fprintf(&src, "package %s\n\n", pkg)
	fmt.Fprintf(&src, "// %s holds the calculated version variables.\n", BaseName)
	fmt.Fprintf(&src, "var %s = struct {\n", BaseName)
	for _, k := range keys {
		fmt.Fprintf(&src, "%s string\n", k)
	}
	src.WriteString("}{\n")
	for _, k := range keys {
		fmt.Fprintf(&src, "%s: %s,\n", k, strconv.Quote(req.Variables[k]))
	}
	src.WriteString("}\n")

	formatted, err := format.Source(src.Bytes())
	if err != nil {
		return fmt.Errorf("formatting go source: %w", err)
	}
	buf.Write(formatted)
	return nil
}

const dotnetHeader = `//------------------------------------------------------------------------------
// <auto-generated>
//     This code was generated by gitversion.
//     Changes to this file will be lost when the code is regenerated.
// </auto-generated>
//------------------------------------------------------------------------------
`

func renderCSharp(buf *bytes.Buffer, req Request, keys []string) {
	buf.WriteString(dotnetHeader)
	buf.WriteString("\n")
	for _, a := range assemblyAttributes {
		if v, ok := req.Variables[a.variable]; ok {
			fmt.Fprintf(buf, "[assembly: System.Reflection.%s(%s)]\n", a.name, cQuote(v))
		}
	}
	buf.WriteString("\n")

	indent := ""
	if req.Namespace != "" {
		fmt.Fprintf(buf, "namespace %s\n{\n", req.Namespace)
		indent = "    "
	}
	fmt.Fprintf(buf, "%s[System.Runtime.CompilerServices.CompilerGenerated]\n", indent)
	fmt.Fprintf(buf, "%sstatic class %s\n%s{\n", indent, BaseName, indent)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s    public const string %s = %s;\n", indent, k, cQuote(req.Variables[k]))
	}
	fmt.Fprintf(buf, "%s}\n", indent)
	if req.Namespace != "" {
		buf.WriteString("}\n")
	}
}

func renderFSharp(buf *bytes.Buffer, req Request, keys []string) {
	buf.WriteString(dotnetHeader)
	ns := req.Namespace
	if ns == "" {
		ns = "global"
	}
	fmt.Fprintf(buf, "\nnamespace %s\n\n", ns)

	buf.WriteString("[<AbstractClass; Sealed>]\n")
	fmt.Fprintf(buf, "type %s private () =\n", BaseName)
	for _, k := range keys {
		fmt.Fprintf(buf, "    static member %s = %s\n", k, cQuote(req.Variables[k]))
	}

	var attrs []string
	for _, a := range assemblyAttributes {
		if v, ok := req.Variables[a.variable]; ok {
			attrs = append(attrs, fmt.Sprintf("    [<assembly: System.Reflection.%s(%s)>]\n", a.name, cQuote(v)))
		}
	}
	if len(attrs) > 0 {
		buf.WriteString("\nmodule internal AssemblyVersionInformation =\n")
		buf.WriteString(strings.Join(attrs, ""))
		buf.WriteString("    do ()\n")
	}
}

func renderVisualBasic(buf *bytes.Buffer, req Request, keys []string) {
	buf.WriteString(strings.ReplaceAll(dotnetHeader, "//", "'"))
	buf.WriteString("\n")
	for _, a := range assemblyAttributes {
		if v, ok := req.Variables[a.variable]; ok {
			fmt.Fprintf(buf, "<Assembly: System.Reflection.%s(%s)>\n", a.name, vbQuote(v))
		}
	}
	buf.WriteString("\n")

	indent := ""
	if req.Namespace != "" {
		fmt.Fprintf(buf, "Namespace %s\n", req.Namespace)
		indent = "    "
	}
	fmt.Fprintf(buf, "%sPublic NotInheritable Class %s\n", indent, BaseName)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s    Public Const %s As String = %s\n", indent, k, vbQuote(req.Variables[k]))
	}
	fmt.Fprintf(buf, "%sEnd Class\n", indent)
	if req.Namespace != "" {
		buf.WriteString("End Namespace\n")
	}
}

func renderJSON(buf *bytes.Buffer, vars map[string]string) error {
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vars); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// cQuote quotes s as a C# or F# string literal.
func cQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

func vbQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
