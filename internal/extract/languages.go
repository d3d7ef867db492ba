package extract

import (
	"unsafe"

	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// languageSpec binds a language name to its grammar, file extensions, and
// the query that drives extraction. Queries use a shared capture scheme:
// declaration captures are named after the Decl kind ("function", "method",
// ...) with a matching ".name" sub-capture, "member" marks a member access
// in property position, "import"/"import.source"/"import.path" mark import
// statements, "import.binding" marks named import bindings, and
// "export"/"export.name" mark export declarations and export-clause names.
type languageSpec struct {
	name       string
	extensions []string
	grammar    func() unsafe.Pointer
	query      string
}

const (
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
	LangGo         = "go"
	LangPython     = "python"
	LangRust       = "rust"
	LangCpp        = "cpp"
	LangCSharp     = "csharp"
	LangJava       = "java"
	LangZig        = "zig"
	LangPHP        = "php"
)

const javascriptQuery = `
        (function_declaration name: (identifier) @function.name) @function
        (generator_function_declaration name: (identifier) @function.name) @function
        (variable_declarator
            name: (identifier) @function.name
            value: [(arrow_function) (function_expression) (generator_function)]) @function
        (variable_declarator
            name: (identifier) @variable.name
            value: (_)) @variable
        (method_definition name: (property_identifier) @method.name) @method
        (field_definition property: (property_identifier) @field.name) @field
        (class_declaration name: (identifier) @class.name) @class
        (member_expression property: (property_identifier) @member.name) @member
        (export_statement declaration: (_) @export)
        (export_statement (export_clause (export_specifier name: (identifier) @export.name)))
        (export_statement source: (string) @import.source) @import
        (import_statement source: (string) @import.source) @import
        (import_statement
            (import_clause (named_imports (import_specifier name: (identifier) @import.binding)))
            source: (string) @import.source) @import
        (call_expression
            function: (identifier) @require.fn
            arguments: (arguments (string) @import.source)) @import
    `

const typescriptQuery = `
        (function_declaration name: (identifier) @function.name) @function
        (generator_function_declaration name: (identifier) @function.name) @function
        (variable_declarator
            name: (identifier) @function.name
            value: [(arrow_function) (function_expression) (generator_function)]) @function
        (variable_declarator
            name: (identifier) @variable.name
            value: (_)) @variable
        (function_expression name: (identifier) @function.name) @function
        (method_definition name: (property_identifier) @method.name) @method
        (method_signature name: (property_identifier) @method.name) @method
        (public_field_definition name: (property_identifier) @field.name) @field
        (property_signature name: (property_identifier) @property.name) @property
        (class_declaration name: (type_identifier) @class.name) @class
        (interface_declaration name: (type_identifier) @interface.name) @interface
        (type_alias_declaration name: (type_identifier) @type.name) @type
        (enum_declaration name: (identifier) @enum.name) @enum
        (member_expression property: (property_identifier) @member.name) @member
        (export_statement declaration: (_) @export)
        (export_statement (export_clause (export_specifier name: (identifier) @export.name)))
        (export_statement source: (string) @import.source) @import
        (import_statement source: (string) @import.source) @import
        (import_statement
            (import_clause (named_imports (import_specifier name: (identifier) @import.binding)))
            source: (string) @import.source) @import
    `

const goQuery = `
        (function_declaration name: (identifier) @function.name) @function
        (method_declaration name: (field_identifier) @method.name) @method
        (type_declaration
            (type_spec name: (type_identifier) @type.name)) @type
        (const_spec name: (identifier) @constant.name) @constant
        (var_spec name: (identifier) @variable.name) @variable
        (field_declaration name: (field_identifier) @field.name) @field
        (selector_expression field: (field_identifier) @member.name) @member
        (import_spec path: (interpreted_string_literal) @import.path) @import
    `

const pythonQuery = `
        (class_definition
            body: (block
                (function_definition name: (identifier) @method.name) @method))
        (function_definition name: (identifier) @function.name) @function
        (class_definition name: (identifier) @class.name) @class
        (assignment left: (identifier) @variable.name) @variable
        (attribute attribute: (identifier) @member.name) @member
        (import_statement name: (dotted_name) @import.path) @import
        (import_statement name: (aliased_import name: (dotted_name) @import.path)) @import
        (import_from_statement module_name: (dotted_name) @import.path) @import
        (import_from_statement module_name: (relative_import) @import.path) @import
        (import_from_statement
            module_name: (dotted_name) @import.path
            name: (dotted_name) @import.binding) @import
    `

const rustQuery = `
        (impl_item
            body: (declaration_list
                (function_item name: (identifier) @method.name) @method))
        (trait_item
            body: (declaration_list
                (function_item name: (identifier) @method.name) @method))
        (function_item name: (identifier) @function.name) @function
        (struct_item name: (type_identifier) @struct.name) @struct
        (enum_item name: (type_identifier) @enum.name) @enum
        (trait_item name: (type_identifier) @interface.name) @interface
        (type_item name: (type_identifier) @type.name) @type
        (mod_item name: (identifier) @module.name) @module
        (field_declaration name: (field_identifier) @field.name) @field
        (field_expression field: (field_identifier) @member.name) @member
        (use_declaration argument: (_) @import.path) @import
    `

const cppQuery = `
        (function_definition declarator: (function_declarator declarator: (identifier) @function.name)) @function
        (function_definition declarator: (function_declarator declarator: (field_identifier) @method.name)) @method
        (class_specifier name: (type_identifier) @class.name) @class
        (struct_specifier name: (type_identifier) @struct.name) @struct
        (enum_specifier name: (type_identifier) @enum.name) @enum
        (field_declaration declarator: (field_identifier) @field.name) @field
        (namespace_definition name: (namespace_identifier) @namespace.name) @namespace
        (field_expression field: (field_identifier) @member.name) @member
        (preproc_include path: (_) @import.path) @import
    `

const javaQuery = `
        (method_declaration name: (identifier) @method.name) @method
        (constructor_declaration name: (identifier) @constructor.name) @constructor
        (class_declaration name: (identifier) @class.name) @class
        (record_declaration name: (identifier) @class.name) @class
        (interface_declaration name: (identifier) @interface.name) @interface
        (enum_declaration name: (identifier) @enum.name) @enum
        (field_declaration declarator: (variable_declarator name: (identifier) @field.name)) @field
        (annotation_type_declaration name: (identifier) @annotation.name) @annotation
        (field_access object: (_) field: (identifier) @member.name) @member
        (method_invocation object: (_) name: (identifier) @member.name) @member
        (import_declaration (scoped_identifier) @import.path) @import
    `

const csharpQuery = `
        (method_declaration name: (identifier) @method.name) @method
        (constructor_declaration name: (identifier) @constructor.name) @constructor
        (class_declaration name: (identifier) @class.name) @class
        (interface_declaration name: (identifier) @interface.name) @interface
        (struct_declaration name: (identifier) @struct.name) @struct
        (record_declaration name: (identifier) @record.name) @record
        (enum_declaration name: (identifier) @enum.name) @enum
        (property_declaration name: (identifier) @property.name) @property
        (field_declaration
            (variable_declaration
                (variable_declarator (identifier) @field.name))) @field
        (delegate_declaration name: (identifier) @delegate.name) @delegate
        (event_field_declaration
            (variable_declaration
                (variable_declarator (identifier) @event.name))) @event
        (namespace_declaration name: (qualified_name) @namespace.name) @namespace
        (namespace_declaration name: (identifier) @namespace.name) @namespace
        (member_access_expression name: (identifier) @member.name) @member
        (using_directive (qualified_name) @import.path) @import
        (using_directive (identifier) @import.path) @import
    `

// The zig community grammar exposes fewer stable node names than the
// official grammars, so the query stays declaration-only.
const zigQuery = `
        (function_declaration (identifier) @function.name) @function
        (variable_declaration
            (identifier) @struct.name
            (struct_declaration) @struct)
        (variable_declaration
            (identifier) @struct.name
            (union_declaration) @struct)
    `

const phpQuery = `
        (class_declaration name: (name) @class.name) @class
        (interface_declaration name: (name) @interface.name) @interface
        (trait_declaration name: (name) @trait.name) @trait
        (enum_declaration name: (name) @enum.name) @enum
        (function_definition name: (name) @function.name) @function
        (method_declaration name: (name) @method.name) @method
        (namespace_definition name: (namespace_name) @namespace.name) @namespace
        (property_declaration
            (property_element (variable_name (name) @field.name))) @field
        (const_declaration (const_element (name) @constant.name)) @constant
        (member_access_expression name: (name) @member.name) @member
        (member_call_expression name: (name) @member.name) @member
        (namespace_use_clause (qualified_name) @import.path) @import
        (namespace_use_clause (name) @import.path) @import
    `

var languageSpecs = []languageSpec{
	{
		name:       LangJavaScript,
		extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		grammar:    tree_sitter_javascript.Language,
		query:      javascriptQuery,
	},
	{
		name:       LangTypeScript,
		extensions: []string{".ts"},
		grammar:    tree_sitter_typescript.LanguageTypescript,
		query:      typescriptQuery,
	},
	{
		name:       LangTSX,
		extensions: []string{".tsx"},
		grammar:    tree_sitter_typescript.LanguageTSX,
		query:      typescriptQuery,
	},
	{
		name:       LangGo,
		extensions: []string{".go"},
		grammar:    tree_sitter_go.Language,
		query:      goQuery,
	},
	{
		name:       LangPython,
		extensions: []string{".py"},
		grammar:    tree_sitter_python.Language,
		query:      pythonQuery,
	},
	{
		name:       LangRust,
		extensions: []string{".rs"},
		grammar:    tree_sitter_rust.Language,
		query:      rustQuery,
	},
	{
		name:       LangCpp,
		extensions: []string{".cpp", ".cc", ".cxx", ".c", ".h", ".hpp"},
		grammar:    tree_sitter_cpp.Language,
		query:      cppQuery,
	},
	{
		name:       LangCSharp,
		extensions: []string{".cs"},
		grammar:    tree_sitter_csharp.Language,
		query:      csharpQuery,
	},
	{
		name:       LangJava,
		extensions: []string{".java"},
		grammar:    tree_sitter_java.Language,
		query:      javaQuery,
	},
	{
		name:       LangZig,
		extensions: []string{".zig"},
		grammar:    tree_sitter_zig.Language,
		query:      zigQuery,
	},
	{
		name:       LangPHP,
		extensions: []string{".php", ".phtml"},
		grammar:    tree_sitter_php.LanguagePHP,
		query:      phpQuery,
	},
}

// SupportedLanguages returns the names of every language with a registered
// grammar, in registration order.
func SupportedLanguages() []string {
	names := make([]string, 0, len(languageSpecs))
	for i := range languageSpecs {
		names = append(names, languageSpecs[i].name)
	}
	return names
}
