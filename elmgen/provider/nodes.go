package provider

// tree-sitter-typescript node types used by the collector.
// Nothing outside this package sees these names.
const (
	nodeComment              = "comment"
	nodeError                = "ERROR"
	nodeExportStatement      = "export_statement"
	nodeInterfaceDeclaration = "interface_declaration"
	nodeTypeAliasDeclaration = "type_alias_declaration"
	nodeObjectType           = "object_type"

	// Members
	nodePropertySignature    = "property_signature"
	nodeMethodSignature      = "method_signature"
	nodeCallSignature        = "call_signature"
	nodeConstructSignature   = "construct_signature"
	nodeIndexSignature       = "index_signature"
	nodeString               = "string"
	nodeComputedPropertyName = "computed_property_name"

	// Types
	nodePredefinedType    = "predefined_type"
	nodeArrayType         = "array_type"
	nodeGenericType       = "generic_type"
	nodeTupleType         = "tuple_type"
	nodeUnionType         = "union_type"
	nodeParenthesizedType = "parenthesized_type"
	nodeReadonlyType      = "readonly_type"
)

// Field names from the grammar.
const (
	fieldName          = "name"
	fieldBody          = "body"
	fieldType          = "type"
	fieldValue         = "value"
	fieldTypeArguments = "type_arguments"
)
