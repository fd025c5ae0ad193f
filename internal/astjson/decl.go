package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/basilisc/basilc/ast"
)

func decodeDeclList(raw json.RawMessage) ([]ast.Declaration, error) {
	var list []json.RawMessage
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("astjson: declarations: %w", err)
	}
	out := make([]ast.Declaration, len(list))
	var err error
	for i, r := range list {
		out[i], err = decodeDecl(r)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeDecl(raw json.RawMessage) (ast.Declaration, error) {
	m, err := asObj(raw)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	switch nodeKind(m) {
	case "NamespaceDecl":
		return decodeNamespaceDecl(m)
	case "ModuleDecl":
		return decodeModuleDecl(m)
	case "UsingDecl":
		return &ast.UsingDecl{Token: tok(m), Path: str(m, "path")}, nil
	case "ImportDecl":
		return &ast.ImportDecl{Token: tok(m), Path: str(m, "path"), Alias: str(m, "alias")}, nil
	case "FunctionDecl":
		return decodeFunctionDecl(m)
	case "VariableDeclaration":
		return decodeVariableDeclaration(m)
	case "ConstantDeclaration":
		return decodeConstantDeclaration(m)
	case "TypeDefine":
		target, err := decodeType(m, "target")
		if err != nil {
			return nil, err
		}
		return &ast.TypeDefine{Token: tok(m), Name: str(m, "name"), Target: target}, nil
	case "DelegateDecl":
		return decodeDelegateDecl(m)
	case "EnumDecl":
		return decodeEnumDecl(m)
	case "StructureDecl":
		return decodeStructureDecl(m)
	case "ClassDecl":
		return decodeClassDecl(m)
	case "FieldDecl":
		return decodeFieldDecl(m)
	case "InterfaceDecl":
		return decodeInterfaceDecl(m)
	case "InterfaceMethodDecl":
		return decodeInterfaceMethodDecl(m)
	case "PropertyDecl":
		return decodePropertyDecl(m)
	case "EventDecl":
		ty, err := decodeType(m, "type")
		if err != nil {
			return nil, err
		}
		return &ast.EventDecl{Token: tok(m), Name: str(m, "name"), Type: ty}, nil
	case "ConstructorDecl":
		return decodeConstructorDecl(m)
	case "ExternDecl":
		return decodeExternDecl(m)
	case "OperatorDecl":
		return decodeOperatorDecl(m)
	case "TemplateDecl":
		return decodeTemplateDecl(m)
	default:
		return nil, fmt.Errorf("astjson: unsupported declaration node %q", nodeKind(m))
	}
}

func decodeNamespaceDecl(m obj) (*ast.NamespaceDecl, error) {
	decls, err := decodeDeclList(m["declarations"])
	if err != nil {
		return nil, err
	}
	return &ast.NamespaceDecl{Token: tok(m), Name: str(m, "name"), Declarations: decls}, nil
}

func decodeModuleDecl(m obj) (*ast.ModuleDecl, error) {
	decls, err := decodeDeclList(m["declarations"])
	if err != nil {
		return nil, err
	}
	return &ast.ModuleDecl{Token: tok(m), Name: str(m, "name"), Declarations: decls}, nil
}

func decodeFunctionKind(s string) ast.FunctionKind {
	if s == "Subroutine" {
		return ast.KindSubroutine
	}
	return ast.KindFunction
}

func decodeModifiers(m obj) ast.Modifiers {
	return ast.Modifiers{
		Access:   decodeAccessLevel(str(m, "access")),
		Static:   boolean(m, "static"),
		Virtual:  boolean(m, "virtual"),
		Override: boolean(m, "override"),
		Abstract: boolean(m, "abstract"),
		Sealed:   boolean(m, "sealed"),
		Async:    boolean(m, "async"),
		Iterator: boolean(m, "iterator"),
	}
}

func decodeFunctionDecl(m obj) (*ast.FunctionDecl, error) {
	params, err := decodeParamList(m, "parameters")
	if err != nil {
		return nil, err
	}
	ret, err := decodeType(m, "returnType")
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(m, "body")
	if err != nil {
		return nil, err
	}
	modsObj, err := asObj(m["modifiers"])
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{
		Token:       tok(m),
		Name:        str(m, "name"),
		Kind:        decodeFunctionKind(str(m, "kind")),
		Generics:    strSlice(m, "generics"),
		Parameters:  params,
		ReturnType:  ret,
		Implements:  str(m, "implements"),
		Modifiers:   decodeModifiers(modsObj),
		Body:        body,
		IsExtension: boolean(m, "isExtension"),
	}, nil
}

func decodeVariableDeclaration(m obj) (*ast.VariableDeclaration, error) {
	ty, err := decodeType(m, "type")
	if err != nil {
		return nil, err
	}
	init, err := decodeExprField(m, "init")
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		Token: tok(m),
		Name:  str(m, "name"),
		Type:  ty,
		Init:  init,
		Auto:  boolean(m, "auto"),
	}, nil
}

func decodeConstantDeclaration(m obj) (*ast.ConstantDeclaration, error) {
	ty, err := decodeType(m, "type")
	if err != nil {
		return nil, err
	}
	val, err := decodeExprField(m, "value")
	if err != nil {
		return nil, err
	}
	return &ast.ConstantDeclaration{Token: tok(m), Name: str(m, "name"), Type: ty, Value: val}, nil
}

func decodeDelegateDecl(m obj) (*ast.DelegateDecl, error) {
	params, err := decodeParamList(m, "parameters")
	if err != nil {
		return nil, err
	}
	ret, err := decodeType(m, "returnType")
	if err != nil {
		return nil, err
	}
	return &ast.DelegateDecl{
		Token:      tok(m),
		Name:       str(m, "name"),
		Parameters: params,
		ReturnType: ret,
		Generics:   strSlice(m, "generics"),
	}, nil
}

func decodeEnumDecl(m obj) (*ast.EnumDecl, error) {
	underlying, err := decodeType(m, "underlying")
	if err != nil {
		return nil, err
	}
	raws, err := rawList(m, "members")
	if err != nil {
		return nil, err
	}
	members := make([]ast.EnumMember, len(raws))
	for i, r := range raws {
		mm, err := asObj(r)
		if err != nil {
			return nil, err
		}
		val, err := decodeExprField(mm, "value")
		if err != nil {
			return nil, err
		}
		members[i] = ast.EnumMember{Name: str(mm, "name"), Value: val}
	}
	return &ast.EnumDecl{Token: tok(m), Name: str(m, "name"), Underlying: underlying, Members: members}, nil
}

func decodeStructureDecl(m obj) (*ast.StructureDecl, error) {
	raws, err := rawList(m, "fields")
	if err != nil {
		return nil, err
	}
	fields := make([]ast.StructureField, len(raws))
	for i, r := range raws {
		fm, err := asObj(r)
		if err != nil {
			return nil, err
		}
		ty, err := decodeType(fm, "type")
		if err != nil {
			return nil, err
		}
		fields[i] = ast.StructureField{Name: str(fm, "name"), Type: ty}
	}
	return &ast.StructureDecl{Token: tok(m), Name: str(m, "name"), Fields: fields}, nil
}

func decodeClassDecl(m obj) (*ast.ClassDecl, error) {
	members, err := decodeDeclList(m["members"])
	if err != nil {
		return nil, err
	}
	return &ast.ClassDecl{
		Token:      tok(m),
		Name:       str(m, "name"),
		Generics:   strSlice(m, "generics"),
		BaseClass:  str(m, "baseClass"),
		Interfaces: strSlice(m, "interfaces"),
		Members:    members,
		Abstract:   boolean(m, "abstract"),
		Sealed:     boolean(m, "sealed"),
	}, nil
}

func decodeFieldDecl(m obj) (*ast.FieldDecl, error) {
	ty, err := decodeType(m, "type")
	if err != nil {
		return nil, err
	}
	init, err := decodeExprField(m, "init")
	if err != nil {
		return nil, err
	}
	return &ast.FieldDecl{
		Token:  tok(m),
		Name:   str(m, "name"),
		Type:   ty,
		Init:   init,
		Access: decodeAccessLevel(str(m, "access")),
		Static: boolean(m, "static"),
	}, nil
}

func decodeInterfaceMethodDecl(m obj) (*ast.InterfaceMethodDecl, error) {
	params, err := decodeParamList(m, "parameters")
	if err != nil {
		return nil, err
	}
	ret, err := decodeType(m, "returnType")
	if err != nil {
		return nil, err
	}
	def, err := decodeBlock(m, "default")
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceMethodDecl{
		Token:      tok(m),
		Name:       str(m, "name"),
		Parameters: params,
		ReturnType: ret,
		Default:    def,
	}, nil
}

func decodeInterfaceDecl(m obj) (*ast.InterfaceDecl, error) {
	raws, err := rawList(m, "methods")
	if err != nil {
		return nil, err
	}
	methods := make([]*ast.InterfaceMethodDecl, len(raws))
	for i, r := range raws {
		mm, err := asObj(r)
		if err != nil {
			return nil, err
		}
		methods[i], err = decodeInterfaceMethodDecl(mm)
		if err != nil {
			return nil, err
		}
	}
	return &ast.InterfaceDecl{
		Token:   tok(m),
		Name:    str(m, "name"),
		Extends: strSlice(m, "extends"),
		Methods: methods,
	}, nil
}

func decodePropertyDecl(m obj) (*ast.PropertyDecl, error) {
	ty, err := decodeType(m, "type")
	if err != nil {
		return nil, err
	}
	getter, err := decodeBlock(m, "getter")
	if err != nil {
		return nil, err
	}
	setter, err := decodeBlock(m, "setter")
	if err != nil {
		return nil, err
	}
	idx, err := decodeParamList(m, "indexParams")
	if err != nil {
		return nil, err
	}
	return &ast.PropertyDecl{
		Token:       tok(m),
		Name:        str(m, "name"),
		Type:        ty,
		Getter:      getter,
		Setter:      setter,
		SetterParam: str(m, "setterParam"),
		IndexParams: idx,
		Access:      decodeAccessLevel(str(m, "access")),
	}, nil
}

func decodeConstructorDecl(m obj) (*ast.ConstructorDecl, error) {
	params, err := decodeParamList(m, "parameters")
	if err != nil {
		return nil, err
	}
	baseRaws, err := rawList(m, "baseArgs")
	if err != nil {
		return nil, err
	}
	baseArgs := make([]ast.Expression, len(baseRaws))
	for i, r := range baseRaws {
		baseArgs[i], err = decodeExpr(r)
		if err != nil {
			return nil, err
		}
	}
	body, err := decodeBlock(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.ConstructorDecl{
		Token:      tok(m),
		Parameters: params,
		BaseArgs:   baseArgs,
		Body:       body,
		Access:     decodeAccessLevel(str(m, "access")),
	}, nil
}

func decodeExternDecl(m obj) (*ast.ExternDecl, error) {
	params, err := decodeParamList(m, "parameters")
	if err != nil {
		return nil, err
	}
	ret, err := decodeType(m, "returnType")
	if err != nil {
		return nil, err
	}
	platforms := map[string]string{}
	if raw, ok := m["platforms"]; ok {
		if err := json.Unmarshal(raw, &platforms); err != nil {
			return nil, fmt.Errorf("astjson: platforms: %w", err)
		}
	}
	return &ast.ExternDecl{
		Token:      tok(m),
		Name:       str(m, "name"),
		IsFunction: boolean(m, "isFunction"),
		Parameters: params,
		ReturnType: ret,
		Platforms:  platforms,
	}, nil
}

func decodeOperatorKind(s string) ast.OperatorKind {
	switch s {
	case "Widening":
		return ast.OperatorWidening
	case "Narrowing":
		return ast.OperatorNarrowing
	default:
		return ast.OperatorNormal
	}
}

func decodeOperatorDecl(m obj) (*ast.OperatorDecl, error) {
	params, err := decodeParamList(m, "parameters")
	if err != nil {
		return nil, err
	}
	ret, err := decodeType(m, "returnType")
	if err != nil {
		return nil, err
	}
	body, err := decodeBlock(m, "body")
	if err != nil {
		return nil, err
	}
	return &ast.OperatorDecl{
		Token:      tok(m),
		Symbol:     str(m, "symbol"),
		Parameters: params,
		ReturnType: ret,
		Kind:       decodeOperatorKind(str(m, "kind")),
		Body:       body,
	}, nil
}

func decodeTemplateDecl(m obj) (*ast.TemplateDecl, error) {
	inner, err := decodeDecl(m["inner"])
	if err != nil {
		return nil, err
	}
	return &ast.TemplateDecl{Token: tok(m), Generics: strSlice(m, "generics"), Inner: inner}, nil
}
