// Package sirs decodes SIRS documents: the JSON encoding of a Sever
// program's AST. Decoding validates structure only (kinds, required
// fields); semantic validation belongs to the type checker.
package sirs

import (
	"encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"sever/internal/ast"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type rawDocument struct {
	// Some producers wrap the program in an envelope; both shapes are
	// accepted.
	Program   *rawProgram             `json:"program"`
	Functions map[string]*rawFunction `json:"functions"`
}

type rawProgram struct {
	Functions map[string]*rawFunction `json:"functions"`
}

type rawFunction struct {
	Params []rawParam `json:"params"`
	Return *rawType   `json:"return"`
	Body   []*rawStmt `json:"body"`
}

type rawParam struct {
	Name string   `json:"name"`
	Type *rawType `json:"type"`
}

type rawType struct {
	Kind     string         `json:"kind"`
	Name     string         `json:"name"`
	Element  *rawType       `json:"element"`
	Inner    *rawType       `json:"inner"`
	Key      *rawType       `json:"key"`
	Value    *rawType       `json:"value"`
	Return   *rawType       `json:"return"`
	Size     int            `json:"size"`
	Fields   []rawTypeField `json:"fields"`
	Elements []*rawType     `json:"elements"`
	Params   []*rawType     `json:"params"`
	Variants []*rawType     `json:"variants"`
	Args     []*rawType     `json:"args"`
}

type rawTypeField struct {
	Name string   `json:"name"`
	Type *rawType `json:"type"`
}

type rawExpr struct {
	Kind         string          `json:"kind"`
	Type         string          `json:"type"`
	Value        json.RawMessage `json:"value"`
	Name         string          `json:"name"`
	Function     string          `json:"function"`
	Args         []*rawExpr      `json:"args"`
	Op           string          `json:"op"`
	Operands     []*rawExpr      `json:"operands"`
	Base         *rawExpr        `json:"base"`
	Index        *rawExpr        `json:"index"`
	Field        string          `json:"field"`
	Elements     []*rawExpr      `json:"elements"`
	Fields       []rawFieldInit  `json:"fields"`
	Entries      []rawMapEntry   `json:"entries"`
	Enum         string          `json:"enum"`
	Variant      string          `json:"variant"`
	Inner        *rawExpr        `json:"inner"`
	Distribution *rawExpr        `json:"distribution"`
	Model        *rawExpr        `json:"model"`
	Target       *rawType        `json:"target"`
}

type rawFieldInit struct {
	Name  string   `json:"name"`
	Value *rawExpr `json:"value"`
}

type rawMapEntry struct {
	Key   *rawExpr `json:"key"`
	Value *rawExpr `json:"value"`
}

type rawStmt struct {
	Kind         string     `json:"kind"`
	Name         string     `json:"name"`
	Var          string     `json:"var"`
	Type         *rawType   `json:"type"`
	Target       *rawExpr   `json:"target"`
	Value        *rawExpr   `json:"value"`
	Condition    *rawExpr   `json:"condition"`
	Then         []*rawStmt `json:"then"`
	Else         []*rawStmt `json:"else"`
	Body         []*rawStmt `json:"body"`
	Cases        []rawCase  `json:"cases"`
	Catches      []rawCatch `json:"catches"`
	Finally      []*rawStmt `json:"finally"`
	Iterable     *rawExpr   `json:"iterable"`
	Distribution *rawExpr   `json:"distribution"`
	Confidence   float64    `json:"confidence"`
	Expr         *rawExpr   `json:"expr"`
}

type rawCase struct {
	Pattern *rawPattern `json:"pattern"`
	Body    []*rawStmt  `json:"body"`
}

type rawCatch struct {
	Name string     `json:"name"`
	Body []*rawStmt `json:"body"`
}

type rawPattern struct {
	Kind    string            `json:"kind"`
	Type    string            `json:"type"`
	Value   json.RawMessage   `json:"value"`
	Name    string            `json:"name"`
	Enum    string            `json:"enum"`
	Variant string            `json:"variant"`
	Binding *rawPattern       `json:"binding"`
	Fields  []rawPatternField `json:"fields"`
}

type rawPatternField struct {
	Name    string      `json:"name"`
	Pattern *rawPattern `json:"pattern"`
}

// Parse decodes a SIRS document into a Program.
func Parse(data []byte) (*ast.Program, error) {
	var doc rawDocument
	if err := jsonAPI.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode sirs document: %w", err)
	}
	functions := doc.Functions
	if doc.Program != nil {
		functions = doc.Program.Functions
	}
	if functions == nil {
		return nil, fmt.Errorf("decode sirs document: missing functions object")
	}

	prog := &ast.Program{Functions: make(map[string]*ast.Function, len(functions))}
	for name, rf := range functions {
		fn, err := decodeFunction(name, rf)
		if err != nil {
			return nil, err
		}
		prog.Functions[name] = fn
	}
	return prog, nil
}

func decodeFunction(name string, rf *rawFunction) (*ast.Function, error) {
	if rf == nil {
		return nil, fmt.Errorf("functions.%s: null function", name)
	}
	path := "functions." + name

	fn := &ast.Function{Name: name}
	for i, rp := range rf.Params {
		ppath := fmt.Sprintf("%s.params[%d]", path, i)
		if rp.Name == "" {
			return nil, fmt.Errorf("%s: missing name", ppath)
		}
		pt, err := decodeType(rp.Type, ppath+".type")
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, ast.Param{Name: rp.Name, Type: pt})
	}

	if rf.Return == nil {
		fn.ReturnType = &ast.PrimType{Kind: ast.Void}
	} else {
		ret, err := decodeType(rf.Return, path+".return")
		if err != nil {
			return nil, err
		}
		fn.ReturnType = ret
	}

	body, err := decodeStmts(rf.Body, path+".body")
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

var primKinds = map[string]ast.PrimKind{
	"void": ast.Void,
	"bool": ast.Bool,
	"i8":   ast.I8,
	"i16":  ast.I16,
	"i32":  ast.I32,
	"i64":  ast.I64,
	"u8":   ast.U8,
	"u16":  ast.U16,
	"u32":  ast.U32,
	"u64":  ast.U64,
	"f32":  ast.F32,
	"f64":  ast.F64,
	"str":  ast.Str,
}

func decodeType(rt *rawType, path string) (ast.Type, error) {
	if rt == nil {
		return nil, fmt.Errorf("%s: missing type", path)
	}

	if prim, ok := primKinds[rt.Kind]; ok {
		return &ast.PrimType{Kind: prim}, nil
	}

	switch rt.Kind {
	case "array":
		elem, err := decodeType(rt.Element, path+".element")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Elem: elem, Size: rt.Size}, nil

	case "slice":
		elem, err := decodeType(rt.Element, path+".element")
		if err != nil {
			return nil, err
		}
		return &ast.SliceType{Elem: elem}, nil

	case "optional":
		inner, err := decodeType(rt.Inner, path+".inner")
		if err != nil {
			return nil, err
		}
		return &ast.OptionalType{Inner: inner}, nil

	case "struct":
		st := &ast.StructType{Name: rt.Name}
		for i, f := range rt.Fields {
			ft, err := decodeType(f.Type, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			st.Fields = append(st.Fields, ast.StructField{Name: f.Name, Type: ft})
		}
		return st, nil

	case "enum":
		return &ast.EnumType{Name: rt.Name}, nil

	case "union":
		ut := &ast.UnionType{}
		for i, v := range rt.Variants {
			vt, err := decodeType(v, fmt.Sprintf("%s.variants[%d]", path, i))
			if err != nil {
				return nil, err
			}
			ut.Variants = append(ut.Variants, vt)
		}
		return ut, nil

	case "discriminated_union":
		dt := &ast.DiscriminatedUnionType{Name: rt.Name}
		for i, v := range rt.Variants {
			vt, err := decodeType(v, fmt.Sprintf("%s.variants[%d]", path, i))
			if err != nil {
				return nil, err
			}
			dt.Variants = append(dt.Variants, vt)
		}
		return dt, nil

	case "hashmap":
		key, err := decodeType(rt.Key, path+".key")
		if err != nil {
			return nil, err
		}
		value, err := decodeType(rt.Value, path+".value")
		if err != nil {
			return nil, err
		}
		return &ast.MapType{Key: key, Value: value}, nil

	case "set":
		elem, err := decodeType(rt.Element, path+".element")
		if err != nil {
			return nil, err
		}
		return &ast.SetType{Elem: elem}, nil

	case "tuple":
		tt := &ast.TupleType{}
		for i, e := range rt.Elements {
			et, err := decodeType(e, fmt.Sprintf("%s.elements[%d]", path, i))
			if err != nil {
				return nil, err
			}
			tt.Elements = append(tt.Elements, et)
		}
		return tt, nil

	case "record":
		recType := &ast.RecordType{}
		for i, f := range rt.Fields {
			ft, err := decodeType(f.Type, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			recType.Fields = append(recType.Fields, ast.StructField{Name: f.Name, Type: ft})
		}
		return recType, nil

	case "function":
		ft := &ast.FuncType{}
		for i, p := range rt.Params {
			pt, err := decodeType(p, fmt.Sprintf("%s.params[%d]", path, i))
			if err != nil {
				return nil, err
			}
			ft.Params = append(ft.Params, pt)
		}
		ret, err := decodeType(rt.Return, path+".return")
		if err != nil {
			return nil, err
		}
		ft.Return = ret
		return ft, nil

	case "interface":
		return &ast.InterfaceType{Name: rt.Name}, nil

	case "generic":
		gt := &ast.GenericType{Name: rt.Name}
		for i, a := range rt.Args {
			at, err := decodeType(a, fmt.Sprintf("%s.args[%d]", path, i))
			if err != nil {
				return nil, err
			}
			gt.Args = append(gt.Args, at)
		}
		return gt, nil

	case "distribution":
		return &ast.DistributionType{Name: rt.Name}, nil

	case "":
		return nil, fmt.Errorf("%s: missing type kind", path)
	default:
		return nil, fmt.Errorf("%s: unknown type kind %q", path, rt.Kind)
	}
}

func decodeStmts(raws []*rawStmt, path string) ([]ast.Statement, error) {
	stmts := make([]ast.Statement, 0, len(raws))
	for i, rs := range raws {
		stmt, err := decodeStmt(rs, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStmt(rs *rawStmt, path string) (ast.Statement, error) {
	if rs == nil {
		return nil, fmt.Errorf("%s: null statement", path)
	}

	switch rs.Kind {
	case "let":
		if rs.Name == "" {
			return nil, fmt.Errorf("%s: let requires a name", path)
		}
		value, err := decodeExpr(rs.Value, path+".value")
		if err != nil {
			return nil, err
		}
		s := &ast.LetStmt{Name: rs.Name, Value: value}
		if rs.Type != nil {
			t, err := decodeType(rs.Type, path+".type")
			if err != nil {
				return nil, err
			}
			s.Type = t
		}
		return s, nil

	case "assign":
		target, err := decodeExpr(rs.Target, path+".target")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(rs.Value, path+".value")
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: target, Value: value}, nil

	case "if":
		cond, err := decodeExpr(rs.Condition, path+".condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeStmts(rs.Then, path+".then")
		if err != nil {
			return nil, err
		}
		s := &ast.IfStmt{Condition: cond, Then: then}
		if rs.Else != nil {
			elseBody, err := decodeStmts(rs.Else, path+".else")
			if err != nil {
				return nil, err
			}
			s.Else = elseBody
		}
		return s, nil

	case "match":
		value, err := decodeExpr(rs.Value, path+".value")
		if err != nil {
			return nil, err
		}
		s := &ast.MatchStmt{Value: value}
		for i, rc := range rs.Cases {
			cpath := fmt.Sprintf("%s.cases[%d]", path, i)
			pattern, err := decodePattern(rc.Pattern, cpath+".pattern")
			if err != nil {
				return nil, err
			}
			body, err := decodeStmts(rc.Body, cpath+".body")
			if err != nil {
				return nil, err
			}
			s.Cases = append(s.Cases, ast.MatchCase{Pattern: pattern, Body: body})
		}
		return s, nil

	case "while":
		cond, err := decodeExpr(rs.Condition, path+".condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(rs.Body, path+".body")
		if err != nil {
			return nil, err
		}
		return &ast.WhileStmt{Condition: cond, Body: body}, nil

	case "for":
		iter, err := decodeExpr(rs.Iterable, path+".iterable")
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(rs.Body, path+".body")
		if err != nil {
			return nil, err
		}
		return &ast.ForStmt{Var: rs.Var, Iterable: iter, Body: body}, nil

	case "try":
		body, err := decodeStmts(rs.Body, path+".body")
		if err != nil {
			return nil, err
		}
		s := &ast.TryStmt{Body: body}
		for i, rc := range rs.Catches {
			cbody, err := decodeStmts(rc.Body, fmt.Sprintf("%s.catches[%d].body", path, i))
			if err != nil {
				return nil, err
			}
			s.Catches = append(s.Catches, ast.CatchClause{Name: rc.Name, Body: cbody})
		}
		if rs.Finally != nil {
			fin, err := decodeStmts(rs.Finally, path+".finally")
			if err != nil {
				return nil, err
			}
			s.Finally = fin
		}
		return s, nil

	case "throw":
		value, err := decodeExpr(rs.Value, path+".value")
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStmt{Value: value}, nil

	case "return":
		s := &ast.ReturnStmt{}
		if rs.Value != nil {
			value, err := decodeExpr(rs.Value, path+".value")
			if err != nil {
				return nil, err
			}
			s.Value = value
		}
		return s, nil

	case "break":
		return &ast.BreakStmt{}, nil

	case "continue":
		return &ast.ContinueStmt{}, nil

	case "observe":
		dist, err := decodeExpr(rs.Distribution, path+".distribution")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(rs.Value, path+".value")
		if err != nil {
			return nil, err
		}
		return &ast.ObserveStmt{Distribution: dist, Value: value}, nil

	case "prob_assert":
		cond, err := decodeExpr(rs.Condition, path+".condition")
		if err != nil {
			return nil, err
		}
		return &ast.ProbAssertStmt{Condition: cond, Confidence: rs.Confidence}, nil

	case "expression":
		expr := rs.Expr
		if expr == nil {
			expr = rs.Value
		}
		e, err := decodeExpr(expr, path+".expr")
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e}, nil

	case "":
		return nil, fmt.Errorf("%s: missing statement kind", path)
	default:
		return nil, fmt.Errorf("%s: unknown statement kind %q", path, rs.Kind)
	}
}

func decodeExpr(re *rawExpr, path string) (ast.Expression, error) {
	if re == nil {
		return nil, fmt.Errorf("%s: missing expression", path)
	}

	switch re.Kind {
	case "literal":
		lit, err := decodeLiteral(re.Type, re.Value, path)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralExpr{Value: lit}, nil

	case "variable":
		if re.Name == "" {
			return nil, fmt.Errorf("%s: variable requires a name", path)
		}
		return &ast.VariableExpr{Name: re.Name}, nil

	case "call":
		if re.Function == "" {
			return nil, fmt.Errorf("%s: call requires a function name", path)
		}
		e := &ast.CallExpr{Function: re.Function}
		for i, ra := range re.Args {
			arg, err := decodeExpr(ra, fmt.Sprintf("%s.args[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e.Args = append(e.Args, arg)
		}
		return e, nil

	case "op":
		if re.Op == "" {
			return nil, fmt.Errorf("%s: op requires an operator", path)
		}
		e := &ast.OpExpr{Op: re.Op}
		for i, ro := range re.Operands {
			operand, err := decodeExpr(ro, fmt.Sprintf("%s.operands[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e.Operands = append(e.Operands, operand)
		}
		return e, nil

	case "index":
		base, err := decodeExpr(re.Base, path+".base")
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(re.Index, path+".index")
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Base: base, Index: index}, nil

	case "field":
		base, err := decodeExpr(re.Base, path+".base")
		if err != nil {
			return nil, err
		}
		return &ast.FieldExpr{Base: base, Field: re.Field}, nil

	case "array":
		e := &ast.ArrayExpr{}
		for i, relem := range re.Elements {
			elem, err := decodeExpr(relem, fmt.Sprintf("%s.elements[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e.Elements = append(e.Elements, elem)
		}
		return e, nil

	case "struct":
		e := &ast.StructExpr{Name: re.Name}
		fields, err := decodeFieldInits(re.Fields, path)
		if err != nil {
			return nil, err
		}
		e.Fields = fields
		return e, nil

	case "hashmap":
		e := &ast.MapExpr{}
		for i, rentry := range re.Entries {
			epath := fmt.Sprintf("%s.entries[%d]", path, i)
			key, err := decodeExpr(rentry.Key, epath+".key")
			if err != nil {
				return nil, err
			}
			value, err := decodeExpr(rentry.Value, epath+".value")
			if err != nil {
				return nil, err
			}
			e.Entries = append(e.Entries, ast.MapEntry{Key: key, Value: value})
		}
		return e, nil

	case "set":
		e := &ast.SetExpr{}
		for i, relem := range re.Elements {
			elem, err := decodeExpr(relem, fmt.Sprintf("%s.elements[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e.Elements = append(e.Elements, elem)
		}
		return e, nil

	case "tuple":
		e := &ast.TupleExpr{}
		for i, relem := range re.Elements {
			elem, err := decodeExpr(relem, fmt.Sprintf("%s.elements[%d]", path, i))
			if err != nil {
				return nil, err
			}
			e.Elements = append(e.Elements, elem)
		}
		return e, nil

	case "record":
		e := &ast.RecordExpr{}
		fields, err := decodeFieldInits(re.Fields, path)
		if err != nil {
			return nil, err
		}
		e.Fields = fields
		return e, nil

	case "enum":
		e := &ast.EnumConstructorExpr{Enum: re.Enum, Variant: re.Variant}
		if len(re.Value) > 0 {
			var payload rawExpr
			if err := jsonAPI.Unmarshal(re.Value, &payload); err != nil {
				return nil, fmt.Errorf("%s.value: %w", path, err)
			}
			value, err := decodeExpr(&payload, path+".value")
			if err != nil {
				return nil, err
			}
			e.Value = value
		}
		return e, nil

	case "await":
		inner, err := decodeExpr(re.Inner, path+".inner")
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpr{Inner: inner}, nil

	case "sample":
		dist, err := decodeExpr(re.Distribution, path+".distribution")
		if err != nil {
			return nil, err
		}
		return &ast.SampleExpr{Distribution: dist}, nil

	case "infer":
		model, err := decodeExpr(re.Model, path+".model")
		if err != nil {
			return nil, err
		}
		return &ast.InferExpr{Model: model}, nil

	case "cast":
		if len(re.Value) == 0 {
			return nil, fmt.Errorf("%s: cast requires a value", path)
		}
		var operand rawExpr
		if err := jsonAPI.Unmarshal(re.Value, &operand); err != nil {
			return nil, fmt.Errorf("%s.value: %w", path, err)
		}
		value, err := decodeExpr(&operand, path+".value")
		if err != nil {
			return nil, err
		}
		target, err := decodeType(re.Target, path+".target")
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Value: value, Target: target}, nil

	case "":
		return nil, fmt.Errorf("%s: missing expression kind", path)
	default:
		return nil, fmt.Errorf("%s: unknown expression kind %q", path, re.Kind)
	}
}

func decodeFieldInits(raws []rawFieldInit, path string) ([]ast.FieldInit, error) {
	fields := make([]ast.FieldInit, 0, len(raws))
	for i, rf := range raws {
		value, err := decodeExpr(rf.Value, fmt.Sprintf("%s.fields[%d].value", path, i))
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.FieldInit{Name: rf.Name, Value: value})
	}
	return fields, nil
}

func decodeLiteral(typeTag string, raw json.RawMessage, path string) (ast.Literal, error) {
	switch typeTag {
	case "int":
		var v int64
		if err := jsonAPI.Unmarshal(raw, &v); err != nil {
			return ast.Literal{}, fmt.Errorf("%s.value: %w", path, err)
		}
		return ast.Literal{Kind: ast.IntLit, Int: v}, nil

	case "float":
		var v float64
		if err := jsonAPI.Unmarshal(raw, &v); err != nil {
			return ast.Literal{}, fmt.Errorf("%s.value: %w", path, err)
		}
		return ast.Literal{Kind: ast.FloatLit, Float: v}, nil

	case "string":
		var v string
		if err := jsonAPI.Unmarshal(raw, &v); err != nil {
			return ast.Literal{}, fmt.Errorf("%s.value: %w", path, err)
		}
		return ast.Literal{Kind: ast.StringLit, Str: v}, nil

	case "bool":
		var v bool
		if err := jsonAPI.Unmarshal(raw, &v); err != nil {
			return ast.Literal{}, fmt.Errorf("%s.value: %w", path, err)
		}
		return ast.Literal{Kind: ast.BoolLit, Bool: v}, nil

	case "null":
		return ast.Literal{Kind: ast.NullLit}, nil

	case "":
		return ast.Literal{}, fmt.Errorf("%s: literal requires a type tag", path)
	default:
		return ast.Literal{}, fmt.Errorf("%s: unknown literal type %q", path, typeTag)
	}
}

func decodePattern(rp *rawPattern, path string) (ast.Pattern, error) {
	if rp == nil {
		return nil, fmt.Errorf("%s: missing pattern", path)
	}

	switch rp.Kind {
	case "literal":
		lit, err := decodeLiteral(rp.Type, rp.Value, path)
		if err != nil {
			return nil, err
		}
		return &ast.LiteralPattern{Value: lit}, nil

	case "variable":
		if rp.Name == "" {
			return nil, fmt.Errorf("%s: variable pattern requires a name", path)
		}
		return &ast.VariablePattern{Name: rp.Name}, nil

	case "wildcard":
		return &ast.WildcardPattern{}, nil

	case "struct":
		p := &ast.StructPattern{Name: rp.Name}
		for i, rf := range rp.Fields {
			sub, err := decodePattern(rf.Pattern, fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			p.Fields = append(p.Fields, ast.FieldPattern{Name: rf.Name, Pattern: sub})
		}
		return p, nil

	case "enum":
		p := &ast.EnumPattern{Enum: rp.Enum, Variant: rp.Variant}
		if rp.Binding != nil {
			binding, err := decodePattern(rp.Binding, path+".binding")
			if err != nil {
				return nil, err
			}
			p.Binding = binding
		}
		return p, nil

	case "":
		return nil, fmt.Errorf("%s: missing pattern kind", path)
	default:
		return nil, fmt.Errorf("%s: unknown pattern kind %q", path, rp.Kind)
	}
}
