package sysfn

import (
	"quill/internal/name"
	"quill/internal/value"
)

// fieldTypeMatches reports whether v's runtime type tag matches the Name a
// FieldDef declares as its expected type.
func fieldTypeMatches(v value.Value, want name.Name) bool {
	idx, ok := typeTagIndex(v.Kind)
	if !ok {
		return false
	}
	return name.TypeTagName(idx) == want
}

// fnNew builds a Struct instance from a StructDef and a flat field/value
// argument list: (new def :x 1 :y 2). A field named twice is
// DuplicateField, a field the def does not declare is FieldError, a value
// of the wrong declared type is FieldTypeError, and any declared field
// never supplied is MissingField — matching ketos's fn_new.
func fnNew(args []value.Value) (value.Value, error) {
	def := args[0]
	if def.Kind != value.KindStructDef {
		return value.Unit, value.New(value.ErrTypeMismatch, "new expects a struct-def, found "+def.TypeName())
	}
	rest := args[1:]
	if len(rest)%2 != 0 {
		return value.Unit, value.New(value.ErrOddKeywordParams, "new expects field/value pairs after the struct-def")
	}
	fields := make(map[name.Name]value.Value, len(rest)/2)
	for i := 0; i+1 < len(rest); i += 2 {
		key, v := rest[i], rest[i+1]
		if key.Kind != value.KindName {
			return value.Unit, value.New(value.ErrTypeMismatch, "new expects field names, found "+key.TypeName())
		}
		if _, dup := fields[key.Name]; dup {
			return value.Unit, value.New(value.ErrDuplicateField, "new: duplicate field "+nameString(key.Name))
		}
		fd, ok := def.SDef.Field(key.Name)
		if !ok {
			return value.Unit, value.New(value.ErrFieldError, "new: "+nameString(key.Name)+" is not a field of "+nameString(def.SDef.Name))
		}
		if !fieldTypeMatches(v, fd.Type) {
			return value.Unit, value.New(value.ErrFieldTypeError, "new: field "+nameString(key.Name)+" expects "+nameString(fd.Type)+", found "+v.TypeName())
		}
		fields[key.Name] = v
	}
	for _, fd := range def.SDef.Fields {
		if _, ok := fields[fd.Name]; !ok {
			return value.Unit, value.New(value.ErrMissingField, "new: missing field "+nameString(fd.Name))
		}
	}
	return value.Value{Kind: value.KindStruct, Struct: &value.Struct{Def: def.SDef, Fields: fields}}, nil
}

// fnDot ("." in the table) reads a single field off a struct, reporting
// FieldError if the struct's def does not declare it.
func fnDot(args []value.Value) (value.Value, error) {
	s, field := args[0], args[1]
	if s.Kind != value.KindStruct {
		return value.Unit, value.New(value.ErrTypeMismatch, ". expects a struct, found "+s.TypeName())
	}
	if field.Kind != value.KindName {
		return value.Unit, value.New(value.ErrTypeMismatch, ". expects a field name, found "+field.TypeName())
	}
	v, ok := s.Struct.Get(field.Name)
	if !ok {
		return value.Unit, value.New(value.ErrFieldError, ".: "+nameString(field.Name)+" is not a field of "+nameString(s.Struct.Def.Name))
	}
	return v, nil
}

// fnDotEq (".=" in the table) copy-on-write updates one or more fields of
// a struct: (.= s :x 1 :y 2). An odd number of :key value arguments after
// the struct is OddKeywordParams, an undeclared field is FieldError, and a
// value of the wrong declared type is FieldTypeError — matching ketos's
// fn_dot_eq. The struct's own Fields map is never mutated in place; a new
// *Struct sharing the same Def is returned.
func fnDotEq(args []value.Value) (value.Value, error) {
	s := args[0]
	if s.Kind != value.KindStruct {
		return value.Unit, value.New(value.ErrTypeMismatch, ".= expects a struct, found "+s.TypeName())
	}
	rest := args[1:]
	if len(rest)%2 != 0 {
		return value.Unit, value.New(value.ErrOddKeywordParams, ".= expects field/value pairs after the struct")
	}
	updates := make(map[name.Name]value.Value, len(rest)/2)
	for i := 0; i+1 < len(rest); i += 2 {
		key, v := rest[i], rest[i+1]
		if key.Kind != value.KindName {
			return value.Unit, value.New(value.ErrTypeMismatch, ".= expects field names, found "+key.TypeName())
		}
		fd, ok := s.Struct.Def.Field(key.Name)
		if !ok {
			return value.Unit, value.New(value.ErrFieldError, ".=: "+nameString(key.Name)+" is not a field of "+nameString(s.Struct.Def.Name))
		}
		if !fieldTypeMatches(v, fd.Type) {
			return value.Unit, value.New(value.ErrFieldTypeError, ".=: field "+nameString(key.Name)+" expects "+nameString(fd.Type)+", found "+v.TypeName())
		}
		updates[key.Name] = v
	}
	return value.Value{Kind: value.KindStruct, Struct: s.Struct.With(updates)}, nil
}
