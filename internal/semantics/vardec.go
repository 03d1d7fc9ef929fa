package semantics

// BaseType enumerates the primitive and pseudo-types a VarDec can carry.
type BaseType int

const (
	INTEGER BaseType = iota
	DOUBLE
	FLOAT
	SHORT
	LONG
	CHAR
	BOOLEAN
	STRING
	VOID
	CUSTOM
	CLASS_REF
	CONSTRUCTOR_PARAM
	EXT_CLASS_OR_INTERFACE
	EXTERNAL_RET
	NULL_TYPE
	E_FUNCTION_CALL
	E_NON_FUNCTION_CALL
)

var baseTypeNames = map[string]BaseType{
	"int":     INTEGER,
	"double":  DOUBLE,
	"float":   FLOAT,
	"short":   SHORT,
	"long":    LONG,
	"char":    CHAR,
	"boolean": BOOLEAN,
	"bool":    BOOLEAN,
	"string":  STRING,
	"void":    VOID,
}

func (b BaseType) String() string {
	for name, t := range baseTypeNames {
		if t == b {
			return name
		}
	}
	switch b {
	case CUSTOM:
		return "CUSTOM"
	case CLASS_REF:
		return "CLASS_REF"
	case CONSTRUCTOR_PARAM:
		return "CONSTRUCTOR_PARAM"
	case EXT_CLASS_OR_INTERFACE:
		return "EXT_CLASS_OR_INTERFACE"
	case EXTERNAL_RET:
		return "EXTERNAL_RET"
	case NULL_TYPE:
		return "null"
	default:
		return "unknown"
	}
}

// VarDec is the declared type of a value: base kind, array dimension,
// optional class name (when BaseType == CLASS_REF), and constness.
type VarDec struct {
	Type      BaseType
	Dimension int
	ClassName string
	Constant  bool
}

// isNumeric reports whether b participates in arithmetic under non-strict
// float/double interchangeability.
func isNumeric(b BaseType) bool {
	switch b {
	case INTEGER, DOUBLE, FLOAT, SHORT, LONG:
		return true
	}
	return false
}

// StrictEqual implements declaration-time equality, used to detect
// duplicate constructor signatures: dimensions and class-names matter,
// and float/double are distinct.
func (v VarDec) StrictEqual(other VarDec) bool {
	return v.Type == other.Type && v.Dimension == other.Dimension && v.ClassName == other.ClassName
}

// NonStrictEqual implements call-site argument/arithmetic equality: float
// and double interchange, CUSTOM matches anything of the same dimension,
// and EXTERNAL_RET on either side always matches.
func (v VarDec) NonStrictEqual(other VarDec) bool {
	if v.Type == EXTERNAL_RET || other.Type == EXTERNAL_RET {
		return true
	}
	if v.Dimension != other.Dimension {
		return false
	}
	if v.Type == CUSTOM || other.Type == CUSTOM {
		return true
	}
	if v.Type == other.Type {
		if v.Type == CLASS_REF {
			return v.ClassName == other.ClassName
		}
		return true
	}
	if v.Type == FLOAT && other.Type == DOUBLE || v.Type == DOUBLE && other.Type == FLOAT {
		return true
	}
	return false
}

func (v VarDec) String() string {
	suffix := ""
	for i := 0; i < v.Dimension; i++ {
		suffix += "[]"
	}
	if v.Type == CLASS_REF && v.ClassName != "" {
		return v.ClassName + suffix
	}
	return v.Type.String() + suffix
}

var (
	NullDec     = VarDec{Type: NULL_TYPE}
	ExternalDec = VarDec{Type: EXTERNAL_RET}
	CustomDec   = VarDec{Type: CUSTOM}
	VoidDec     = VarDec{Type: VOID}
	IntegerDec  = VarDec{Type: INTEGER}
	BooleanDec  = VarDec{Type: BOOLEAN}
)
