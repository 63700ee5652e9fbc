package dto

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FlexDecimal decimal tolerante para montos de entrada: acepta número JSON,
// string numérico, null o valores basura. Todo lo no numérico se sanitiza a 0
// antes de cualquier aritmética (nunca se propaga un no-número a los totales).
type FlexDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON implementa la sanitización a 0 de valores no numéricos.
func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(b, `"`)))
	if s == "" || s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		f.Decimal = decimal.Zero
		return nil
	}
	f.Decimal = d
	return nil
}

// MarshalJSON serializa como número.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	return []byte(f.Decimal.String()), nil
}

// FlexInt entero tolerante: no numérico o ausente → 0.
type FlexInt int

// UnmarshalJSON implementa la sanitización a 0 de valores no numéricos.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(b, `"`)))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	// Acepta "3" y también "3.0" (se trunca la parte decimal)
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		*f = FlexInt(d.IntPart())
		return nil
	}
	*f = 0
	return nil
}
