package domain

import (
	"fmt"
	"strings"
)

// Kind é o tipo de recurso que circula na economia.
//
// O conjunto é fechado: Burnstone, Seaplum e Klah. Qualquer outro valor que
// chegue a um dispatch é violação de invariante (ver MustValid).
type Kind uint8

const (
	Burnstone Kind = iota
	Seaplum
	Klah
)

// NumKinds é o número de tipos de recurso.
const NumKinds = 3

// Kinds lista todos os tipos na ordem canônica.
var Kinds = [NumKinds]Kind{Burnstone, Seaplum, Klah}

func (k Kind) String() string {
	switch k {
	case Burnstone:
		return "Burnstone"
	case Seaplum:
		return "Seaplum"
	case Klah:
		return "Klah"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) Valid() bool { return k < NumKinds }

// MustValid entra em pânico com ErrInvalidKind se k estiver fora do enum.
// Um tipo inválido é erro de programação, não há recuperação.
func (k Kind) MustValid() Kind {
	if !k.Valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidKind, uint8(k)))
	}
	return k
}

// ParseKind aceita o nome do tipo sem diferenciar maiúsculas.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// FullStrength é a força de uma unidade recém colocada no depósito.
const FullStrength = 100

// Unit é uma unidade de recurso em trânsito. O valor zero é a unidade vazia.
type Unit struct {
	Kind     Kind
	Strength int
}

func NewUnit(k Kind) Unit { return Unit{Kind: k.MustValid(), Strength: FullStrength} }

func (u Unit) Empty() bool { return u.Strength == 0 }

func (u Unit) String() string {
	if u.Empty() {
		return "<empty>"
	}
	return u.Kind.String()
}
