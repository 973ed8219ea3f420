package domain

import (
	"fmt"
	"time"
)

// Pair é o par de tipos coletado pelo agregador em uma rodada.
// A ordem reflete a ordem de chegada, mas a regra de entrega não depende dela.
type Pair [2]Kind

func (p Pair) String() string { return p[0].String() + "+" + p[1].String() }

// AbsentKind retorna o tipo que NÃO está no par.
//
// Cada fortaleza precisa dos dois tipos que ela mesma não produz, então o tipo
// ausente identifica exatamente uma fortaleza a acordar. Um par com o mesmo tipo
// repetido não tem resposta definida e retorna ErrAmbiguousPair.
func AbsentKind(p Pair) (Kind, error) {
	a, b := p[0].MustValid(), p[1].MustValid()
	if a == b {
		return 0, fmt.Errorf("%w: %s", ErrAmbiguousPair, p)
	}
	// Burnstone+Seaplum+Klah = 0+1+2 = 3
	return Kind(3 - int(a) - int(b)), nil
}

// DispatchEvent registra qual fortaleza foi acordada em uma rodada.
type DispatchEvent struct {
	Round uint64
	Pair  Pair
	Group Kind
	At    time.Time
}
