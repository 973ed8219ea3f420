package application

import (
	"fmt"
	"math/rand/v2"

	"stronghold-supply/supply/domain"
)

// DefaultMaxDraws limita o re-sorteio; com uma fonte saudável a chance de
// esgotar é (1/3)^64.
const DefaultMaxDraws = 64

// Chooser sorteia dois tipos distintos por rodada (rejeita e sorteia de novo
// em caso de colisão). Não é seguro para uso concorrente; só o produtor usa.
type Chooser struct {
	rng      *rand.Rand
	MaxDraws int
}

// NewChooser cria um Chooser determinístico para a seed.
func NewChooser(seed uint64) *Chooser {
	return NewChooserFrom(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func NewChooserFrom(src rand.Source) *Chooser {
	return &Chooser{rng: rand.New(src), MaxDraws: DefaultMaxDraws}
}

func (c *Chooser) draw() domain.Kind {
	return domain.Kinds[c.rng.IntN(domain.NumKinds)]
}

// Pair retorna dois tipos distintos, na ordem em que foram sorteados.
func (c *Chooser) Pair() (domain.Pair, error) {
	limit := c.MaxDraws
	if limit <= 0 {
		limit = DefaultMaxDraws
	}

	first := c.draw()
	for i := 0; i < limit; i++ {
		if second := c.draw(); second != first {
			return domain.Pair{first, second}, nil
		}
	}
	return domain.Pair{}, fmt.Errorf("%w: %d draws of %s", domain.ErrDrawExhausted, limit, first)
}
