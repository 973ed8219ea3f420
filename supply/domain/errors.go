package domain

import "errors"

var (
	// ErrInvalidKind indica um Kind fora do enum fechado. Fatal.
	ErrInvalidKind = errors.New("invalid resource kind")

	// ErrAmbiguousPair indica que o agregador recebeu duas unidades do mesmo tipo;
	// não existe fortaleza definida para esse par.
	ErrAmbiguousPair = errors.New("ambiguous resource pair")

	// ErrLostUnit indica que um transportador foi acordado mas a célula estava vazia.
	ErrLostUnit = errors.New("depot cell empty after ready signal")

	// ErrCrossKind indica que um transportador retirou uma unidade de outro tipo.
	ErrCrossKind = errors.New("unit of foreign kind in depot cell")

	// ErrDrawExhausted indica que o sorteio não conseguiu dois tipos distintos
	// dentro do limite de tentativas (fonte aleatória quebrada).
	ErrDrawExhausted = errors.New("could not draw two distinct kinds")

	// ErrStalled indica que uma espera excedeu o timeout configurado.
	ErrStalled = errors.New("wait stalled")
)
