package domain

import "context"

// StatusSink recebe as linhas de status de todos os atores.
//
// Falhas de escrita são fatais para o processo; a implementação decide como
// abortar (ver infra.WriterSink). Por isso Write não retorna erro.
type StatusSink interface {
	Write(message string)
}

// Signal é um sinal binário "sticky": Set marca a flag e acorda um waiter;
// Wait bloqueia até a flag estar true e a consome (volta a false) antes de
// retornar. Um Set anterior ao Wait nunca é perdido.
type Signal interface {
	Set()
	Wait(ctx context.Context) error
}

// Depot é a caixa postal de uma unidade por tipo entre o produtor e os transportadores.
type Depot interface {
	Place(k Kind)
	Take(k Kind) (Unit, bool)
	Status() map[Kind]bool
	IsEmpty() bool
}

// Aggregator junta as duas unidades de uma rodada e acorda a fortaleza certa.
// O ctx é usado apenas para o registro de estatísticas.
type Aggregator interface {
	Submit(ctx context.Context, u Unit) error
}

// StatsStore é a estratégia de persistência para estatísticas de despacho.
//
// Implementações podem armazenar em Redis, memória, etc.
// O agregador trata erro como best-effort (não derruba a simulação).
type StatsStore interface {
	Record(ctx context.Context, ev DispatchEvent) error
}
