// Package infra contém implementações concretas do estado compartilhado:
// sinal "ready" (mutex + sync.Cond + flag), depósito, agregador, sinks de status
// e stores de estatística (memória, Redis).
//
// Cada estrutura tem o seu próprio lock; nenhum lock é mantido durante a espera
// em outro lock.
package infra
