// Package domain define os tipos e contratos do domínio da economia de suprimentos.
//
// Este pacote não depende de implementações concretas (locks, redis, arquivos).
// A intenção é manter as regras (ex: qual fortaleza recebe um par de recursos)
// testáveis de forma pura e desacopladas da infraestrutura.
package domain
