// Package application contém os atores da economia como casos de uso:
// Producer (steward), Transporter (dragon rider) e Consumer (stronghold).
//
// Ele depende apenas do pacote domain e conversa com o estado compartilhado
// somente através das interfaces Depot, Aggregator e Signal.
// Ex.: Producer.Round coloca dois tipos no depósito e espera a confirmação.
package application
