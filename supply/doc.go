// Package supply monta e executa a economia de suprimentos.
//
// Visão geral (camadas):
//
//   - domain: tipos de recurso, regra do tipo ausente, erros e contratos
//   - application: atores (steward, dragon riders, strongholds) sem locks próprios
//   - infra: estado compartilhado concreto (sinais, depósito, agregador), sinks e stats
//   - supply (este pacote): wiring dos sete workers + relatório
//
// Fluxo por rodada:
//
//   1) Steward sorteia dois tipos, coloca no depósito e sinaliza cada um
//   2) Dragon riders desses tipos retiram e entregam ao agregador
//   3) Agregador acorda a fortaleza do tipo ausente no par
//   4) Fortaleza confirma ao steward e simula distribuição/consumo
//
// Variáveis de ambiente do binário (cmd/supply) controlam a execução,
// como ROUNDS, RUN_SECONDS, SEED, WORK_MIN/WORK_MAX e WAIT_TIMEOUT.
package supply
