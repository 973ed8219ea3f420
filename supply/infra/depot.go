package infra

import (
	"strconv"
	"strings"
	"sync"

	"stronghold-supply/supply/domain"
)

// Depot é a caixa postal de uma unidade por tipo.
//
// Um único mutex protege as três células. A ordem de atendimento é decidida
// pelos sinais ready, não pela ordem de aquisição deste lock.
type Depot struct {
	mu    sync.Mutex
	cells [domain.NumKinds]domain.Unit
}

func NewDepot() *Depot { return &Depot{} }

// Place grava uma unidade cheia do tipo k. Repetir antes do Take sobrescreve.
func (d *Depot) Place(k domain.Kind) {
	u := domain.NewUnit(k)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.cells[k] = u
}

// Take retorna e limpa a célula de k. Célula vazia retorna (Unit{}, false).
func (d *Depot) Take(k domain.Kind) (domain.Unit, bool) {
	k.MustValid()

	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.cells[k]
	d.cells[k] = domain.Unit{}
	return u, !u.Empty()
}

func (d *Depot) Status() map[domain.Kind]bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[domain.Kind]bool, domain.NumKinds)
	for _, k := range domain.Kinds {
		out[k] = !d.cells[k].Empty()
	}
	return out
}

func (d *Depot) IsEmpty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.cells {
		if !u.Empty() {
			return false
		}
	}
	return true
}

// StatusLine formata o estado das células, uma por linha.
func (d *Depot) StatusLine() string {
	st := d.Status()
	lines := make([]string, 0, domain.NumKinds)
	for _, k := range domain.Kinds {
		lines = append(lines, k.String()+" obtained: "+strconv.FormatBool(st[k]))
	}
	return strings.Join(lines, "\n")
}
